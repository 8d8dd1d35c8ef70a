package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/explain"
	"github.com/pgx-risk-server/internal/knowledge"
)

// Confidence scoring weights. The final score is capped below certainty:
// a pharmacogenomic prediction is never reported as a sure outcome.
const (
	confidenceBase            = 0.35
	confidencePerVariant      = 0.10
	confidenceVariantCap      = 0.20
	confidenceSingleAllele    = 0.10
	confidenceMultiAllele     = 0.15
	confidenceQualityWeight   = 0.15
	confidenceHomozygousBonus = 0.05
	confidenceQualityBonus    = 0.05
	confidenceCeiling         = 0.95
)

// RiskEngine looks up drug+phenotype in the knowledge base, computes a
// confidence score from data-quality signals, and assembles the structured
// risk result. Deterministic given its inputs and the injected clock.
type RiskEngine struct {
	logger     *logrus.Logger
	kb         *knowledge.Base
	resolver   *DiplotypeResolver
	population *PopulationService
	template   domain.ExplanationProvider
	version    string

	now          func() time.Time
	newPatientID func() string
}

// NewRiskEngine creates a new risk assessment engine.
func NewRiskEngine(logger *logrus.Logger, kb *knowledge.Base, version string) *RiskEngine {
	return &RiskEngine{
		logger:     logger,
		kb:         kb,
		resolver:   NewDiplotypeResolver(kb),
		population: NewPopulationService(kb),
		template:   explain.NewTemplateProvider(),
		version:    version,
		now:        time.Now,
		newPatientID: func() string {
			return "PGX-" + strings.ToUpper(uuid.NewString()[:8])
		},
	}
}

// WithClock overrides timestamp and patient-ID generation. Tests pin both.
func (e *RiskEngine) WithClock(now func() time.Time, newPatientID func() string) *RiskEngine {
	e.now = now
	e.newPatientID = newPatientID
	return e
}

// Assess produces the risk result for one drug against the full retained
// variant set. Unknown drugs and unmapped phenotypes are defined, non-fatal
// outcomes, never errors: the system stays usable for drugs outside the
// curated set, and "no variants" is a valid low-confidence result.
func (e *RiskEngine) Assess(ctx context.Context, variants []domain.VariantRecord, drugName string, ancestry domain.Ancestry) *domain.RiskResult {
	drug, known := e.kb.Drug(drugName)
	if !known {
		e.logger.WithField("drug", drugName).Info("Risk assessment requested for unsupported drug")
		return e.unknownDrugResult(drugName, variants)
	}

	geneVariants := variantsForGene(variants, drug.PrimaryGene)
	diplotype := e.resolver.Resolve(drug.PrimaryGene, geneVariants)

	entry, mapped := drug.Risk[diplotype.PhenotypeCode]
	if !mapped {
		// Defensive fallback; should not occur while phenotype scales and
		// risk-map keys stay in sync.
		e.logger.WithFields(logrus.Fields{
			"drug":      drug.Name,
			"phenotype": diplotype.PhenotypeCode,
		}).Warn("Phenotype has no entry in drug risk map")
		return e.unmappedPhenotypeResult(drug, diplotype, variants, geneVariants)
	}

	score, detail := e.confidence(geneVariants, diplotype)
	result := e.buildResult(drug, entry, diplotype, variants, geneVariants, score, detail)
	e.attachPopulationContext(result, geneVariants, ancestry)

	e.logger.WithFields(logrus.Fields{
		"drug":       drug.Name,
		"gene":       drug.PrimaryGene,
		"diplotype":  diplotype.Diplotype,
		"phenotype":  diplotype.PhenotypeCode,
		"risk_label": result.RiskAssessment.RiskLabel,
		"confidence": result.RiskAssessment.ConfidenceScore,
	}).Info("Risk assessment completed")

	return result
}

// Template returns the deterministic explanation provider the engine used
// for the initial explanation block. The analyzer may overwrite that block
// with enriched text; this fallback is always available.
func (e *RiskEngine) Template() domain.ExplanationProvider {
	return e.template
}

// unknownDrugResult is the defined outcome for drugs outside the curated set.
func (e *RiskEngine) unknownDrugResult(drugName string, variants []domain.VariantRecord) *domain.RiskResult {
	canonical := strings.ToUpper(strings.TrimSpace(drugName))
	supported := strings.Join(e.kb.DrugNames(), ", ")

	result := &domain.RiskResult{
		PatientID: e.newPatientID(),
		Drug:      canonical,
		Timestamp: e.now().UTC().Format(time.RFC3339),
		RiskAssessment: domain.RiskAssessment{
			RiskLabel:       domain.UNKNOWN_RISK,
			ConfidenceScore: 0,
			ConfidenceLevel: domain.LOW_CONFIDENCE,
			Severity:        domain.SEVERITY_NONE,
		},
		PharmacogenomicProfile: domain.PharmacogenomicProfile{
			DetectedVariants: []domain.DetectedVariant{},
		},
		ClinicalRecommendation: domain.ClinicalRecommendation{
			Action: fmt.Sprintf("%s is not in the curated pharmacogenomic knowledge base. Supported drugs: %s",
				canonical, supported),
			DosingGuideline:        "No pharmacogenomic dosing guidance available for this drug",
			Monitoring:             "Follow standard clinical monitoring for this medication",
			Alternatives:           []string{},
			CPICGuidelineReference: "None",
		},
		QualityMetrics: e.qualityMetrics(variants),
	}
	result.Explanation = e.templateExplanation(result, "", "", "")
	return result
}

// unmappedPhenotypeResult is the defensive fallback for a phenotype missing
// from a known drug's risk map.
func (e *RiskEngine) unmappedPhenotypeResult(drug knowledge.DrugProfile, diplotype DiplotypeResult, variants, geneVariants []domain.VariantRecord) *domain.RiskResult {
	confidence := 0.1
	if len(geneVariants) > 0 {
		confidence = 0.4
	}

	result := &domain.RiskResult{
		PatientID: e.newPatientID(),
		Drug:      drug.Name,
		Timestamp: e.now().UTC().Format(time.RFC3339),
		RiskAssessment: domain.RiskAssessment{
			RiskLabel:       domain.UNKNOWN_RISK,
			ConfidenceScore: confidence,
			ConfidenceLevel: domain.ConfidenceLevelFor(confidence),
			Severity:        domain.SEVERITY_NONE,
		},
		PharmacogenomicProfile: domain.PharmacogenomicProfile{
			PrimaryGene:      drug.PrimaryGene,
			Diplotype:        diplotype.Diplotype,
			Phenotype:        diplotype.Phenotype,
			DetectedVariants: detectedVariantsFor(geneVariants, drug.PrimaryGene),
		},
		ClinicalRecommendation: domain.ClinicalRecommendation{
			Action: fmt.Sprintf("No curated risk mapping for phenotype %s with %s; suggest standard dosing with enhanced monitoring",
				diplotype.Phenotype, drug.Name),
			DosingGuideline:        "Standard dosing pending pharmacogenomic review",
			Monitoring:             "Enhanced clinical monitoring recommended while the phenotype mapping is unresolved",
			Alternatives:           []string{},
			CPICGuidelineReference: cpicReference(drug),
		},
		QualityMetrics: e.qualityMetrics(variants),
	}
	result.Explanation = e.templateExplanation(result, drug.Mechanism, diplotype.Diplotype, diplotype.Phenotype)
	return result
}

// buildResult assembles the full RiskResult for a mapped drug/phenotype pair.
func (e *RiskEngine) buildResult(drug knowledge.DrugProfile, entry knowledge.RiskEntry, diplotype DiplotypeResult,
	variants, geneVariants []domain.VariantRecord, confidence float64, detail []domain.ConfidenceComponent) *domain.RiskResult {

	alternatives := []string{}
	if entry.Label != domain.SAFE {
		alternatives = append(alternatives, drug.Alternatives...)
	}

	result := &domain.RiskResult{
		PatientID: e.newPatientID(),
		Drug:      drug.Name,
		Timestamp: e.now().UTC().Format(time.RFC3339),
		RiskAssessment: domain.RiskAssessment{
			RiskLabel:        entry.Label,
			ConfidenceScore:  confidence,
			ConfidenceLevel:  domain.ConfidenceLevelFor(confidence),
			ConfidenceDetail: detail,
			Severity:         entry.Severity,
		},
		PharmacogenomicProfile: domain.PharmacogenomicProfile{
			PrimaryGene:      drug.PrimaryGene,
			Diplotype:        diplotype.Diplotype,
			Phenotype:        diplotype.Phenotype,
			DetectedVariants: detectedVariantsFor(geneVariants, drug.PrimaryGene),
		},
		ClinicalRecommendation: domain.ClinicalRecommendation{
			Action:                 entry.Recommendation,
			DosingGuideline:        entry.DosingGuideline,
			Monitoring:             monitoringFor(entry.Label),
			Alternatives:           alternatives,
			CPICGuidelineReference: cpicReference(drug),
		},
		QualityMetrics: e.qualityMetrics(variants),
	}
	result.Explanation = e.templateExplanation(result, drug.Mechanism, diplotype.Diplotype, diplotype.Phenotype)
	return result
}

// confidence computes the data-quality confidence score with its itemized
// breakdown. Monotonically non-decreasing in variant count, capped at 0.95.
func (e *RiskEngine) confidence(geneVariants []domain.VariantRecord, diplotype DiplotypeResult) (float64, []domain.ConfidenceComponent) {
	detail := []domain.ConfidenceComponent{
		{Factor: "base", Contribution: confidenceBase},
	}
	score := confidenceBase

	variantBoost := math.Min(float64(len(geneVariants))*confidencePerVariant, confidenceVariantCap)
	score += variantBoost
	detail = append(detail, domain.ConfidenceComponent{Factor: "variant_count", Contribution: round2(variantBoost)})

	var alleleBoost float64
	switch {
	case len(diplotype.DetectedAlleles) >= 2:
		alleleBoost = confidenceMultiAllele
	case len(diplotype.DetectedAlleles) == 1:
		alleleBoost = confidenceSingleAllele
	}
	score += alleleBoost
	detail = append(detail, domain.ConfidenceComponent{Factor: "star_alleles", Contribution: alleleBoost})

	avgQuality, hasQuality := averageQuality(geneVariants)
	qualityBoost := 0.0
	if hasQuality {
		qualityBoost = confidenceQualityWeight * math.Min(avgQuality/100.0, 1.0)
	}
	score += qualityBoost
	detail = append(detail, domain.ConfidenceComponent{Factor: "call_quality", Contribution: round2(qualityBoost)})

	homozygousBoost := 0.0
	for _, variant := range geneVariants {
		if variant.IsHomozygous() {
			homozygousBoost = confidenceHomozygousBonus
			break
		}
	}
	score += homozygousBoost
	detail = append(detail, domain.ConfidenceComponent{Factor: "homozygosity", Contribution: homozygousBoost})

	qualityBonus := 0.0
	if hasQuality && avgQuality > 50 {
		qualityBonus = confidenceQualityBonus
	}
	score += qualityBonus
	detail = append(detail, domain.ConfidenceComponent{Factor: "quality_threshold", Contribution: qualityBonus})

	score = math.Min(round2(score), confidenceCeiling)
	return score, detail
}

// attachPopulationContext adds ancestry-specific frequency insights and
// rare-variant warnings for the contributing variants.
func (e *RiskEngine) attachPopulationContext(result *domain.RiskResult, geneVariants []domain.VariantRecord, ancestry domain.Ancestry) {
	if ancestry == "" || len(geneVariants) == 0 {
		return
	}

	result.PopulationContext = e.population.Context(geneVariants, ancestry)
	for _, insight := range result.PopulationContext {
		if insight.Rare {
			result.RareVariantWarnings = append(result.RareVariantWarnings, fmt.Sprintf(
				"%s is rare in the %s population (frequency %.4f); guideline evidence may be limited",
				insight.RsID, ancestry, *insight.Frequency))
		}
	}
}

// templateExplanation fills the explanation block from the deterministic
// template provider. The template never fails.
func (e *RiskEngine) templateExplanation(result *domain.RiskResult, mechanism, diplotype, phenotype string) domain.ExplanationBlock {
	block, err := e.template.Explain(context.Background(), domain.ExplainRequest{
		Drug:            result.Drug,
		Gene:            result.PharmacogenomicProfile.PrimaryGene,
		Diplotype:       diplotype,
		Phenotype:       phenotype,
		Mechanism:       mechanism,
		RiskLabel:       result.RiskAssessment.RiskLabel,
		Severity:        result.RiskAssessment.Severity,
		ConfidenceScore: result.RiskAssessment.ConfidenceScore,
		ConfidenceLevel: result.RiskAssessment.ConfidenceLevel,
		Recommendation:  result.ClinicalRecommendation.Action,
		DetectedRsIDs:   rsidsOf(result.PharmacogenomicProfile.DetectedVariants),
	})
	if err != nil || block == nil {
		// The template provider is contractually infallible; guard anyway.
		return domain.ExplanationBlock{Source: "template", VariantCitations: []string{}}
	}
	return *block
}

func (e *RiskEngine) qualityMetrics(variants []domain.VariantRecord) domain.QualityMetrics {
	genes := make(map[string]bool)
	for _, variant := range variants {
		for _, gene := range variant.Genes() {
			genes[gene] = true
		}
	}
	return domain.QualityMetrics{
		VCFParsingSuccess: true,
		VariantsDetected:  len(variants),
		GeneCoverage:      len(genes),
		AnalysisVersion:   e.version,
	}
}

// monitoringFor returns the deterministic monitoring recommendation for a label.
func monitoringFor(label domain.RiskLabel) string {
	switch label {
	case domain.TOXIC:
		return "Close monitoring for adverse reactions; baseline and follow-up labs before dose changes"
	case domain.INEFFECTIVE:
		return "Monitor therapeutic response closely; escalate to an alternative agent if no effect"
	case domain.ADJUST_DOSAGE:
		return "Monitor response and adverse effects during dose titration; reassess within 1-2 weeks"
	case domain.SAFE:
		return "Routine clinical monitoring per standard of care"
	default:
		return "Standard clinical monitoring; pharmacogenomic guidance unavailable"
	}
}

func cpicReference(drug knowledge.DrugProfile) string {
	name := strings.ToLower(drug.Name)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("CPIC Guideline for %s and %s", name, drug.PrimaryGene)
}

// variantsForGene filters the retained set down to one gene's variants.
func variantsForGene(variants []domain.VariantRecord, gene string) []domain.VariantRecord {
	var matched []domain.VariantRecord
	for _, variant := range variants {
		if variant.AnnotatedFor(gene) {
			matched = append(matched, variant)
		}
	}
	return matched
}

// detectedVariantsFor formats a gene's variants for display.
func detectedVariantsFor(geneVariants []domain.VariantRecord, gene string) []domain.DetectedVariant {
	detected := []domain.DetectedVariant{}
	for _, variant := range geneVariants {
		for _, ann := range variant.Annotations {
			if !strings.EqualFold(ann.Gene, gene) {
				continue
			}
			entry := domain.DetectedVariant{
				StarAllele: ann.StarAllele,
				Function:   ann.Function,
				Genotype:   variant.Genotype,
			}
			if len(variant.RsIDs) > 0 {
				entry.RsID = variant.RsIDs[0]
			}
			if variant.Genotype != "" {
				switch {
				case variant.IsHomozygous():
					entry.Zygosity = "Homozygous"
				case strings.ContainsAny(variant.Genotype, "123456789"):
					entry.Zygosity = "Heterozygous"
				}
			}
			detected = append(detected, entry)
		}
	}
	return detected
}

func averageQuality(variants []domain.VariantRecord) (float64, bool) {
	var sum float64
	var count int
	for _, variant := range variants {
		if variant.Quality != nil {
			sum += *variant.Quality
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func rsidsOf(detected []domain.DetectedVariant) []string {
	var rsids []string
	for _, d := range detected {
		if d.RsID != "" {
			rsids = append(rsids, d.RsID)
		}
	}
	return rsids
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
