package domain

// Result Models
//
// Field names carry the external JSON contract and must be preserved
// bit-exact for downstream consumers.

// RiskAssessment is the risk block of a RiskResult.
type RiskAssessment struct {
	RiskLabel        RiskLabel             `json:"risk_label"`
	ConfidenceScore  float64               `json:"confidence_score"`
	ConfidenceLevel  ConfidenceLevel       `json:"confidence_level"`
	ConfidenceDetail []ConfidenceComponent `json:"confidence_detail,omitempty"`
	Severity         Severity              `json:"severity"`
}

// ConfidenceComponent itemizes one contribution to the confidence score.
type ConfidenceComponent struct {
	Factor       string  `json:"factor"`
	Contribution float64 `json:"contribution"`
}

// DetectedVariant is a display-formatted variant entry in the profile block.
type DetectedVariant struct {
	RsID       string `json:"rsid"`
	StarAllele string `json:"star_allele,omitempty"`
	Function   string `json:"function,omitempty"`
	Genotype   string `json:"genotype,omitempty"`
	Zygosity   string `json:"zygosity,omitempty"`
}

// PharmacogenomicProfile is the gene/diplotype/phenotype block of a RiskResult.
type PharmacogenomicProfile struct {
	PrimaryGene      string            `json:"primary_gene"`
	Diplotype        string            `json:"diplotype"`
	Phenotype        string            `json:"phenotype"`
	DetectedVariants []DetectedVariant `json:"detected_variants"`
}

// ClinicalRecommendation is the actionable guidance block of a RiskResult.
type ClinicalRecommendation struct {
	Action                 string   `json:"action"`
	DosingGuideline        string   `json:"dosing_guideline"`
	Monitoring             string   `json:"monitoring"`
	Alternatives           []string `json:"alternatives"`
	CPICGuidelineReference string   `json:"cpic_guideline_reference"`
}

// ExplanationBlock holds the human-readable explanation, produced either by
// the enrichment provider or by the deterministic template fallback.
type ExplanationBlock struct {
	Summary               string   `json:"summary"`
	Mechanism             string   `json:"mechanism"`
	ClinicalSignificance  string   `json:"clinical_significance"`
	VariantCitations      []string `json:"variant_citations"`
	ConfidenceExplanation string   `json:"confidence_explanation"`
	Source                string   `json:"source,omitempty"` // "template" or "llm"
}

// QualityMetrics summarizes parsing and coverage quality for a RiskResult.
type QualityMetrics struct {
	VCFParsingSuccess bool   `json:"vcf_parsing_success"`
	VariantsDetected  int    `json:"variants_detected"`
	GeneCoverage      int    `json:"gene_coverage"`
	AnalysisVersion   string `json:"analysis_version"`
}

// PopulationInsight annotates one rsID with ancestry-specific frequency data
// and the zygosity-derived inheritance context of the carrying variant.
type PopulationInsight struct {
	RsID           string           `json:"rsid"`
	Frequency      *float64         `json:"frequency"`
	Rare           bool             `json:"rare"`
	PopulationNote string           `json:"population_note"`
	Inheritance    *InheritanceNote `json:"inheritance,omitempty"`
}

// InheritanceNote describes zygosity-derived inheritance context for a genotype.
type InheritanceNote struct {
	Zygosity        string `json:"zygosity"`
	InheritanceNote string `json:"inheritance_note"`
	FamilyScreening string `json:"family_screening"`
}

// SimulationDetail records the provenance of a simulated result. Consumers
// must never present simulated output as a final prescription.
type SimulationDetail struct {
	DosePercent        float64   `json:"dose_percent"`
	OriginalLabel      RiskLabel `json:"original_label"`
	OriginalConfidence float64   `json:"original_confidence"`
	Disclaimer         string    `json:"disclaimer"`
}

// RiskResult is the pipeline's terminal output unit per (patient-file, drug)
// pair. Created fresh per request and never mutated after the pipeline
// finishes, except by the dose simulator which operates on a deep copy.
type RiskResult struct {
	PatientID              string                 `json:"patient_id"`
	Drug                   string                 `json:"drug"`
	Timestamp              string                 `json:"timestamp"`
	RiskAssessment         RiskAssessment         `json:"risk_assessment"`
	PharmacogenomicProfile PharmacogenomicProfile `json:"pharmacogenomic_profile"`
	ClinicalRecommendation ClinicalRecommendation `json:"clinical_recommendation"`
	Explanation            ExplanationBlock       `json:"llm_generated_explanation"`
	QualityMetrics         QualityMetrics         `json:"quality_metrics"`
	RareVariantWarnings    []string               `json:"rare_variant_warnings,omitempty"`
	PopulationContext      []PopulationInsight    `json:"population_context,omitempty"`
	Simulated              bool                   `json:"_simulated,omitempty"`
	SimulationDetail       *SimulationDetail      `json:"simulation_detail,omitempty"`
}

// Clone returns a deep copy of the result. The dose simulator mutates the
// copy only, leaving the original untouched.
func (r *RiskResult) Clone() *RiskResult {
	if r == nil {
		return nil
	}
	clone := *r
	clone.RiskAssessment.ConfidenceDetail = append([]ConfidenceComponent(nil), r.RiskAssessment.ConfidenceDetail...)
	clone.PharmacogenomicProfile.DetectedVariants = append([]DetectedVariant(nil), r.PharmacogenomicProfile.DetectedVariants...)
	clone.ClinicalRecommendation.Alternatives = append([]string(nil), r.ClinicalRecommendation.Alternatives...)
	clone.Explanation.VariantCitations = append([]string(nil), r.Explanation.VariantCitations...)
	clone.RareVariantWarnings = append([]string(nil), r.RareVariantWarnings...)
	if r.PopulationContext != nil {
		clone.PopulationContext = make([]PopulationInsight, len(r.PopulationContext))
		for i, pc := range r.PopulationContext {
			clone.PopulationContext[i] = pc
			if pc.Frequency != nil {
				f := *pc.Frequency
				clone.PopulationContext[i].Frequency = &f
			}
			if pc.Inheritance != nil {
				note := *pc.Inheritance
				clone.PopulationContext[i].Inheritance = &note
			}
		}
	}
	if r.SimulationDetail != nil {
		detail := *r.SimulationDetail
		clone.SimulationDetail = &detail
	}
	return &clone
}

// SafetyBreakdownEntry itemizes the penalty one drug contributed to the index.
type SafetyBreakdownEntry struct {
	Drug      string    `json:"drug"`
	RiskLabel RiskLabel `json:"risk_label"`
	Penalty   int       `json:"penalty"`
	Reasons   []string  `json:"reasons"`
}

// SafetyIndexResult is the aggregate 0-100 patient-level safety score,
// recomputed from the full result set on every request and never persisted.
type SafetyIndexResult struct {
	Score     int                    `json:"score"`
	Level     string                 `json:"level"`
	Color     string                 `json:"color"`
	Breakdown []SafetyBreakdownEntry `json:"breakdown"`
}
