package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/knowledge"
)

// AnalyzeRequest is one complete analysis request: a VCF payload, the drugs
// to assess, and an optional ancestry for population context.
type AnalyzeRequest struct {
	FileContent string
	Drugs       []string
	Ancestry    domain.Ancestry
}

// AnalyzeResponse carries the per-drug results, the aggregate safety index,
// and the parsing metadata and per-line errors.
type AnalyzeResponse struct {
	Results     []*domain.RiskResult      `json:"results"`
	SafetyIndex *domain.SafetyIndexResult `json:"safety_index"`
	Metadata    ParseMetadata             `json:"parse_metadata"`
	ParseErrors []string                  `json:"parse_errors,omitempty"`
}

// Analyzer runs the full pipeline: parse, per-drug risk assessment,
// optional explanation enrichment, safety aggregation. Each request is
// stateless and independent; the only shared state is the read-only
// knowledge base.
type Analyzer struct {
	logger   *logrus.Logger
	kb       *knowledge.Base
	parser   *VCFParser
	engine   *RiskEngine
	safety   *SafetyIndexAggregator
	enricher domain.ExplanationProvider
}

// NewAnalyzer assembles the pipeline. enricher may be nil, in which case the
// engine's deterministic template explanation stands.
func NewAnalyzer(logger *logrus.Logger, kb *knowledge.Base, engine *RiskEngine, enricher domain.ExplanationProvider) *Analyzer {
	return &Analyzer{
		logger:   logger,
		kb:       kb,
		parser:   NewVCFParser(logger, kb),
		engine:   engine,
		safety:   NewSafetyIndexAggregator(),
		enricher: enricher,
	}
}

// Parser exposes the underlying VCF parser for pre-checks at the API boundary.
func (a *Analyzer) Parser() *VCFParser { return a.parser }

// Analyze runs one end-to-end analysis. Per-drug assessment runs in input
// order; each drug is independent so ordering carries no semantic weight
// beyond the response contract.
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	drugs := normalizeDrugs(req.Drugs)
	if len(drugs) == 0 {
		return nil, domain.NewAnalysisError(domain.ErrMissingDrug,
			"at least one drug name is required", "provide a comma-separated list of drug names")
	}

	if err := a.parser.Validate(req.FileContent); err != nil {
		return nil, err
	}

	outcome := a.parser.Parse(req.FileContent)
	if outcome.Metadata.ParsedVariants == 0 && len(outcome.Errors) > 0 {
		// Zero usable variants with collected line errors is a hard failure;
		// a clean file with no pharmacogenomic matches is not.
		return nil, domain.NewAnalysisError(domain.ErrParseFailure,
			"no usable variants could be parsed from the file",
			strings.Join(outcome.Errors, "; "))
	}

	a.logger.WithFields(logrus.Fields{
		"drugs":             drugs,
		"ancestry":          req.Ancestry,
		"retained_variants": outcome.Metadata.RetainedVariants,
		"parse_errors":      len(outcome.Errors),
	}).Info("Starting pharmacogenomic analysis")

	results := make([]*domain.RiskResult, 0, len(drugs))
	for _, drug := range drugs {
		result := a.engine.Assess(ctx, outcome.Variants, drug, req.Ancestry)
		result.QualityMetrics.VCFParsingSuccess = len(outcome.Errors) == 0
		a.enrich(ctx, result)
		results = append(results, result)
	}

	return &AnalyzeResponse{
		Results:     results,
		SafetyIndex: a.safety.Compute(results),
		Metadata:    outcome.Metadata,
		ParseErrors: outcome.Errors,
	}, nil
}

// enrich overwrites the template explanation with provider output when an
// enrichment provider is configured and succeeds. Any provider failure
// leaves the deterministic template text in place and is never surfaced.
func (a *Analyzer) enrich(ctx context.Context, result *domain.RiskResult) {
	if a.enricher == nil {
		return
	}

	mechanism := ""
	if drug, ok := a.kb.Drug(result.Drug); ok {
		mechanism = drug.Mechanism
	}

	block, err := a.enricher.Explain(ctx, domain.ExplainRequest{
		Drug:            result.Drug,
		Gene:            result.PharmacogenomicProfile.PrimaryGene,
		Diplotype:       result.PharmacogenomicProfile.Diplotype,
		Phenotype:       result.PharmacogenomicProfile.Phenotype,
		Mechanism:       mechanism,
		RiskLabel:       result.RiskAssessment.RiskLabel,
		Severity:        result.RiskAssessment.Severity,
		ConfidenceScore: result.RiskAssessment.ConfidenceScore,
		ConfidenceLevel: result.RiskAssessment.ConfidenceLevel,
		Recommendation:  result.ClinicalRecommendation.Action,
		DetectedRsIDs:   rsidsOf(result.PharmacogenomicProfile.DetectedVariants),
	})
	if err != nil || block == nil {
		a.logger.WithError(err).WithField("drug", result.Drug).
			Warn("Explanation enrichment unavailable, keeping template explanation")
		return
	}
	result.Explanation = *block
}

// normalizeDrugs trims, uppercases and de-duplicates the requested drug
// names, preserving input order.
func normalizeDrugs(raw []string) []string {
	var drugs []string
	seen := make(map[string]bool)
	for _, name := range raw {
		canonical := strings.ToUpper(strings.TrimSpace(name))
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		drugs = append(drugs, canonical)
	}
	return drugs
}
