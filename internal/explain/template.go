// Package explain produces the human-readable explanation block of a risk
// result. Two providers exist: a deterministic template variant and a
// remote text-generation variant. The template variant doubles as the
// unconditional fallback; enrichment failures never surface to callers.
package explain

import (
	"context"
	"fmt"

	"github.com/pgx-risk-server/internal/domain"
)

// TemplateProvider renders deterministic explanation text from the
// pharmacogenomic context. It never fails and holds no state.
type TemplateProvider struct{}

// NewTemplateProvider creates the deterministic template provider.
func NewTemplateProvider() *TemplateProvider {
	return &TemplateProvider{}
}

// Name identifies the provider in logs and the explanation source tag.
func (p *TemplateProvider) Name() string { return "template" }

// Explain renders the template explanation. The returned error is always nil.
func (p *TemplateProvider) Explain(_ context.Context, req domain.ExplainRequest) (*domain.ExplanationBlock, error) {
	citations := append([]string{}, req.DetectedRsIDs...)

	block := &domain.ExplanationBlock{
		Summary:               p.summary(req),
		Mechanism:             p.mechanism(req),
		ClinicalSignificance:  significanceFor(req.Severity),
		VariantCitations:      citations,
		ConfidenceExplanation: p.confidence(req),
		Source:                p.Name(),
	}
	return block, nil
}

func (p *TemplateProvider) summary(req domain.ExplainRequest) string {
	if req.Gene == "" || req.Phenotype == "" {
		return fmt.Sprintf("%s is outside the curated pharmacogenomic knowledge base; no genotype-based risk prediction is available.", req.Drug)
	}
	return fmt.Sprintf("Based on the %s diplotype %s, this patient is classified as a %s, giving a %q assessment for %s.",
		req.Gene, req.Diplotype, req.Phenotype, req.RiskLabel, req.Drug)
}

func (p *TemplateProvider) mechanism(req domain.ExplainRequest) string {
	if req.Mechanism == "" {
		return "No mechanism information is available for this drug."
	}
	if len(req.DetectedRsIDs) == 0 {
		return fmt.Sprintf("%s. No variant alleles were detected in %s, so normal activity is assumed.", req.Mechanism, req.Gene)
	}
	return fmt.Sprintf("%s. The detected %s variant(s) alter this pathway, shifting expected drug exposure or response.",
		req.Mechanism, req.Gene)
}

func (p *TemplateProvider) confidence(req domain.ExplainRequest) string {
	switch req.ConfidenceLevel {
	case domain.HIGH_CONFIDENCE:
		return fmt.Sprintf("Confidence %.2f (High): genotype calls were consistent and well supported by call quality.", req.ConfidenceScore)
	case domain.MODERATE_CONFIDENCE:
		return fmt.Sprintf("Confidence %.2f (Moderate): the assessment rests on partial variant evidence; confirmatory testing may help.", req.ConfidenceScore)
	default:
		return fmt.Sprintf("Confidence %.2f (Low): limited variant evidence was available; treat this prediction as provisional.", req.ConfidenceScore)
	}
}

// significanceFor maps severity to the clinical-significance narrative.
func significanceFor(severity domain.Severity) string {
	switch severity {
	case domain.SEVERITY_CRITICAL:
		return "Critical: standard dosing carries a risk of severe, potentially life-threatening adverse outcomes."
	case domain.SEVERITY_HIGH:
		return "High: substantial risk of treatment failure or serious adverse effects without intervention."
	case domain.SEVERITY_MODERATE:
		return "Moderate: dose or agent adjustment is advisable to reach the expected therapeutic outcome."
	case domain.SEVERITY_LOW:
		return "Low: minor deviation from normal response expected; routine care is usually sufficient."
	default:
		return "No clinically significant pharmacogenomic interaction identified."
	}
}
