package service

import (
	"fmt"

	"github.com/pgx-risk-server/internal/domain"
)

// Safety index penalties. Label, severity, confidence and coverage
// penalties stack independently per drug; only the aggregate score is
// clamped, never the per-drug sum, so additional drugs keep dragging the
// reported floor of 0. Penalties are not normalized by drug count; the
// itemized breakdown lets callers renormalize if needed.
const (
	penaltySevereLabel      = 25 // Toxic or Ineffective
	penaltyAdjustLabel      = 10
	penaltyCriticalSeverity = 8
	penaltyHighSeverity     = 5
	penaltyLowConfidence    = 4
	penaltyNoVariants       = 3
)

// SafetyIndexAggregator combines per-drug risk results into a single 0-100
// patient-level score with itemized deductions.
type SafetyIndexAggregator struct{}

// NewSafetyIndexAggregator creates a new aggregator.
func NewSafetyIndexAggregator() *SafetyIndexAggregator {
	return &SafetyIndexAggregator{}
}

// Compute derives the safety index from the full result set. An empty input
// is a defined outcome (score 0, level "unknown"), not an error.
func (a *SafetyIndexAggregator) Compute(results []*domain.RiskResult) *domain.SafetyIndexResult {
	if len(results) == 0 {
		return &domain.SafetyIndexResult{
			Score:     0,
			Level:     "unknown",
			Color:     "gray",
			Breakdown: []domain.SafetyBreakdownEntry{},
		}
	}

	score := 100
	breakdown := make([]domain.SafetyBreakdownEntry, 0, len(results))

	for _, result := range results {
		entry := a.assessDrug(result)
		score -= entry.Penalty
		breakdown = append(breakdown, entry)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level, color := safetyLevel(score)
	return &domain.SafetyIndexResult{
		Score:     score,
		Level:     level,
		Color:     color,
		Breakdown: breakdown,
	}
}

// assessDrug accumulates one drug's penalty with its reasons in penalty order.
func (a *SafetyIndexAggregator) assessDrug(result *domain.RiskResult) domain.SafetyBreakdownEntry {
	entry := domain.SafetyBreakdownEntry{
		Drug:      result.Drug,
		RiskLabel: result.RiskAssessment.RiskLabel,
		Reasons:   []string{},
	}

	switch result.RiskAssessment.RiskLabel {
	case domain.TOXIC, domain.INEFFECTIVE:
		entry.Penalty += penaltySevereLabel
		entry.Reasons = append(entry.Reasons,
			fmt.Sprintf("%s risk label (-%d)", result.RiskAssessment.RiskLabel, penaltySevereLabel))
	case domain.ADJUST_DOSAGE:
		entry.Penalty += penaltyAdjustLabel
		entry.Reasons = append(entry.Reasons,
			fmt.Sprintf("Dose adjustment required (-%d)", penaltyAdjustLabel))
	}

	switch result.RiskAssessment.Severity {
	case domain.SEVERITY_CRITICAL:
		entry.Penalty += penaltyCriticalSeverity
		entry.Reasons = append(entry.Reasons,
			fmt.Sprintf("Critical severity (-%d)", penaltyCriticalSeverity))
	case domain.SEVERITY_HIGH:
		entry.Penalty += penaltyHighSeverity
		entry.Reasons = append(entry.Reasons,
			fmt.Sprintf("High severity (-%d)", penaltyHighSeverity))
	}

	if result.RiskAssessment.ConfidenceScore < 0.5 {
		entry.Penalty += penaltyLowConfidence
		entry.Reasons = append(entry.Reasons,
			fmt.Sprintf("Low assessment confidence (-%d)", penaltyLowConfidence))
	}

	if result.QualityMetrics.VariantsDetected == 0 {
		entry.Penalty += penaltyNoVariants
		entry.Reasons = append(entry.Reasons,
			fmt.Sprintf("No pharmacogenomic variants detected (-%d)", penaltyNoVariants))
	}

	return entry
}

func safetyLevel(score int) (string, string) {
	switch {
	case score >= 80:
		return "Good", "green"
	case score >= 50:
		return "Moderate", "amber"
	default:
		return "At Risk", "red"
	}
}
