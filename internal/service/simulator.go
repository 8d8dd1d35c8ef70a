package service

import (
	"math"

	"github.com/pgx-risk-server/internal/domain"
)

const simulationDisclaimer = "Simulated projection only. Not a prescription; dose changes require prescriber review."

// DoseSimulator previews the effect of a hypothetical dose fraction on a
// risk result through deterministic rule-based transformations. It operates
// on a deep copy; the original result is never mutated.
type DoseSimulator struct{}

// NewDoseSimulator creates a new dose simulator.
func NewDoseSimulator() *DoseSimulator {
	return &DoseSimulator{}
}

// Simulate applies the dose-fraction rules to a deep copy of the result.
// dosePercent must be within [0, 100].
func (s *DoseSimulator) Simulate(result *domain.RiskResult, dosePercent float64) (*domain.RiskResult, error) {
	if result == nil {
		return nil, domain.NewValidationError("result", "result is required", nil)
	}
	if dosePercent < 0 || dosePercent > 100 {
		return nil, domain.NewValidationError("dose_percent", "dose percent must be between 0 and 100", dosePercent)
	}

	simulated := result.Clone()
	simulated.Simulated = true
	simulated.SimulationDetail = &domain.SimulationDetail{
		DosePercent:        dosePercent,
		OriginalLabel:      result.RiskAssessment.RiskLabel,
		OriginalConfidence: result.RiskAssessment.ConfidenceScore,
		Disclaimer:         simulationDisclaimer,
	}

	assessment := &simulated.RiskAssessment
	switch {
	case dosePercent == 100:
		// Unchanged copy, tagged as simulated.

	case dosePercent == 0:
		// Drug not taken: no effect, high certainty about that fact.
		assessment.RiskLabel = domain.INEFFECTIVE
		assessment.Severity = domain.SEVERITY_HIGH
		assessment.ConfidenceScore = 0.95

	case dosePercent <= 30:
		switch assessment.RiskLabel {
		case domain.TOXIC:
			assessment.RiskLabel = domain.ADJUST_DOSAGE
			assessment.Severity = domain.SEVERITY_MODERATE
		case domain.ADJUST_DOSAGE:
			assessment.RiskLabel = domain.SAFE
			assessment.Severity = domain.SEVERITY_LOW
		case domain.SAFE:
			// Sub-therapeutic exposure.
			assessment.RiskLabel = domain.INEFFECTIVE
			assessment.Severity = domain.SEVERITY_MODERATE
		}
		assessment.ConfidenceScore = math.Max(assessment.ConfidenceScore-0.10, 0.25)

	case dosePercent <= 60:
		switch assessment.RiskLabel {
		case domain.TOXIC:
			assessment.RiskLabel = domain.ADJUST_DOSAGE
			assessment.Severity = domain.SEVERITY_MODERATE
		case domain.ADJUST_DOSAGE:
			assessment.Severity = domain.SEVERITY_LOW
		}
		assessment.ConfidenceScore = math.Max(assessment.ConfidenceScore-0.05, 0.30)

	default: // 61-99
		if assessment.RiskLabel == domain.TOXIC {
			assessment.Severity = domain.SEVERITY_MODERATE
		}
	}

	assessment.ConfidenceScore = round2(assessment.ConfidenceScore)
	assessment.ConfidenceLevel = domain.ConfidenceLevelFor(assessment.ConfidenceScore)
	return simulated, nil
}
