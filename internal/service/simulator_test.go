package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgx-risk-server/internal/domain"
)

func baselineResult(label domain.RiskLabel, severity domain.Severity, confidence float64) *domain.RiskResult {
	return &domain.RiskResult{
		PatientID: "PGX-TEST0001",
		Drug:      "CODEINE",
		RiskAssessment: domain.RiskAssessment{
			RiskLabel:       label,
			ConfidenceScore: confidence,
			ConfidenceLevel: domain.ConfidenceLevelFor(confidence),
			Severity:        severity,
		},
		PharmacogenomicProfile: domain.PharmacogenomicProfile{
			PrimaryGene: "CYP2D6",
			Diplotype:   "*4/*4",
			DetectedVariants: []domain.DetectedVariant{
				{RsID: "rs3892097", StarAllele: "*4"},
			},
		},
		ClinicalRecommendation: domain.ClinicalRecommendation{
			Alternatives: []string{"morphine"},
		},
	}
}

func TestDoseSimulator_Validation(t *testing.T) {
	simulator := NewDoseSimulator()

	_, err := simulator.Simulate(nil, 50)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "result", validationErr.Field)

	for _, dose := range []float64{-1, 100.5, 200} {
		_, err := simulator.Simulate(baselineResult(domain.SAFE, domain.SEVERITY_NONE, 0.8), dose)
		require.ErrorAs(t, err, &validationErr, "dose %v", dose)
		assert.Equal(t, "dose_percent", validationErr.Field)
	}
}

func TestDoseSimulator_Simulate(t *testing.T) {
	simulator := NewDoseSimulator()

	tests := []struct {
		name           string
		input          *domain.RiskResult
		dose           float64
		wantLabel      domain.RiskLabel
		wantSeverity   domain.Severity
		wantConfidence float64
	}{
		{
			name:           "Full dose is unchanged",
			input:          baselineResult(domain.TOXIC, domain.SEVERITY_CRITICAL, 0.85),
			dose:           100,
			wantLabel:      domain.TOXIC,
			wantSeverity:   domain.SEVERITY_CRITICAL,
			wantConfidence: 0.85,
		},
		{
			name:           "Zero dose is ineffective with high certainty",
			input:          baselineResult(domain.TOXIC, domain.SEVERITY_CRITICAL, 0.60),
			dose:           0,
			wantLabel:      domain.INEFFECTIVE,
			wantSeverity:   domain.SEVERITY_HIGH,
			wantConfidence: 0.95,
		},
		{
			name:           "Low dose softens toxic to adjust",
			input:          baselineResult(domain.TOXIC, domain.SEVERITY_CRITICAL, 0.85),
			dose:           25,
			wantLabel:      domain.ADJUST_DOSAGE,
			wantSeverity:   domain.SEVERITY_MODERATE,
			wantConfidence: 0.75,
		},
		{
			name:           "Low dose turns adjust into safe",
			input:          baselineResult(domain.ADJUST_DOSAGE, domain.SEVERITY_MODERATE, 0.70),
			dose:           30,
			wantLabel:      domain.SAFE,
			wantSeverity:   domain.SEVERITY_LOW,
			wantConfidence: 0.60,
		},
		{
			name:           "Low dose makes a safe drug sub-therapeutic",
			input:          baselineResult(domain.SAFE, domain.SEVERITY_NONE, 0.80),
			dose:           10,
			wantLabel:      domain.INEFFECTIVE,
			wantSeverity:   domain.SEVERITY_MODERATE,
			wantConfidence: 0.70,
		},
		{
			name:           "Low dose confidence floors at 0.25",
			input:          baselineResult(domain.SAFE, domain.SEVERITY_NONE, 0.30),
			dose:           15,
			wantLabel:      domain.INEFFECTIVE,
			wantSeverity:   domain.SEVERITY_MODERATE,
			wantConfidence: 0.25,
		},
		{
			name:           "Mid dose softens toxic",
			input:          baselineResult(domain.TOXIC, domain.SEVERITY_CRITICAL, 0.85),
			dose:           50,
			wantLabel:      domain.ADJUST_DOSAGE,
			wantSeverity:   domain.SEVERITY_MODERATE,
			wantConfidence: 0.80,
		},
		{
			name:           "Mid dose downgrades adjust severity only",
			input:          baselineResult(domain.ADJUST_DOSAGE, domain.SEVERITY_MODERATE, 0.70),
			dose:           60,
			wantLabel:      domain.ADJUST_DOSAGE,
			wantSeverity:   domain.SEVERITY_LOW,
			wantConfidence: 0.65,
		},
		{
			name:           "Near-full dose softens toxic severity only",
			input:          baselineResult(domain.TOXIC, domain.SEVERITY_CRITICAL, 0.85),
			dose:           75,
			wantLabel:      domain.TOXIC,
			wantSeverity:   domain.SEVERITY_MODERATE,
			wantConfidence: 0.85,
		},
		{
			name:           "Near-full dose leaves safe untouched",
			input:          baselineResult(domain.SAFE, domain.SEVERITY_NONE, 0.80),
			dose:           90,
			wantLabel:      domain.SAFE,
			wantSeverity:   domain.SEVERITY_NONE,
			wantConfidence: 0.80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			simulated, err := simulator.Simulate(tt.input, tt.dose)
			require.NoError(t, err)

			assert.True(t, simulated.Simulated)
			require.NotNil(t, simulated.SimulationDetail)
			assert.Equal(t, tt.dose, simulated.SimulationDetail.DosePercent)
			assert.Equal(t, tt.input.RiskAssessment.RiskLabel, simulated.SimulationDetail.OriginalLabel)
			assert.Equal(t, tt.input.RiskAssessment.ConfidenceScore, simulated.SimulationDetail.OriginalConfidence)
			assert.NotEmpty(t, simulated.SimulationDetail.Disclaimer)

			assert.Equal(t, tt.wantLabel, simulated.RiskAssessment.RiskLabel)
			assert.Equal(t, tt.wantSeverity, simulated.RiskAssessment.Severity)
			assert.InDelta(t, tt.wantConfidence, simulated.RiskAssessment.ConfidenceScore, 1e-9)
			assert.Equal(t, domain.ConfidenceLevelFor(tt.wantConfidence), simulated.RiskAssessment.ConfidenceLevel)
		})
	}
}

func TestDoseSimulator_DoesNotMutateOriginal(t *testing.T) {
	simulator := NewDoseSimulator()
	original := baselineResult(domain.TOXIC, domain.SEVERITY_CRITICAL, 0.85)

	simulated, err := simulator.Simulate(original, 25)
	require.NoError(t, err)

	// Mutate the copy's slices and nested fields; the original must not move.
	simulated.ClinicalRecommendation.Alternatives[0] = "changed"
	simulated.PharmacogenomicProfile.DetectedVariants[0].RsID = "rs0"

	assert.Equal(t, domain.TOXIC, original.RiskAssessment.RiskLabel)
	assert.Equal(t, domain.SEVERITY_CRITICAL, original.RiskAssessment.Severity)
	assert.Equal(t, 0.85, original.RiskAssessment.ConfidenceScore)
	assert.False(t, original.Simulated)
	assert.Nil(t, original.SimulationDetail)
	assert.Equal(t, "morphine", original.ClinicalRecommendation.Alternatives[0])
	assert.Equal(t, "rs3892097", original.PharmacogenomicProfile.DetectedVariants[0].RsID)
}
