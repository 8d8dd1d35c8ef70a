package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgx-risk-server/internal/domain"
)

func riskResultWith(drug string, label domain.RiskLabel, severity domain.Severity, confidence float64, variants int) *domain.RiskResult {
	return &domain.RiskResult{
		Drug: drug,
		RiskAssessment: domain.RiskAssessment{
			RiskLabel:       label,
			ConfidenceScore: confidence,
			Severity:        severity,
		},
		QualityMetrics: domain.QualityMetrics{VariantsDetected: variants},
	}
}

func TestSafetyIndexAggregator_Compute(t *testing.T) {
	aggregator := NewSafetyIndexAggregator()

	tests := []struct {
		name      string
		results   []*domain.RiskResult
		wantScore int
		wantLevel string
		wantColor string
	}{
		{
			name:      "Empty input is unknown",
			results:   nil,
			wantScore: 0,
			wantLevel: "unknown",
			wantColor: "gray",
		},
		{
			name: "Single clean safe drug keeps a perfect score",
			results: []*domain.RiskResult{
				riskResultWith("WARFARIN", domain.SAFE, domain.SEVERITY_NONE, 0.80, 2),
			},
			wantScore: 100,
			wantLevel: "Good",
			wantColor: "green",
		},
		{
			name: "Toxic with critical severity stacks penalties",
			results: []*domain.RiskResult{
				// 100 - 25 (toxic) - 8 (critical) = 67
				riskResultWith("CODEINE", domain.TOXIC, domain.SEVERITY_CRITICAL, 0.85, 2),
			},
			wantScore: 67,
			wantLevel: "Moderate",
			wantColor: "amber",
		},
		{
			name: "Adjust with high severity and low confidence",
			results: []*domain.RiskResult{
				// 100 - 10 - 5 - 4 = 81
				riskResultWith("WARFARIN", domain.ADJUST_DOSAGE, domain.SEVERITY_HIGH, 0.45, 1),
			},
			wantScore: 81,
			wantLevel: "Good",
			wantColor: "green",
		},
		{
			name: "Zero variants adds the coverage penalty",
			results: []*domain.RiskResult{
				// 100 - 4 (low confidence) - 3 (no variants) = 93
				riskResultWith("SIMVASTATIN", domain.SAFE, domain.SEVERITY_NONE, 0.35, 0),
			},
			wantScore: 93,
			wantLevel: "Good",
			wantColor: "green",
		},
		{
			name: "Multiple severe drugs clamp at zero",
			results: []*domain.RiskResult{
				riskResultWith("CODEINE", domain.TOXIC, domain.SEVERITY_CRITICAL, 0.30, 0),
				riskResultWith("CLOPIDOGREL", domain.INEFFECTIVE, domain.SEVERITY_HIGH, 0.30, 0),
				riskResultWith("AZATHIOPRINE", domain.TOXIC, domain.SEVERITY_CRITICAL, 0.30, 0),
			},
			wantScore: 0,
			wantLevel: "At Risk",
			wantColor: "red",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aggregator.Compute(tt.results)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantLevel, result.Level)
			assert.Equal(t, tt.wantColor, result.Color)
			assert.Len(t, result.Breakdown, len(tt.results))
		})
	}
}

func TestSafetyIndexAggregator_BreakdownReasons(t *testing.T) {
	aggregator := NewSafetyIndexAggregator()

	result := aggregator.Compute([]*domain.RiskResult{
		riskResultWith("CODEINE", domain.TOXIC, domain.SEVERITY_CRITICAL, 0.40, 0),
	})

	require.Len(t, result.Breakdown, 1)
	entry := result.Breakdown[0]
	assert.Equal(t, "CODEINE", entry.Drug)
	assert.Equal(t, 25+8+4+3, entry.Penalty)
	require.Len(t, entry.Reasons, 4)
	assert.Contains(t, entry.Reasons[0], "Toxic risk label (-25)")
	assert.Contains(t, entry.Reasons[1], "Critical severity (-8)")
	assert.Contains(t, entry.Reasons[2], "Low assessment confidence (-4)")
	assert.Contains(t, entry.Reasons[3], "No pharmacogenomic variants detected (-3)")
}

func TestSafetyIndexAggregator_BoundaryLevels(t *testing.T) {
	tests := []struct {
		score     int
		wantLevel string
		wantColor string
	}{
		{100, "Good", "green"},
		{80, "Good", "green"},
		{79, "Moderate", "amber"},
		{50, "Moderate", "amber"},
		{49, "At Risk", "red"},
		{0, "At Risk", "red"},
	}

	for _, tt := range tests {
		level, color := safetyLevel(tt.score)
		assert.Equal(t, tt.wantLevel, level, "score %d", tt.score)
		assert.Equal(t, tt.wantColor, color, "score %d", tt.score)
	}
}
