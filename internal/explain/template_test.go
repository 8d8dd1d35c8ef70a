package explain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgx-risk-server/internal/domain"
)

func TestTemplateProvider_Explain(t *testing.T) {
	provider := NewTemplateProvider()

	req := domain.ExplainRequest{
		Drug:            "CODEINE",
		Gene:            "CYP2D6",
		Diplotype:       "*4/*4",
		Phenotype:       "Poor Metabolizer",
		Mechanism:       "Prodrug requiring CYP2D6-mediated O-demethylation to morphine",
		RiskLabel:       domain.INEFFECTIVE,
		Severity:        domain.SEVERITY_HIGH,
		ConfidenceScore: 0.80,
		ConfidenceLevel: domain.HIGH_CONFIDENCE,
		Recommendation:  "Avoid codeine",
		DetectedRsIDs:   []string{"rs3892097"},
	}

	block, err := provider.Explain(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, block)

	assert.Equal(t, "template", block.Source)
	assert.Contains(t, block.Summary, "CYP2D6")
	assert.Contains(t, block.Summary, "*4/*4")
	assert.Contains(t, block.Summary, "Poor Metabolizer")
	assert.Contains(t, block.Mechanism, "O-demethylation")
	assert.Contains(t, block.ConfidenceExplanation, "0.80")
	assert.Contains(t, block.ConfidenceExplanation, "High")
	assert.Equal(t, []string{"rs3892097"}, block.VariantCitations)
}

func TestTemplateProvider_Explain_Deterministic(t *testing.T) {
	provider := NewTemplateProvider()

	req := domain.ExplainRequest{
		Drug:            "WARFARIN",
		Gene:            "CYP2C9",
		Diplotype:       "*1/*3",
		Phenotype:       "Intermediate Metabolizer",
		RiskLabel:       domain.ADJUST_DOSAGE,
		Severity:        domain.SEVERITY_MODERATE,
		ConfidenceScore: 0.55,
		ConfidenceLevel: domain.MODERATE_CONFIDENCE,
	}

	first, err := provider.Explain(context.Background(), req)
	require.NoError(t, err)
	second, err := provider.Explain(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTemplateProvider_Explain_UnknownDrug(t *testing.T) {
	provider := NewTemplateProvider()

	block, err := provider.Explain(context.Background(), domain.ExplainRequest{
		Drug:      "ASPIRIN",
		RiskLabel: domain.UNKNOWN_RISK,
	})
	require.NoError(t, err)

	assert.Contains(t, block.Summary, "ASPIRIN")
	assert.Contains(t, block.Summary, "outside the curated pharmacogenomic knowledge base")
	assert.Empty(t, block.VariantCitations)
	assert.NotNil(t, block.VariantCitations, "citations marshal as [] not null")
}

func TestSignificanceFor_CoversAllSeverities(t *testing.T) {
	severities := []domain.Severity{
		domain.SEVERITY_NONE,
		domain.SEVERITY_LOW,
		domain.SEVERITY_MODERATE,
		domain.SEVERITY_HIGH,
		domain.SEVERITY_CRITICAL,
	}
	seen := make(map[string]bool)
	for _, severity := range severities {
		text := significanceFor(severity)
		assert.NotEmpty(t, text)
		seen[text] = true
	}
	assert.Len(t, seen, len(severities), "each severity has distinct narrative text")
}
