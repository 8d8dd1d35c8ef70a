package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLabel_IsValid(t *testing.T) {
	valid := []RiskLabel{SAFE, ADJUST_DOSAGE, TOXIC, INEFFECTIVE, UNKNOWN_RISK}
	for _, label := range valid {
		assert.True(t, label.IsValid(), "label %s", label)
	}
	assert.False(t, RiskLabel("Hazardous").IsValid())
	assert.False(t, RiskLabel("").IsValid())
}

func TestRiskLabel_RequiresClinicalAction(t *testing.T) {
	assert.True(t, TOXIC.RequiresClinicalAction())
	assert.True(t, INEFFECTIVE.RequiresClinicalAction())
	assert.True(t, ADJUST_DOSAGE.RequiresClinicalAction())
	assert.False(t, SAFE.RequiresClinicalAction())
	assert.False(t, UNKNOWN_RISK.RequiresClinicalAction())
}

func TestPhenotypeCode_OnScale(t *testing.T) {
	metabolizer := []PhenotypeCode{URM, RM, NM, IM, PM}
	transporter := []PhenotypeCode{NF, DF, PF}

	for _, code := range metabolizer {
		assert.True(t, code.OnScale(METABOLIZER_SCALE), "code %s", code)
		assert.False(t, code.OnScale(TRANSPORTER_SCALE), "code %s", code)
	}
	for _, code := range transporter {
		assert.True(t, code.OnScale(TRANSPORTER_SCALE), "code %s", code)
		assert.False(t, code.OnScale(METABOLIZER_SCALE), "code %s", code)
	}
}

func TestParseAncestry(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Ancestry
		wantErr bool
	}{
		{"Empty defaults to global", "", ANCESTRY_GLOBAL, false},
		{"Known code", "east_asian", ANCESTRY_EAST_ASIAN, false},
		{"Global explicit", "global", ANCESTRY_GLOBAL, false},
		{"Other", "other", ANCESTRY_OTHER, false},
		{"Unknown code", "martian", "", true},
		{"Wrong separator", "east-asian", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAncestry(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAncestry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfidenceLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceLevel
	}{
		{0.95, HIGH_CONFIDENCE},
		{0.75, HIGH_CONFIDENCE},
		{0.74, MODERATE_CONFIDENCE},
		{0.50, MODERATE_CONFIDENCE},
		{0.49, LOW_CONFIDENCE},
		{0.0, LOW_CONFIDENCE},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceLevelFor(tt.score), "score %.2f", tt.score)
	}
}

func TestGenotypeHelpers(t *testing.T) {
	tests := []struct {
		genotype       string
		wantHomozygous bool
	}{
		{"1/1", true},
		{"2|2", true},
		{"0/1", false},
		{"0/0", false}, // reference pair is not a variant homozygote
		{"./.", false},
		{"1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantHomozygous, GenotypeIsHomozygous(tt.genotype), "genotype %q", tt.genotype)
	}

	a1, a2, ok := SplitGenotype("0|1")
	require.True(t, ok)
	assert.Equal(t, "0", a1)
	assert.Equal(t, "1", a2)

	_, _, ok = SplitGenotype("0/1/2")
	assert.False(t, ok)
}

func TestVariantRecord_Genes(t *testing.T) {
	variant := VariantRecord{
		Annotations: []PgxAnnotation{
			{Gene: "CYP2D6", StarAllele: "*4"},
			{Gene: "CYP2D6", StarAllele: "*10"},
			{Gene: "CYP2C19", StarAllele: "*2"},
		},
	}

	assert.ElementsMatch(t, []string{"CYP2D6", "CYP2C19"}, variant.Genes())
	assert.True(t, variant.AnnotatedFor("cyp2d6"))
	assert.False(t, variant.AnnotatedFor("TPMT"))
}
