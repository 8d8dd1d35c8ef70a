package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgx-risk-server/internal/domain"
)

func TestNew_ValidatesCuratedTables(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)
	require.NotNil(t, kb)

	// Every gene must carry its reference allele.
	for _, symbol := range kb.GeneSymbols() {
		gene, ok := kb.Gene(symbol)
		require.True(t, ok)
		_, hasRef := gene.Alleles[gene.ReferenceAllele()]
		assert.True(t, hasRef, "gene %s missing reference allele", symbol)
	}

	// Every drug's risk map must only use phenotype codes on its gene's scale.
	for _, name := range kb.DrugNames() {
		drug, ok := kb.Drug(name)
		require.True(t, ok)
		gene, ok := kb.Gene(drug.PrimaryGene)
		require.True(t, ok, "drug %s references unknown gene %s", name, drug.PrimaryGene)
		for code := range drug.Risk {
			assert.True(t, code.OnScale(gene.Scale),
				"drug %s maps phenotype %s off the %s scale", name, code, gene.Scale)
		}
	}
}

func TestBase_GeneLookup(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)

	tests := []struct {
		name   string
		symbol string
		want   bool
	}{
		{"Canonical uppercase", "CYP2D6", true},
		{"Lowercase", "cyp2d6", true},
		{"Whitespace", "  CYP2C19 ", true},
		{"Transporter gene", "SLCO1B1", true},
		{"Unknown gene", "BRCA1", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := kb.Gene(tt.symbol)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.want, kb.IsGene(tt.symbol))
		})
	}
}

func TestBase_DrugLookup(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)

	drug, ok := kb.Drug("codeine")
	require.True(t, ok, "drug lookup must be case-insensitive")
	assert.Equal(t, "CODEINE", drug.Name)
	assert.Equal(t, "CYP2D6", drug.PrimaryGene)

	_, ok = kb.Drug("ASPIRIN")
	assert.False(t, ok)

	names := kb.DrugNames()
	assert.Len(t, names, 6)
	assert.Contains(t, names, "WARFARIN")
	assert.Contains(t, names, "FLUOROURACIL")
}

func TestBase_LookupRsID(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		rsid     string
		wantGene string
		wantStar string
	}{
		{"CYP2D6 *4 defining SNP", "rs3892097", "CYP2D6", "*4"},
		{"Uppercase input", "RS3892097", "CYP2D6", "*4"},
		{"CYP2C19 *2", "rs4244285", "CYP2C19", "*2"},
		{"SLCO1B1 *5", "rs4149056", "SLCO1B1", "*5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := kb.LookupRsID(tt.rsid)
			require.NotEmpty(t, matches)
			assert.Equal(t, tt.wantGene, matches[0].Gene)
			assert.Equal(t, tt.wantStar, matches[0].StarAllele)
		})
	}

	assert.Empty(t, kb.LookupRsID("rs9999999"))
}

func TestBase_LookupRsID_NoDuplicateMatches(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)

	// rs16947 defines CYP2D6 *2 alongside rs1135840; the index must hold one
	// (gene, star) entry per rsID, not one per defining-SNP combination.
	seen := make(map[string]bool)
	for _, match := range kb.LookupRsID("rs16947") {
		key := match.Gene + "|" + match.StarAllele
		assert.False(t, seen[key], "duplicate match %s", key)
		seen[key] = true
	}
}

func TestBase_Frequency(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		rsid     string
		ancestry domain.Ancestry
		want     float64
		wantOK   bool
	}{
		{"Exact ancestry entry", "rs3892097", domain.ANCESTRY_EUROPEAN, 0.18, true},
		{"East Asian entry", "rs3892097", domain.ANCESTRY_EAST_ASIAN, 0.005, true},
		{"Global entry", "rs3892097", domain.ANCESTRY_GLOBAL, 0.12, true},
		{"Missing ancestry falls back to global", "rs1135840", domain.ANCESTRY_AFRICAN, 0.43, true},
		{"Unknown rsID", "rs424242", domain.ANCESTRY_GLOBAL, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freq, ok := kb.Frequency(tt.rsid, tt.ancestry)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, freq, 1e-9)
			}
		})
	}
}

func TestBase_PhenotypeName(t *testing.T) {
	kb, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Normal Metabolizer", kb.PhenotypeName(domain.NM))
	assert.Equal(t, "Poor Metabolizer", kb.PhenotypeName(domain.PM))
	assert.Equal(t, "XX", kb.PhenotypeName(domain.PhenotypeCode("XX")))
}
