package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgx-risk-server/internal/domain"
)

func variantWith(gene, star, genotype string) domain.VariantRecord {
	return domain.VariantRecord{
		Genotype: genotype,
		Annotations: []domain.PgxAnnotation{
			{Gene: gene, StarAllele: star},
		},
	}
}

func TestDiplotypeResolver_Resolve(t *testing.T) {
	resolver := NewDiplotypeResolver(testKnowledgeBase(t))

	tests := []struct {
		name          string
		gene          string
		variants      []domain.VariantRecord
		wantDiplotype string
		wantScore     float64
		wantCode      domain.PhenotypeCode
	}{
		{
			name:          "No variants defaults to reference pair",
			gene:          "CYP2D6",
			variants:      nil,
			wantDiplotype: "*1/*1",
			wantScore:     2.0,
			wantCode:      domain.NM,
		},
		{
			name:          "Homozygous null allele",
			gene:          "CYP2D6",
			variants:      []domain.VariantRecord{variantWith("CYP2D6", "*4", "1/1")},
			wantDiplotype: "*4/*4",
			wantScore:     0.0,
			wantCode:      domain.PM,
		},
		{
			name:          "Heterozygous null allele pairs with reference",
			gene:          "CYP2D6",
			variants:      []domain.VariantRecord{variantWith("CYP2D6", "*4", "0/1")},
			wantDiplotype: "*4/*1",
			wantScore:     1.0,
			wantCode:      domain.NM,
		},
		{
			name: "Two detected alleles win in encounter order",
			gene: "CYP2D6",
			variants: []domain.VariantRecord{
				variantWith("CYP2D6", "*10", "0/1"),
				variantWith("CYP2D6", "*4", "0/1"),
				variantWith("CYP2D6", "*41", "0/1"),
			},
			wantDiplotype: "*10/*4",
			wantScore:     0.25,
			wantCode:      domain.IM,
		},
		{
			name:          "Homozygous reduced-function alleles sum to normal",
			gene:          "CYP2D6",
			variants:      []domain.VariantRecord{variantWith("CYP2D6", "*41", "1/1")},
			wantDiplotype: "*41/*41",
			wantScore:     1.0,
			wantCode:      domain.NM,
		},
		{
			name:          "Increased function allele raises the score",
			gene:          "CYP2C19",
			variants:      []domain.VariantRecord{variantWith("CYP2C19", "*17", "1/1")},
			wantDiplotype: "*17/*17",
			wantScore:     3.0,
			wantCode:      domain.URM,
		},
		{
			name:          "Transporter gene classifies on function scale",
			gene:          "SLCO1B1",
			variants:      []domain.VariantRecord{variantWith("SLCO1B1", "*5", "1/1")},
			wantDiplotype: "*5/*5",
			wantScore:     0.0,
			wantCode:      domain.PF,
		},
		{
			name:          "Transporter heterozygote keeps decreased function",
			gene:          "SLCO1B1",
			variants:      []domain.VariantRecord{variantWith("SLCO1B1", "*5", "0/1")},
			wantDiplotype: "*5/*1",
			wantScore:     1.0,
			wantCode:      domain.DF,
		},
		{
			name:          "Annotations for other genes are ignored",
			gene:          "CYP2D6",
			variants:      []domain.VariantRecord{variantWith("CYP2C19", "*2", "1/1")},
			wantDiplotype: "*1/*1",
			wantScore:     2.0,
			wantCode:      domain.NM,
		},
		{
			name:          "Reference star annotation does not count as detected",
			gene:          "CYP2D6",
			variants:      []domain.VariantRecord{variantWith("CYP2D6", "*1", "1/1")},
			wantDiplotype: "*1/*1",
			wantScore:     2.0,
			wantCode:      domain.NM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolver.Resolve(tt.gene, tt.variants)
			assert.Equal(t, tt.wantDiplotype, result.Diplotype)
			assert.InDelta(t, tt.wantScore, result.ActivityScore, 1e-9)
			assert.Equal(t, tt.wantCode, result.PhenotypeCode)
		})
	}
}

func TestDiplotypeResolver_Resolve_UnknownGene(t *testing.T) {
	resolver := NewDiplotypeResolver(testKnowledgeBase(t))

	result := resolver.Resolve("UNKNOWN_GENE", nil)
	assert.Equal(t, "*1/*1", result.Diplotype)
	assert.InDelta(t, 2.0, result.ActivityScore, 1e-9)
	assert.Equal(t, domain.NM, result.PhenotypeCode)
}

func TestClassifyPhenotype_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		scale domain.GeneScale
		score float64
		want  domain.PhenotypeCode
	}{
		{"Metabolizer ultrarapid at threshold", domain.METABOLIZER_SCALE, 2.25, domain.URM},
		{"Metabolizer rapid below ultrarapid", domain.METABOLIZER_SCALE, 2.0, domain.RM},
		{"Metabolizer rapid at threshold", domain.METABOLIZER_SCALE, 1.5, domain.RM},
		{"Metabolizer normal at threshold", domain.METABOLIZER_SCALE, 1.0, domain.NM},
		{"Metabolizer intermediate", domain.METABOLIZER_SCALE, 0.5, domain.IM},
		{"Metabolizer poor at zero", domain.METABOLIZER_SCALE, 0.0, domain.PM},
		{"Transporter normal at threshold", domain.TRANSPORTER_SCALE, 2.0, domain.NF},
		{"Transporter decreased at threshold", domain.TRANSPORTER_SCALE, 1.0, domain.DF},
		{"Transporter poor below one", domain.TRANSPORTER_SCALE, 0.5, domain.PF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyPhenotype(tt.scale, tt.score))
		})
	}
}
