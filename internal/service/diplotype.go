package service

import (
	"strings"

	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/knowledge"
)

// DiplotypeResult is the resolver output for one gene: the assigned allele
// pair, the star alleles detected in the variant set, the summed activity
// score, and the derived phenotype.
type DiplotypeResult struct {
	Gene            string               `json:"gene"`
	Allele1         string               `json:"allele1"`
	Allele2         string               `json:"allele2"`
	Diplotype       string               `json:"diplotype"`
	DetectedAlleles []string             `json:"detected_alleles"`
	ActivityScore   float64              `json:"activity_score"`
	PhenotypeCode   domain.PhenotypeCode `json:"phenotype_code"`
	Phenotype       string               `json:"phenotype"`
}

// DiplotypeResolver reduces a gene's matched variants into a diplotype,
// total activity score, and phenotype category. Resolution is a pure
// function of its inputs.
//
// Allele selection is the documented simplification, not true haplotype
// phasing: with one detected allele the variant's genotype decides
// homozygosity, with two or more the first two in encounter order win.
// A phasing algorithm can replace this resolver without touching the risk
// engine.
type DiplotypeResolver struct {
	kb *knowledge.Base
}

// NewDiplotypeResolver creates a new diplotype resolver.
func NewDiplotypeResolver(kb *knowledge.Base) *DiplotypeResolver {
	return &DiplotypeResolver{kb: kb}
}

// Resolve derives the diplotype and phenotype for one gene from the subset
// of variants annotated for it.
func (r *DiplotypeResolver) Resolve(gene string, variants []domain.VariantRecord) DiplotypeResult {
	geneDef, known := r.kb.Gene(gene)
	reference := "*1"
	if known {
		reference = geneDef.ReferenceAllele()
	}

	detected, genotypes := r.detectAlleles(gene, variants)

	var allele1, allele2 string
	switch len(detected) {
	case 0:
		allele1, allele2 = reference, reference
	case 1:
		allele1 = detected[0]
		if domain.GenotypeIsHomozygous(genotypes[detected[0]]) {
			allele2 = detected[0]
		} else {
			allele2 = reference
		}
	default:
		allele1, allele2 = detected[0], detected[1]
	}

	score := r.alleleScore(geneDef, known, allele1) + r.alleleScore(geneDef, known, allele2)

	scale := domain.METABOLIZER_SCALE
	if known {
		scale = geneDef.Scale
	}
	code := classifyPhenotype(scale, score)

	return DiplotypeResult{
		Gene:            gene,
		Allele1:         allele1,
		Allele2:         allele2,
		Diplotype:       allele1 + "/" + allele2,
		DetectedAlleles: detected,
		ActivityScore:   score,
		PhenotypeCode:   code,
		Phenotype:       r.kb.PhenotypeName(code),
	}
}

// detectAlleles scans variants in order and collects the distinct non-reference
// star alleles annotated for the gene, remembering the genotype of the variant
// each allele was first seen on. Encounter order is the order of first
// appearance and is load-bearing for multi-allele selection.
func (r *DiplotypeResolver) detectAlleles(gene string, variants []domain.VariantRecord) ([]string, map[string]string) {
	var detected []string
	genotypes := make(map[string]string)
	seen := make(map[string]bool)

	for _, variant := range variants {
		for _, ann := range variant.Annotations {
			if !strings.EqualFold(ann.Gene, gene) || ann.StarAllele == "" || ann.StarAllele == "*1" {
				continue
			}
			if seen[ann.StarAllele] {
				continue
			}
			seen[ann.StarAllele] = true
			detected = append(detected, ann.StarAllele)
			genotypes[ann.StarAllele] = variant.Genotype
		}
	}
	return detected, genotypes
}

// alleleScore returns the activity score of an allele, defaulting unknown
// alleles to 1.0.
func (r *DiplotypeResolver) alleleScore(gene knowledge.GeneDefinition, known bool, allele string) float64 {
	if known {
		if def, ok := gene.Alleles[allele]; ok {
			return def.ActivityScore
		}
	}
	return 1.0
}

// classifyPhenotype maps a total activity score to a phenotype code on the
// gene's scale.
func classifyPhenotype(scale domain.GeneScale, score float64) domain.PhenotypeCode {
	if scale == domain.TRANSPORTER_SCALE {
		switch {
		case score >= 2.0:
			return domain.NF
		case score >= 1.0:
			return domain.DF
		default:
			return domain.PF
		}
	}
	switch {
	case score >= 2.25:
		return domain.URM
	case score >= 1.5:
		return domain.RM
	case score >= 1.0:
		return domain.NM
	case score > 0:
		return domain.IM
	default:
		return domain.PM
	}
}
