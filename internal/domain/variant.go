package domain

import "strings"

// PgxAnnotation links a parsed variant to a pharmacogene star allele.
// A variant may carry several annotations when its rsID maps to more than
// one allele definition or when inline annotations add to index matches.
type PgxAnnotation struct {
	Gene          string   `json:"gene"`
	StarAllele    string   `json:"star_allele,omitempty"`
	Function      string   `json:"function,omitempty"`
	ActivityScore *float64 `json:"activity_score,omitempty"`
	Source        string   `json:"source"` // "inline" or "rsid_index"
}

// VariantRecord is one parsed VCF data line that passed the pharmacogenomic
// relevance test. Records are created once during parsing, never mutated
// afterward, and live only for the duration of one analysis request.
type VariantRecord struct {
	Chromosome      string            `json:"chromosome"`
	Position        int64             `json:"position"`
	RsIDs           []string          `json:"rsids"`
	Reference       string            `json:"reference"`
	Alternates      []string          `json:"alternates"`
	Quality         *float64          `json:"quality,omitempty"`
	Filter          string            `json:"filter"`
	Info            map[string]string `json:"info"`
	Genotype        string            `json:"genotype,omitempty"`
	GenotypeQuality *float64          `json:"genotype_quality,omitempty"`
	Annotations     []PgxAnnotation   `json:"annotations"`
}

// Genes returns the distinct gene symbols this variant is annotated for.
func (v *VariantRecord) Genes() []string {
	seen := make(map[string]bool)
	genes := make([]string, 0, len(v.Annotations))
	for _, ann := range v.Annotations {
		if ann.Gene != "" && !seen[ann.Gene] {
			seen[ann.Gene] = true
			genes = append(genes, ann.Gene)
		}
	}
	return genes
}

// AnnotatedFor reports whether the variant carries an annotation for the gene.
func (v *VariantRecord) AnnotatedFor(gene string) bool {
	for _, ann := range v.Annotations {
		if strings.EqualFold(ann.Gene, gene) {
			return true
		}
	}
	return false
}

// IsHomozygous reports whether the genotype string calls the same non-reference
// allele on both chromosomes (e.g. "1/1" or "2|2"). Missing or single-field
// genotypes are never homozygous.
func (v *VariantRecord) IsHomozygous() bool {
	return GenotypeIsHomozygous(v.Genotype)
}

// GenotypeIsHomozygous implements the shared two-allele genotype check used by
// the diplotype resolver and the risk engine confidence scoring.
func GenotypeIsHomozygous(genotype string) bool {
	a1, a2, ok := SplitGenotype(genotype)
	if !ok {
		return false
	}
	return a1 == a2 && a1 != "0" && a1 != "."
}

// SplitGenotype splits a "/"- or "|"-delimited genotype string into its two
// allele fields. ok is false when the string does not hold exactly two fields.
func SplitGenotype(genotype string) (string, string, bool) {
	sep := "/"
	if strings.Contains(genotype, "|") {
		sep = "|"
	}
	parts := strings.Split(genotype, sep)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
