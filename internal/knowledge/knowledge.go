// Package knowledge holds the curated pharmacogene reference data: gene to
// star-allele activity tables, drug risk maps, the phenotype display
// dictionary, population allele frequencies, and the derived rsID reverse
// index. The base is built once at process start, validated, and shared
// read-only across concurrent requests.
package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pgx-risk-server/internal/domain"
)

// AlleleDefinition describes one star allele of a pharmacogene.
type AlleleDefinition struct {
	RsIDs         []string `json:"rsids"`
	Function      string   `json:"function"`
	ActivityScore float64  `json:"activity_score"`
}

// GeneDefinition describes a curated pharmacogene and its star alleles.
type GeneDefinition struct {
	Symbol      string                      `json:"symbol"`
	Chromosome  string                      `json:"chromosome"`
	Description string                      `json:"description"`
	Scale       domain.GeneScale            `json:"scale"`
	Alleles     map[string]AlleleDefinition `json:"alleles"`
}

// ReferenceAllele returns the gene's reference star-allele name.
func (g *GeneDefinition) ReferenceAllele() string {
	return "*1"
}

// RiskEntry is one phenotype entry in a drug's risk map.
type RiskEntry struct {
	Label           domain.RiskLabel `json:"label"`
	Severity        domain.Severity  `json:"severity"`
	Explanation     string           `json:"explanation"`
	Recommendation  string           `json:"recommendation"`
	DosingGuideline string           `json:"dosing_guideline"`
}

// DrugProfile describes a curated drug, its primary pharmacogene, and the
// phenotype-keyed risk map.
type DrugProfile struct {
	Name         string                             `json:"name"`
	PrimaryGene  string                             `json:"primary_gene"`
	Mechanism    string                             `json:"mechanism"`
	Risk         map[domain.PhenotypeCode]RiskEntry `json:"risk"`
	Alternatives []string                           `json:"alternatives"`
}

// AlleleMatch is one entry of the rsID reverse index.
type AlleleMatch struct {
	Gene          string  `json:"gene"`
	StarAllele    string  `json:"star_allele"`
	Function      string  `json:"function"`
	ActivityScore float64 `json:"activity_score"`
}

// Base is the process-wide pharmacogenomic knowledge base. All maps are
// read-only after New returns; unrestricted concurrent reads are safe.
type Base struct {
	genes          map[string]GeneDefinition
	drugs          map[string]DrugProfile
	phenotypeNames map[domain.PhenotypeCode]string
	frequencies    map[string]map[domain.Ancestry]float64
	rsidIndex      map[string][]AlleleMatch
	drugNames      []string
}

// New builds the knowledge base from the curated tables, derives the rsID
// reverse index, and validates the structural invariants.
func New() (*Base, error) {
	b := &Base{
		genes:          geneDefinitions(),
		drugs:          drugProfiles(),
		phenotypeNames: phenotypeDictionary(),
		frequencies:    alleleFrequencies(),
	}

	b.rsidIndex = buildRsidIndex(b.genes)

	for name := range b.drugs {
		b.drugNames = append(b.drugNames, name)
	}
	sort.Strings(b.drugNames)

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("building knowledge base: %w", err)
	}
	return b, nil
}

// buildRsidIndex derives the rsID -> allele match index. The index is a
// startup build step, never recomputed per request. Duplicate
// (rsid, gene, star) triples beyond what the source tables define are
// collapsed.
func buildRsidIndex(genes map[string]GeneDefinition) map[string][]AlleleMatch {
	index := make(map[string][]AlleleMatch)
	seen := make(map[string]bool)

	symbols := make([]string, 0, len(genes))
	for symbol := range genes {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		gene := genes[symbol]
		alleles := make([]string, 0, len(gene.Alleles))
		for name := range gene.Alleles {
			alleles = append(alleles, name)
		}
		sort.Strings(alleles)

		for _, alleleName := range alleles {
			allele := gene.Alleles[alleleName]
			for _, rsid := range allele.RsIDs {
				key := rsid + "|" + symbol + "|" + alleleName
				if seen[key] {
					continue
				}
				seen[key] = true
				index[rsid] = append(index[rsid], AlleleMatch{
					Gene:          symbol,
					StarAllele:    alleleName,
					Function:      allele.Function,
					ActivityScore: allele.ActivityScore,
				})
			}
		}
	}
	return index
}

// validate enforces the structural invariants of the curated tables.
func (b *Base) validate() error {
	for symbol, gene := range b.genes {
		ref, ok := gene.Alleles[gene.ReferenceAllele()]
		if !ok {
			return fmt.Errorf("gene %s: missing reference allele %s", symbol, gene.ReferenceAllele())
		}
		if gene.Scale == domain.METABOLIZER_SCALE && ref.ActivityScore != 1.0 {
			return fmt.Errorf("gene %s: reference allele must score 1.0, got %.2f", symbol, ref.ActivityScore)
		}
		for name, allele := range gene.Alleles {
			if allele.ActivityScore < 0 {
				return fmt.Errorf("gene %s allele %s: negative activity score", symbol, name)
			}
		}
	}

	for name, drug := range b.drugs {
		gene, ok := b.genes[drug.PrimaryGene]
		if !ok {
			return fmt.Errorf("drug %s: unknown primary gene %s", name, drug.PrimaryGene)
		}
		for code := range drug.Risk {
			if !code.OnScale(gene.Scale) {
				return fmt.Errorf("drug %s: phenotype %s not on %s scale of gene %s",
					name, code, gene.Scale, drug.PrimaryGene)
			}
		}
	}
	return nil
}

// Gene returns the definition for a gene symbol (case-insensitive).
func (b *Base) Gene(symbol string) (GeneDefinition, bool) {
	gene, ok := b.genes[strings.ToUpper(strings.TrimSpace(symbol))]
	return gene, ok
}

// IsGene reports whether the symbol names a curated pharmacogene.
func (b *Base) IsGene(symbol string) bool {
	_, ok := b.genes[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// GeneSymbols returns the curated gene symbols in sorted order.
func (b *Base) GeneSymbols() []string {
	symbols := make([]string, 0, len(b.genes))
	for symbol := range b.genes {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Drug returns the profile for a drug name, normalized to canonical
// uppercase with surrounding whitespace trimmed.
func (b *Base) Drug(name string) (DrugProfile, bool) {
	drug, ok := b.drugs[strings.ToUpper(strings.TrimSpace(name))]
	return drug, ok
}

// DrugNames returns the supported drug names in sorted order.
func (b *Base) DrugNames() []string {
	return append([]string(nil), b.drugNames...)
}

// LookupRsID returns the allele matches for a reference SNP ID.
func (b *Base) LookupRsID(rsid string) []AlleleMatch {
	return b.rsidIndex[strings.ToLower(strings.TrimSpace(rsid))]
}

// PhenotypeName returns the display name for a phenotype code, falling back
// to the raw code for unknown entries.
func (b *Base) PhenotypeName(code domain.PhenotypeCode) string {
	if name, ok := b.phenotypeNames[code]; ok {
		return name
	}
	return string(code)
}

// Frequency returns the allele frequency of an rsID for the given ancestry,
// falling back to the global entry. ok is false when no data exists for the
// rsID at all.
func (b *Base) Frequency(rsid string, ancestry domain.Ancestry) (float64, bool) {
	byAncestry, ok := b.frequencies[strings.ToLower(strings.TrimSpace(rsid))]
	if !ok {
		return 0, false
	}
	if freq, ok := byAncestry[ancestry]; ok {
		return freq, true
	}
	freq, ok := byAncestry[domain.ANCESTRY_GLOBAL]
	return freq, ok
}

// phenotypeDictionary maps phenotype codes to their clinical display names.
func phenotypeDictionary() map[domain.PhenotypeCode]string {
	return map[domain.PhenotypeCode]string{
		domain.URM: "Ultrarapid Metabolizer",
		domain.RM:  "Rapid Metabolizer",
		domain.NM:  "Normal Metabolizer",
		domain.IM:  "Intermediate Metabolizer",
		domain.PM:  "Poor Metabolizer",
		domain.NF:  "Normal Function",
		domain.DF:  "Decreased Function",
		domain.PF:  "Poor Function",
	}
}
