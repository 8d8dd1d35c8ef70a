package service

import (
	"fmt"

	"github.com/pgx-risk-server/internal/domain"
	"github.com/pgx-risk-server/internal/knowledge"
)

// rareFrequencyThreshold flags variants seen in strictly less than 1% of the
// selected population.
const rareFrequencyThreshold = 0.01

// PopulationService annotates variants with ancestry-specific allele
// frequency, flags rare variants, and supplies zygosity/inheritance notes.
type PopulationService struct {
	kb *knowledge.Base
}

// NewPopulationService creates a new population context service.
func NewPopulationService(kb *knowledge.Base) *PopulationService {
	return &PopulationService{kb: kb}
}

// Context returns one insight per distinct rsID across the variant set,
// carrying the inheritance context of the variant the rsID was first seen
// on. An rsID without table data is not flagged rare: absence of data is
// not evidence of rarity.
func (s *PopulationService) Context(variants []domain.VariantRecord, ancestry domain.Ancestry) []domain.PopulationInsight {
	var insights []domain.PopulationInsight
	seen := make(map[string]bool)

	for _, variant := range variants {
		for _, rsid := range variant.RsIDs {
			if seen[rsid] {
				continue
			}
			seen[rsid] = true
			insight := s.insightFor(rsid, ancestry)
			insight.Inheritance = s.Inheritance(variant.Genotype)
			insights = append(insights, insight)
		}
	}
	return insights
}

// IsRare reports whether the rsID's frequency for the ancestry (with global
// fallback) is strictly below the 1% threshold.
func (s *PopulationService) IsRare(rsid string, ancestry domain.Ancestry) bool {
	freq, ok := s.kb.Frequency(rsid, ancestry)
	return ok && isRareFrequency(freq)
}

// isRareFrequency applies the rarity cutoff: strictly below the threshold,
// so a frequency of exactly 1% is not rare.
func isRareFrequency(freq float64) bool {
	return freq < rareFrequencyThreshold
}

func (s *PopulationService) insightFor(rsid string, ancestry domain.Ancestry) domain.PopulationInsight {
	freq, ok := s.kb.Frequency(rsid, ancestry)
	if !ok {
		return domain.PopulationInsight{
			RsID:           rsid,
			PopulationNote: fmt.Sprintf("No population frequency data available for %s", rsid),
		}
	}

	insight := domain.PopulationInsight{
		RsID:      rsid,
		Frequency: &freq,
		Rare:      isRareFrequency(freq),
	}
	if insight.Rare {
		insight.PopulationNote = fmt.Sprintf(
			"Rare variant: allele frequency %.4f (<1%%) in the %s population", freq, ancestry)
	} else {
		insight.PopulationNote = fmt.Sprintf(
			"Allele frequency %.4f in the %s population", freq, ancestry)
	}
	return insight
}

// Inheritance derives zygosity and inheritance context from a two-allele
// genotype string. Reference/reference genotypes carry no annotation.
func (s *PopulationService) Inheritance(genotype string) *domain.InheritanceNote {
	a1, a2, ok := domain.SplitGenotype(genotype)
	if !ok {
		return nil
	}
	if (a1 == "0" || a1 == ".") && (a2 == "0" || a2 == ".") {
		return nil
	}

	note := &domain.InheritanceNote{
		FamilyScreening: "Consider pharmacogenetic screening for first-degree relatives, who may share this variant",
	}
	if a1 == a2 {
		note.Zygosity = "Homozygous"
		note.InheritanceNote = "Both gene copies carry this variant; one copy was inherited from each parent"
	} else {
		note.Zygosity = "Heterozygous"
		note.InheritanceNote = "One gene copy carries this variant, inherited from one parent"
	}
	return note
}
