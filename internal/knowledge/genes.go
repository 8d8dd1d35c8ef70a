package knowledge

import "github.com/pgx-risk-server/internal/domain"

// geneDefinitions returns the curated pharmacogene tables. Star-allele
// composition and activity scores follow the published CPIC allele
// definition tables; the rsID lists name the defining SNPs only.
func geneDefinitions() map[string]GeneDefinition {
	return map[string]GeneDefinition{
		"CYP2D6": {
			Symbol:      "CYP2D6",
			Chromosome:  "22",
			Description: "Cytochrome P450 2D6, metabolizes ~25% of clinically used drugs including opioids and antidepressants",
			Scale:       domain.METABOLIZER_SCALE,
			Alleles: map[string]AlleleDefinition{
				"*1":  {RsIDs: nil, Function: "normal function", ActivityScore: 1.0},
				"*2":  {RsIDs: []string{"rs16947", "rs1135840"}, Function: "normal function", ActivityScore: 1.0},
				"*4":  {RsIDs: []string{"rs3892097"}, Function: "no function", ActivityScore: 0},
				"*10": {RsIDs: []string{"rs1065852"}, Function: "decreased function", ActivityScore: 0.25},
				"*17": {RsIDs: []string{"rs28371706"}, Function: "decreased function", ActivityScore: 0.5},
				"*41": {RsIDs: []string{"rs28371725"}, Function: "decreased function", ActivityScore: 0.5},
			},
		},
		"CYP2C19": {
			Symbol:      "CYP2C19",
			Chromosome:  "10",
			Description: "Cytochrome P450 2C19, activates clopidogrel and metabolizes proton pump inhibitors and SSRIs",
			Scale:       domain.METABOLIZER_SCALE,
			Alleles: map[string]AlleleDefinition{
				"*1":  {RsIDs: nil, Function: "normal function", ActivityScore: 1.0},
				"*2":  {RsIDs: []string{"rs4244285"}, Function: "no function", ActivityScore: 0},
				"*3":  {RsIDs: []string{"rs4986893"}, Function: "no function", ActivityScore: 0},
				"*17": {RsIDs: []string{"rs12248560"}, Function: "increased function", ActivityScore: 1.5},
			},
		},
		"CYP2C9": {
			Symbol:      "CYP2C9",
			Chromosome:  "10",
			Description: "Cytochrome P450 2C9, metabolizes warfarin, phenytoin and NSAIDs",
			Scale:       domain.METABOLIZER_SCALE,
			Alleles: map[string]AlleleDefinition{
				"*1": {RsIDs: nil, Function: "normal function", ActivityScore: 1.0},
				"*2": {RsIDs: []string{"rs1799853"}, Function: "decreased function", ActivityScore: 0.5},
				"*3": {RsIDs: []string{"rs1057910"}, Function: "no function", ActivityScore: 0},
			},
		},
		"SLCO1B1": {
			Symbol:      "SLCO1B1",
			Chromosome:  "12",
			Description: "Hepatic uptake transporter OATP1B1, carries statins into the liver",
			Scale:       domain.TRANSPORTER_SCALE,
			Alleles: map[string]AlleleDefinition{
				"*1":  {RsIDs: nil, Function: "normal function", ActivityScore: 1.0},
				"*1B": {RsIDs: []string{"rs2306283"}, Function: "normal function", ActivityScore: 1.0},
				"*5":  {RsIDs: []string{"rs4149056"}, Function: "decreased function", ActivityScore: 0},
			},
		},
		"TPMT": {
			Symbol:      "TPMT",
			Chromosome:  "6",
			Description: "Thiopurine S-methyltransferase, inactivates thiopurine immunosuppressants",
			Scale:       domain.METABOLIZER_SCALE,
			Alleles: map[string]AlleleDefinition{
				"*1":  {RsIDs: nil, Function: "normal function", ActivityScore: 1.0},
				"*2":  {RsIDs: []string{"rs1800462"}, Function: "no function", ActivityScore: 0},
				"*3A": {RsIDs: []string{"rs1800460"}, Function: "no function", ActivityScore: 0},
				"*3C": {RsIDs: []string{"rs1142345"}, Function: "no function", ActivityScore: 0},
			},
		},
		"DPYD": {
			Symbol:      "DPYD",
			Chromosome:  "1",
			Description: "Dihydropyrimidine dehydrogenase, rate-limiting enzyme of fluoropyrimidine catabolism",
			Scale:       domain.METABOLIZER_SCALE,
			Alleles: map[string]AlleleDefinition{
				"*1":     {RsIDs: nil, Function: "normal function", ActivityScore: 1.0},
				"*2A":    {RsIDs: []string{"rs3918290"}, Function: "no function", ActivityScore: 0},
				"*13":    {RsIDs: []string{"rs55886062"}, Function: "no function", ActivityScore: 0},
				"HapB3":  {RsIDs: []string{"rs56038477"}, Function: "decreased function", ActivityScore: 0.5},
			},
		},
	}
}
