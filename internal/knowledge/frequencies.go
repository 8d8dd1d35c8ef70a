package knowledge

import "github.com/pgx-risk-server/internal/domain"

// alleleFrequencies returns the population allele-frequency table for the
// defining SNPs of the curated star alleles. Values approximate gnomAD v4
// popmax summaries. Every rsID carries a global entry; missing ancestry
// entries fall back to it at lookup time.
func alleleFrequencies() map[string]map[domain.Ancestry]float64 {
	return map[string]map[domain.Ancestry]float64{
		// CYP2D6
		"rs16947": {
			domain.ANCESTRY_GLOBAL:      0.34,
			domain.ANCESTRY_EUROPEAN:    0.34,
			domain.ANCESTRY_AFRICAN:     0.44,
			domain.ANCESTRY_EAST_ASIAN:  0.13,
			domain.ANCESTRY_SOUTH_ASIAN: 0.29,
		},
		"rs1135840": {
			domain.ANCESTRY_GLOBAL:      0.43,
			domain.ANCESTRY_EUROPEAN:    0.45,
			domain.ANCESTRY_EAST_ASIAN:  0.56,
		},
		"rs3892097": {
			domain.ANCESTRY_GLOBAL:      0.12,
			domain.ANCESTRY_EUROPEAN:    0.18,
			domain.ANCESTRY_AFRICAN:     0.03,
			domain.ANCESTRY_EAST_ASIAN:  0.005,
			domain.ANCESTRY_SOUTH_ASIAN: 0.09,
		},
		"rs1065852": {
			domain.ANCESTRY_GLOBAL:      0.23,
			domain.ANCESTRY_EAST_ASIAN:  0.42,
			domain.ANCESTRY_EUROPEAN:    0.20,
		},
		"rs28371706": {
			domain.ANCESTRY_GLOBAL:  0.04,
			domain.ANCESTRY_AFRICAN: 0.20,
			domain.ANCESTRY_EUROPEAN: 0.002,
		},
		"rs28371725": {
			domain.ANCESTRY_GLOBAL:      0.06,
			domain.ANCESTRY_EUROPEAN:    0.09,
			domain.ANCESTRY_EAST_ASIAN:  0.02,
		},

		// CYP2C19
		"rs4244285": {
			domain.ANCESTRY_GLOBAL:      0.15,
			domain.ANCESTRY_EAST_ASIAN:  0.31,
			domain.ANCESTRY_SOUTH_ASIAN: 0.30,
			domain.ANCESTRY_EUROPEAN:    0.15,
			domain.ANCESTRY_AFRICAN:     0.17,
		},
		"rs4986893": {
			domain.ANCESTRY_GLOBAL:     0.004,
			domain.ANCESTRY_EAST_ASIAN: 0.06,
			domain.ANCESTRY_EUROPEAN:   0.0004,
		},
		"rs12248560": {
			domain.ANCESTRY_GLOBAL:      0.15,
			domain.ANCESTRY_EUROPEAN:    0.22,
			domain.ANCESTRY_AFRICAN:     0.24,
			domain.ANCESTRY_EAST_ASIAN:  0.015,
		},

		// CYP2C9
		"rs1799853": {
			domain.ANCESTRY_GLOBAL:      0.08,
			domain.ANCESTRY_EUROPEAN:    0.12,
			domain.ANCESTRY_EAST_ASIAN:  0.001,
			domain.ANCESTRY_SOUTH_ASIAN: 0.04,
		},
		"rs1057910": {
			domain.ANCESTRY_GLOBAL:      0.04,
			domain.ANCESTRY_EUROPEAN:    0.07,
			domain.ANCESTRY_EAST_ASIAN:  0.03,
			domain.ANCESTRY_SOUTH_ASIAN: 0.11,
		},

		// SLCO1B1
		"rs2306283": {
			domain.ANCESTRY_GLOBAL:     0.40,
			domain.ANCESTRY_AFRICAN:    0.77,
			domain.ANCESTRY_EAST_ASIAN: 0.74,
		},
		"rs4149056": {
			domain.ANCESTRY_GLOBAL:      0.08,
			domain.ANCESTRY_EUROPEAN:    0.16,
			domain.ANCESTRY_EAST_ASIAN:  0.12,
			domain.ANCESTRY_AFRICAN:     0.02,
			domain.ANCESTRY_SOUTH_ASIAN: 0.04,
		},

		// TPMT
		"rs1800462": {
			domain.ANCESTRY_GLOBAL:   0.003,
			domain.ANCESTRY_EUROPEAN: 0.005,
		},
		"rs1800460": {
			domain.ANCESTRY_GLOBAL:   0.03,
			domain.ANCESTRY_EUROPEAN: 0.04,
			domain.ANCESTRY_EAST_ASIAN: 0.0002,
		},
		"rs1142345": {
			domain.ANCESTRY_GLOBAL:   0.035,
			domain.ANCESTRY_EUROPEAN: 0.04,
			domain.ANCESTRY_AFRICAN:  0.06,
		},

		// DPYD
		"rs3918290": {
			domain.ANCESTRY_GLOBAL:     0.007,
			domain.ANCESTRY_EUROPEAN:   0.012,
			domain.ANCESTRY_EAST_ASIAN: 0.0001,
		},
		"rs55886062": {
			domain.ANCESTRY_GLOBAL:   0.0008,
			domain.ANCESTRY_EUROPEAN: 0.0014,
		},
		"rs56038477": {
			domain.ANCESTRY_GLOBAL:   0.02,
			domain.ANCESTRY_EUROPEAN: 0.024,
		},
	}
}
