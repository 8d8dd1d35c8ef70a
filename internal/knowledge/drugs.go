package knowledge

import "github.com/pgx-risk-server/internal/domain"

// drugProfiles returns the curated drug risk tables. Risk labels, severities
// and dosing text follow the corresponding CPIC dosing guidelines for each
// drug/gene pair. Every phenotype the resolver can produce on the primary
// gene's scale has an entry, so a resolved phenotype always maps.
func drugProfiles() map[string]DrugProfile {
	return map[string]DrugProfile{
		"CODEINE": {
			Name:        "CODEINE",
			PrimaryGene: "CYP2D6",
			Mechanism:   "Prodrug requiring CYP2D6-mediated O-demethylation to morphine for analgesic effect",
			Risk: map[domain.PhenotypeCode]RiskEntry{
				domain.URM: {
					Label:           domain.TOXIC,
					Severity:        domain.SEVERITY_CRITICAL,
					Explanation:     "Ultrarapid conversion to morphine produces dangerously high opioid exposure even at standard doses",
					Recommendation:  "Avoid codeine; risk of life-threatening respiratory depression",
					DosingGuideline: "Do not use. Select a non-tramadol, non-codeine analgesic",
				},
				domain.RM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_MODERATE,
					Explanation:     "Rapid metabolizers form morphine faster than normal, increasing adverse-effect risk",
					Recommendation:  "Use with caution at the lowest effective dose",
					DosingGuideline: "Start at the low end of the dosing range with close follow-up",
				},
				domain.NM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal morphine formation; expected analgesia at label doses",
					Recommendation:  "Use codeine per standard dosing",
					DosingGuideline: "Standard age- and weight-based dosing",
				},
				domain.IM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_MODERATE,
					Explanation:     "Reduced morphine formation may give diminished analgesia",
					Recommendation:  "Monitor for inadequate pain relief; consider an alternative if ineffective",
					DosingGuideline: "Standard dosing with reassessment at 24-48 hours",
				},
				domain.PM: {
					Label:           domain.INEFFECTIVE,
					Severity:        domain.SEVERITY_HIGH,
					Explanation:     "Little or no conversion to morphine; codeine provides no meaningful analgesia",
					Recommendation:  "Avoid codeine; select a non-prodrug opioid or non-opioid analgesic",
					DosingGuideline: "Do not use. Morphine or a non-opioid analgesic is preferred",
				},
			},
			Alternatives: []string{"Morphine", "Hydromorphone", "Non-opioid analgesics (NSAIDs, acetaminophen)"},
		},
		"WARFARIN": {
			Name:        "WARFARIN",
			PrimaryGene: "CYP2C9",
			Mechanism:   "Vitamin K antagonist; S-warfarin clearance depends on CYP2C9 activity",
			Risk: map[domain.PhenotypeCode]RiskEntry{
				domain.URM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_LOW,
					Explanation:     "Faster S-warfarin clearance may require higher maintenance doses",
					Recommendation:  "Titrate to INR; higher than label doses may be needed",
					DosingGuideline: "Standard induction with early INR-guided titration",
				},
				domain.RM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_LOW,
					Explanation:     "Above-normal clearance may blunt anticoagulant response at standard doses",
					Recommendation:  "Titrate to INR with standard monitoring",
					DosingGuideline: "Standard induction with INR-guided titration",
				},
				domain.NM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal S-warfarin clearance; standard dosing algorithms apply",
					Recommendation:  "Use standard genotype-informed dosing",
					DosingGuideline: "Standard clinical dosing algorithm with routine INR monitoring",
				},
				domain.IM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_MODERATE,
					Explanation:     "Reduced clearance raises bleeding risk at standard doses",
					Recommendation:  "Reduce starting dose and monitor INR closely",
					DosingGuideline: "Reduce dose 20-50%; more frequent INR checks during induction",
				},
				domain.PM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_HIGH,
					Explanation:     "Markedly reduced clearance substantially raises bleeding risk",
					Recommendation:  "Substantially reduce dose; consider an alternative anticoagulant",
					DosingGuideline: "Reduce dose 50-80% or select a DOAC; intensive INR monitoring",
				},
			},
			Alternatives: []string{"Apixaban", "Rivaroxaban", "Dabigatran"},
		},
		"CLOPIDOGREL": {
			Name:        "CLOPIDOGREL",
			PrimaryGene: "CYP2C19",
			Mechanism:   "Prodrug requiring CYP2C19-mediated bioactivation to its active antiplatelet metabolite",
			Risk: map[domain.PhenotypeCode]RiskEntry{
				domain.URM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Increased bioactivation; platelet inhibition at least as strong as normal",
					Recommendation:  "Use clopidogrel per standard dosing",
					DosingGuideline: "Standard 75 mg daily maintenance dosing",
				},
				domain.RM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal-to-increased bioactivation; expected antiplatelet effect",
					Recommendation:  "Use clopidogrel per standard dosing",
					DosingGuideline: "Standard 75 mg daily maintenance dosing",
				},
				domain.NM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal bioactivation and expected platelet inhibition",
					Recommendation:  "Use clopidogrel per standard dosing",
					DosingGuideline: "Standard 75 mg daily maintenance dosing",
				},
				domain.IM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_MODERATE,
					Explanation:     "Reduced formation of the active metabolite lowers antiplatelet effect",
					Recommendation:  "Consider prasugrel or ticagrelor if not contraindicated",
					DosingGuideline: "Alternative P2Y12 inhibitor preferred for ACS/PCI indications",
				},
				domain.PM: {
					Label:           domain.INEFFECTIVE,
					Severity:        domain.SEVERITY_HIGH,
					Explanation:     "Minimal bioactivation; high on-treatment platelet reactivity and thrombotic risk",
					Recommendation:  "Avoid clopidogrel; use prasugrel or ticagrelor if not contraindicated",
					DosingGuideline: "Do not use for ACS/PCI; alternative P2Y12 inhibitor required",
				},
			},
			Alternatives: []string{"Prasugrel", "Ticagrelor"},
		},
		"SIMVASTATIN": {
			Name:        "SIMVASTATIN",
			PrimaryGene: "SLCO1B1",
			Mechanism:   "HMG-CoA reductase inhibitor; hepatic uptake via OATP1B1 limits systemic exposure",
			Risk: map[domain.PhenotypeCode]RiskEntry{
				domain.NF: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal transporter function; standard myopathy risk",
					Recommendation:  "Use simvastatin per standard dosing",
					DosingGuideline: "Standard dosing up to 40 mg daily",
				},
				domain.DF: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_MODERATE,
					Explanation:     "Reduced hepatic uptake raises plasma simvastatin acid and myopathy risk",
					Recommendation:  "Limit dose or select an alternative statin",
					DosingGuideline: "Limit to 20 mg daily or switch to rosuvastatin/pravastatin",
				},
				domain.PF: {
					Label:           domain.TOXIC,
					Severity:        domain.SEVERITY_HIGH,
					Explanation:     "Markedly elevated simvastatin exposure; substantially increased myopathy and rhabdomyolysis risk",
					Recommendation:  "Avoid simvastatin; use an alternative statin at low dose",
					DosingGuideline: "Do not use. Rosuvastatin or pravastatin at the lowest effective dose",
				},
			},
			Alternatives: []string{"Rosuvastatin", "Pravastatin", "Atorvastatin (low dose)"},
		},
		"AZATHIOPRINE": {
			Name:        "AZATHIOPRINE",
			PrimaryGene: "TPMT",
			Mechanism:   "Thiopurine prodrug; TPMT inactivates cytotoxic thioguanine nucleotides",
			Risk: map[domain.PhenotypeCode]RiskEntry{
				domain.URM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_LOW,
					Explanation:     "High TPMT activity may shunt metabolism away from active nucleotides",
					Recommendation:  "Standard dosing; monitor for reduced efficacy",
					DosingGuideline: "Standard dosing with metabolite monitoring if response is poor",
				},
				domain.RM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal-to-high inactivation; standard toxicity risk",
					Recommendation:  "Use azathioprine per standard dosing",
					DosingGuideline: "Standard weight-based dosing",
				},
				domain.NM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal thiopurine inactivation; standard myelosuppression risk",
					Recommendation:  "Use azathioprine per standard dosing with routine CBC monitoring",
					DosingGuideline: "Standard weight-based dosing",
				},
				domain.IM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_HIGH,
					Explanation:     "Reduced inactivation raises thioguanine nucleotide levels and myelosuppression risk",
					Recommendation:  "Reduce starting dose and titrate with frequent CBC monitoring",
					DosingGuideline: "Start at 30-80% of target dose; weekly CBC during titration",
				},
				domain.PM: {
					Label:           domain.TOXIC,
					Severity:        domain.SEVERITY_CRITICAL,
					Explanation:     "Absent TPMT activity causes severe, potentially fatal myelosuppression at standard doses",
					Recommendation:  "Avoid conventional dosing; drastically reduce dose or select a non-thiopurine agent",
					DosingGuideline: "Reduce to 10% of standard dose given thrice weekly, or avoid entirely",
				},
			},
			Alternatives: []string{"Mycophenolate mofetil", "Methotrexate"},
		},
		"FLUOROURACIL": {
			Name:        "FLUOROURACIL",
			PrimaryGene: "DPYD",
			Mechanism:   "Fluoropyrimidine antimetabolite; DPD catabolizes >80% of administered drug",
			Risk: map[domain.PhenotypeCode]RiskEntry{
				domain.URM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "At or above normal catabolism; standard toxicity risk",
					Recommendation:  "Use fluorouracil per standard dosing",
					DosingGuideline: "Standard BSA-based dosing",
				},
				domain.RM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal catabolism; standard toxicity risk",
					Recommendation:  "Use fluorouracil per standard dosing",
					DosingGuideline: "Standard BSA-based dosing",
				},
				domain.NM: {
					Label:           domain.SAFE,
					Severity:        domain.SEVERITY_NONE,
					Explanation:     "Normal DPD activity; standard fluoropyrimidine toxicity risk",
					Recommendation:  "Use fluorouracil per standard dosing",
					DosingGuideline: "Standard BSA-based dosing",
				},
				domain.IM: {
					Label:           domain.ADJUST_DOSAGE,
					Severity:        domain.SEVERITY_HIGH,
					Explanation:     "Partial DPD deficiency raises severe-toxicity risk at standard doses",
					Recommendation:  "Reduce starting dose with toxicity-guided titration",
					DosingGuideline: "Start at 50% of standard dose; escalate based on tolerance",
				},
				domain.PM: {
					Label:           domain.TOXIC,
					Severity:        domain.SEVERITY_CRITICAL,
					Explanation:     "Complete DPD deficiency; standard doses cause life-threatening toxicity",
					Recommendation:  "Avoid fluorouracil and capecitabine entirely",
					DosingGuideline: "Do not use. Select a non-fluoropyrimidine regimen",
				},
			},
			Alternatives: []string{"Raltitrexed", "Non-fluoropyrimidine regimen per oncology consult"},
		},
	}
}
