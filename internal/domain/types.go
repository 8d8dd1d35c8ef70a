// Package domain contains core business entities and types for pharmacogenomic
// drug-risk analysis: variant records parsed from VCF input, metabolizer
// phenotypes derived from star-allele activity scores, and the risk/recommendation
// structures returned to clinical consumers.
//
// Reference: CPIC (Clinical Pharmacogenetics Implementation Consortium) guidelines,
// https://cpicpgx.org/guidelines/
package domain

import (
	"errors"
	"fmt"
)

// RiskLabel represents the drug-risk category assigned to a patient/drug pair.
// The string values are part of the external JSON contract and must not change.
type RiskLabel string

const (
	SAFE          RiskLabel = "Safe"
	ADJUST_DOSAGE RiskLabel = "Adjust Dosage"
	TOXIC         RiskLabel = "Toxic"
	INEFFECTIVE   RiskLabel = "Ineffective"
	UNKNOWN_RISK  RiskLabel = "Unknown"
)

// Severity represents the clinical severity associated with a risk entry.
type Severity string

const (
	SEVERITY_NONE     Severity = "none"
	SEVERITY_LOW      Severity = "low"
	SEVERITY_MODERATE Severity = "moderate"
	SEVERITY_HIGH     Severity = "high"
	SEVERITY_CRITICAL Severity = "critical"
)

// ConfidenceLevel represents the qualitative confidence in a risk assessment.
type ConfidenceLevel string

const (
	HIGH_CONFIDENCE     ConfidenceLevel = "High"
	MODERATE_CONFIDENCE ConfidenceLevel = "Moderate"
	LOW_CONFIDENCE      ConfidenceLevel = "Low"
)

// PhenotypeCode is the short metabolizer/function code produced by the
// diplotype resolver and used as the key into drug risk tables.
type PhenotypeCode string

const (
	// Standard metabolizer scale (CYP-family genes)
	URM PhenotypeCode = "URM"
	RM  PhenotypeCode = "RM"
	NM  PhenotypeCode = "NM"
	IM  PhenotypeCode = "IM"
	PM  PhenotypeCode = "PM"

	// Transporter function scale (hepatic uptake genes)
	NF PhenotypeCode = "NF"
	DF PhenotypeCode = "DF"
	PF PhenotypeCode = "PF"
)

// GeneScale selects which phenotype classification scale applies to a gene.
type GeneScale string

const (
	METABOLIZER_SCALE GeneScale = "metabolizer"
	TRANSPORTER_SCALE GeneScale = "transporter"
)

// Ancestry is a coarse population grouping used for allele-frequency lookup.
type Ancestry string

const (
	ANCESTRY_GLOBAL      Ancestry = "global"
	ANCESTRY_SOUTH_ASIAN Ancestry = "south_asian"
	ANCESTRY_EAST_ASIAN  Ancestry = "east_asian"
	ANCESTRY_AFRICAN     Ancestry = "african"
	ANCESTRY_EUROPEAN    Ancestry = "european"
	ANCESTRY_OTHER       Ancestry = "other"
)

// Validation errors for clinical data integrity
var (
	ErrInvalidRiskLabel = errors.New("invalid risk label")
	ErrInvalidSeverity  = errors.New("invalid severity")
	ErrInvalidPhenotype = errors.New("invalid phenotype code")
	ErrInvalidAncestry  = errors.New("invalid ancestry code")
)

// IsValid validates that the risk label is one of the documented categories.
// Only valid labels may reach clinical decision-making output.
func (r RiskLabel) IsValid() bool {
	switch r {
	case SAFE, ADJUST_DOSAGE, TOXIC, INEFFECTIVE, UNKNOWN_RISK:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk label.
func (r RiskLabel) String() string {
	return string(r)
}

// LogFields returns structured logging fields for audit trails.
func (r RiskLabel) LogFields() map[string]any {
	return map[string]any{
		"risk_label":       string(r),
		"is_valid":         r.IsValid(),
		"requires_action":  r.RequiresClinicalAction(),
	}
}

// RequiresClinicalAction determines if the risk label requires prescriber follow-up.
func (r RiskLabel) RequiresClinicalAction() bool {
	switch r {
	case TOXIC, INEFFECTIVE, ADJUST_DOSAGE:
		return true
	case SAFE:
		return false
	default:
		return true // Conservative approach for unknown labels
	}
}

// IsValid validates the severity level.
func (s Severity) IsValid() bool {
	switch s {
	case SEVERITY_NONE, SEVERITY_LOW, SEVERITY_MODERATE, SEVERITY_HIGH, SEVERITY_CRITICAL:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid validates the confidence level.
func (cl ConfidenceLevel) IsValid() bool {
	switch cl {
	case HIGH_CONFIDENCE, MODERATE_CONFIDENCE, LOW_CONFIDENCE:
		return true
	default:
		return false
	}
}

// String returns the string representation of the confidence level.
func (cl ConfidenceLevel) String() string {
	return string(cl)
}

// IsValid validates the phenotype code against both classification scales.
func (p PhenotypeCode) IsValid() bool {
	switch p {
	case URM, RM, NM, IM, PM, NF, DF, PF:
		return true
	default:
		return false
	}
}

// String returns the string representation of the phenotype code.
func (p PhenotypeCode) String() string {
	return string(p)
}

// OnScale reports whether the phenotype code belongs to the given scale.
func (p PhenotypeCode) OnScale(scale GeneScale) bool {
	switch scale {
	case METABOLIZER_SCALE:
		return p == URM || p == RM || p == NM || p == IM || p == PM
	case TRANSPORTER_SCALE:
		return p == NF || p == DF || p == PF
	default:
		return false
	}
}

// IsValid validates the ancestry code against the fixed population set.
func (a Ancestry) IsValid() bool {
	switch a {
	case ANCESTRY_GLOBAL, ANCESTRY_SOUTH_ASIAN, ANCESTRY_EAST_ASIAN,
		ANCESTRY_AFRICAN, ANCESTRY_EUROPEAN, ANCESTRY_OTHER:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ancestry code.
func (a Ancestry) String() string {
	return string(a)
}

// ParseAncestry normalizes and validates an ancestry code, defaulting empty
// input to the global population.
func ParseAncestry(raw string) (Ancestry, error) {
	if raw == "" {
		return ANCESTRY_GLOBAL, nil
	}
	a := Ancestry(raw)
	if !a.IsValid() {
		return "", fmt.Errorf("parsing ancestry %q: %w", raw, ErrInvalidAncestry)
	}
	return a, nil
}

// ConfidenceLevelFor maps a numeric confidence score to its qualitative level.
func ConfidenceLevelFor(score float64) ConfidenceLevel {
	switch {
	case score >= 0.75:
		return HIGH_CONFIDENCE
	case score >= 0.50:
		return MODERATE_CONFIDENCE
	default:
		return LOW_CONFIDENCE
	}
}
