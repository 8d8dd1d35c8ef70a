package domain

import (
	"fmt"
	"time"
)

// AnalysisError represents a standardized error response carried across the
// API boundary with a machine-readable code.
type AnalysisError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrMissingFile         = "MISSING_FILE"
	ErrMissingDrug         = "MISSING_DRUG"
	ErrFileTooLarge        = "FILE_TOO_LARGE"
	ErrInvalidFileFormat   = "INVALID_FILE_FORMAT"
	ErrParseFailure        = "PARSE_FAILURE"
	ErrInvalidAncestryCode = "INVALID_ANCESTRY"
	ErrInvalidDose         = "INVALID_DOSE"
	ErrInternalServer      = "INTERNAL_SERVER_ERROR"
)

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewAnalysisError creates a new AnalysisError with timestamp
func NewAnalysisError(code, message, details string) *AnalysisError {
	return &AnalysisError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
