package utils

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Require adds message for field when value is blank
func (vr *ValidationResult) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		vr.AddError(field, message)
	}
}

// MinLength adds message for field when value has fewer than n characters
func (vr *ValidationResult) MinLength(field, value string, n int, message string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		vr.AddError(field, message)
	}
}

// FieldErrors returns the first message per field, ready for inline display
func (vr *ValidationResult) FieldErrors() map[string]string {
	out := make(map[string]string, len(vr.Errors))
	for _, e := range vr.Errors {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// IsEmail reports whether s is a well-formed e-mail address
func IsEmail(s string) bool {
	return fieldValidator().Var(strings.TrimSpace(s), "required,email") == nil
}

// IsLatitude reports whether s parses as a latitude in [-90, 90]
func IsLatitude(s string) bool {
	return fieldValidator().Var(strings.TrimSpace(s), "latitude") == nil
}

// IsLongitude reports whether s parses as a longitude in [-180, 180]
func IsLongitude(s string) bool {
	return fieldValidator().Var(strings.TrimSpace(s), "longitude") == nil
}
