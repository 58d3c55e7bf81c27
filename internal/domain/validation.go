package domain

import "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"

// ValidationResult is the tagged outcome of entity validation. Errors
// block the write; warnings do not.
type ValidationResult struct {
	IsValid  bool                  `json:"isValid"`
	Errors   []errors.FieldError   `json:"errors"`
	Warnings []errors.FieldWarning `json:"warnings"`
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:  true,
		Errors:   []errors.FieldError{},
		Warnings: []errors.FieldWarning{},
	}
}

func (r *ValidationResult) AddError(field, code, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, errors.FieldError{Field: field, Code: code, Message: message})
}

func (r *ValidationResult) AddWarning(field, code, message string) {
	r.Warnings = append(r.Warnings, errors.FieldWarning{Field: field, Code: code, Message: message})
}

// Err converts a failed result into a ValidationError carrying every
// violated field, or nil when the result is valid.
func (r *ValidationResult) Err(kind string) error {
	if r.IsValid {
		return nil
	}
	return &errors.ValidationError{Kind: kind, Fields: r.Errors}
}
