package validation

import (
	"strings"
	"unicode/utf8"

	"learning-tracker/internal/config"
	"learning-tracker/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	limits config.ValidationConfig
}

// NewValidator creates a validator with the default limits
func NewValidator() *Validator {
	return &Validator{limits: config.NewConfig().Validation}
}

// NewValidatorWithConfig creates a validator using the limits in cfg
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	if cfg == nil {
		return NewValidator()
	}
	return &Validator{limits: cfg.Validation}
}

// Limits returns the limits in force
func (v *Validator) Limits() config.ValidationConfig {
	return v.limits
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks that the trimmed rune count is within [min, max]
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsWithinByteLimit checks the raw byte length, which is what bcrypt sees
func (v *Validator) IsWithinByteLimit(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// IsValidID checks if an entity ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidPriority accepts 0 (defaults to low) through 3
func (v *Validator) IsValidPriority(priority int) bool {
	_, ok := domain.ParsePriority(priority)
	return ok
}

// IsValidOrder checks a subtopic display order
func (v *Validator) IsValidOrder(order int) bool {
	return order >= 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// checkTitle adds errors for a required, length-limited title field
func (v *Validator) checkTitle(ve *ValidationError, field, title string) {
	if !v.IsNonEmptyString(title) {
		ve.AddRequiredError(field)
		return
	}
	if !v.IsValidStringLength(title, 1, v.limits.TitleMaxLength) {
		ve.AddInvalidLengthError(field, title, 0, v.limits.TitleMaxLength)
	}
}

// checkText adds an error when an optional free-text field is too long
func (v *Validator) checkText(ve *ValidationError, field, text string) {
	if utf8.RuneCountInString(text) > v.limits.TextMaxLength {
		ve.AddInvalidLengthError(field, nil, 0, v.limits.TextMaxLength)
	}
}
