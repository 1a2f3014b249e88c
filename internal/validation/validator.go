package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"task-widget/internal/config"
)

// ManualDateLayout is the layout typed dates are parsed with. Leading zeros
// on month and day are optional.
const ManualDateLayout = "1/2/2006"

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength checks that the trimmed string has at most max characters.
// max <= 0 disables the check.
func (v *Validator) IsWithinLength(s string, max int) bool {
	if max <= 0 {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidTextLength checks if task text is within the configured limit
func (v *Validator) IsValidTextLength(text string) bool {
	return v.IsWithinLength(text, v.TextMaxLength())
}

// IsValidDescriptionLength checks if a description is within the configured limit
func (v *Validator) IsValidDescriptionLength(description string) bool {
	return v.IsWithinLength(description, v.DescriptionMaxLength())
}

// HasNoControlCharacters rejects newlines, tabs and other control characters
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// ParseManualDate parses a date typed as MM/DD/YYYY
func (v *Validator) ParseManualDate(s string) (time.Time, error) {
	t, err := time.Parse(ManualDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TextMaxLength returns configured maximum task text length or default
func (v *Validator) TextMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TextMaxLength
	}
	return 255 // Default maximum
}

// DescriptionMaxLength returns configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 4000 // Default maximum
}
