package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxAxiomLength bounds axioms and replacements accepted from users.
const MaxAxiomLength = 4096

// ValidateAxiom validates an axiom string.
//
// The rules are:
//   - Not empty
//   - Valid UTF-8
//   - No control characters
//   - At most MaxAxiomLength bytes
func ValidateAxiom(axiom string) error {
	if axiom == "" {
		return New(ErrCodeInvalidAxiom, "axiom cannot be empty")
	}
	if err := validateSymbols(axiom); err != nil {
		return New(ErrCodeInvalidAxiom, "axiom %s", err.Message)
	}
	return nil
}

// ValidateReplacement validates a rule replacement. Unlike an axiom, a
// replacement may be empty.
func ValidateReplacement(rep string) error {
	if rep == "" {
		return nil
	}
	if err := validateSymbols(rep); err != nil {
		return New(ErrCodeInvalidRule, "replacement %s", err.Message)
	}
	return nil
}

func validateSymbols(s string) *Error {
	if len(s) > MaxAxiomLength {
		return New(ErrCodeInvalidInput, "too long (max %d bytes)", MaxAxiomLength)
	}
	if !utf8.ValidString(s) {
		return New(ErrCodeInvalidInput, "is not valid UTF-8")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "contains control characters")
		}
	}
	return nil
}

// ValidateFormat checks format against the set of supported formats.
func ValidateFormat(format string, valid map[string]bool) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !valid[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// ValidateFinite checks that a numeric setting is a finite number.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	return nil
}

// ValidatePositive checks that a numeric setting is finite and > 0.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be > 0, got %g", name, v)
	}
	return nil
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor checks that color is a #rgb, #rrggbb or #rrggbbaa hex color.
func ValidateColor(name, color string) error {
	if !hexColorRe.MatchString(color) {
		return New(ErrCodeInvalidConfig, "%s must be a hex color like #222222, got %q", name, color)
	}
	return nil
}

// ValidateURL validates a backend URL and its scheme.
// With no schemes given, http and https are accepted.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}

// ValidatePath validates an output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
