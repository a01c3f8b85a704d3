package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateAxiom(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single symbol", "A", false},
		{"turtle program", "F+F-F", false},
		{"brackets", "X[+F]F", false},
		{"unicode", "αβ", false},

		{"empty", "", true},
		{"too long", strings.Repeat("F", MaxAxiomLength+1), true},
		{"newline", "F\nF", true},
		{"null byte", "F\x00", true},
		{"invalid utf8", "\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAxiom(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAxiom(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAxiom) {
				t.Errorf("ValidateAxiom(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateReplacement(t *testing.T) {
	if err := ValidateReplacement(""); err != nil {
		t.Errorf("empty replacement should be valid: %v", err)
	}
	if err := ValidateReplacement("-BF+AFA+FB-"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateReplacement("F\tF")
	if err == nil || !Is(err, ErrCodeInvalidRule) {
		t.Errorf("tab should be rejected with INVALID_RULE, got %v", err)
	}
}

func TestValidateFormat(t *testing.T) {
	valid := map[string]bool{"svg": true, "png": true}

	if err := ValidateFormat("svg", valid); err != nil {
		t.Errorf("svg should be valid: %v", err)
	}
	for _, f := range []string{"", "gif", "SVG"} {
		err := ValidateFormat(f, valid)
		if err == nil || !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", f, err)
		}
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"positive", 20, false},
		{"fraction", 0.5, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("step", tt.v)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		schemes []string
		wantErr bool
	}{
		{"https default", "https://example.com", nil, false},
		{"redis", "redis://localhost:6379/0", []string{"redis", "rediss"}, false},
		{"mongo", "mongodb://localhost:27017", []string{"mongodb", "mongodb+srv"}, false},

		{"empty", "", nil, true},
		{"wrong scheme", "ftp://example.com", nil, true},
		{"redis not allowed", "redis://localhost", []string{"mongodb"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	for _, c := range []string{"#fff", "#222222", "#00000080", "#A0b1C2"} {
		if err := ValidateColor("stroke", c); err != nil {
			t.Errorf("ValidateColor(%q) = %v", c, err)
		}
	}
	for _, c := range []string{"", "222222", "#12", "#ggg", "red", "#1234567"} {
		if err := ValidateColor("stroke", c); !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("ValidateColor(%q) = %v, want INVALID_CONFIG", c, err)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/hilbert.svg", false},
		{"absolute", "/tmp/hilbert.png", false},
		{"filename only", "drawing.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidRule,
		ErrCodeInvalidAxiom,
		ErrCodeInvalidConfig,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPreset,
		ErrCodeInvalidPath,
		ErrCodeTooLarge,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
