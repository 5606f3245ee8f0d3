package errors

import (
	"strings"
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "api", false},
		{"valid with dash", "billing-db", false},
		{"valid unicode", "données", false},
		{"valid with spaces", "user service", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDocument) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidDocument)
			}
		})
	}
}

func TestValidateSourcePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"yaml", "diagram.yaml", ""},
		{"yml upper", "DIAGRAM.YML", ""},
		{"json nested", "docs/arch/diagram.json", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"control", "dia\x01gram.yaml", ErrCodeInvalidPath},
		{"toml", "diagram.toml", ErrCodeUnsupportedFormat},
		{"no extension", "diagram", ErrCodeUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourcePath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateSourcePath(%q) code = %q, want %q (err=%v)", tt.input, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateLinkURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/docs", false},
		{"http", "http://localhost:3000", false},
		{"mailto", "mailto:team@example.com", false},
		{"relative", "/runbooks/db", false},
		{"fragment", "#section", false},
		{"bare path", "docs/readme.md", false},
		{"path with colon in query", "docs?at=10:30", false},

		{"empty", "", true},
		{"javascript", "javascript:alert(1)", true},
		{"javascript mixed case", " JavaScript:alert(1)", true},
		{"data", "data:text/html;base64,AAAA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLinkURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLinkURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
