package errors

import (
	"strings"
	"testing"
)

func TestValidateAttributeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "weight", false},
		{"valid with space", "edge weight", false},
		{"valid reserved", "_graphml_vertex_id", false},
		{"valid with markup", "a<b>&\"c\"", false},
		{"valid unicode", "Gewicht_ä", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 2000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttributeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graphs/karate.graphml", false},
		{"absolute", "/tmp/out.graphml.gz", false},
		{"dotted", "../data/g.xml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "g\x00.graphml", true},
		{"control char", "g\x07.graphml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"graphml", "json", "yaml"}
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"graphml", false},
		{"JSON", false},
		{"yaml", false},
		{"", true},
		{"gml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format, allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}
