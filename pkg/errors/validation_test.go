package errors

import (
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "jane", false},
		{"hyphenated", "jane-doe-2024", false},
		{"empty", "", true},
		{"uppercase", "Jane", true},
		{"leading hyphen", "-jane", true},
		{"double hyphen", "jane--doe", true},
		{"space", "jane doe", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#fff", false},
		{"#ff0000", false},
		{"#ff000080", false},
		{"theme:primary", false},
		{"rgb(0, 0, 0)", false},
		{"transparent", false},
		{"", true},
		{"red; background:url(x)", true},
		{"rgb(0,0,0);}", true},
		{"#ggg", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLength(t *testing.T) {
	for _, ok := range []string{"0", "2rem", "12px", "50%", "1.5em", "theme:radius"} {
		if err := ValidateLength(ok); err != nil {
			t.Errorf("ValidateLength(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "2", "red", "12px;", "calc(1px)"} {
		if err := ValidateLength(bad); err == nil {
			t.Errorf("ValidateLength(%q) expected error", bad)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com", false},
		{"mailto:me@example.com", false},
		{"tel:+123", false},
		{"#contact", false},
		{"/about", false},
		{"data:image/png;base64,AAAA", false},
		{"", true},
		{"javascript:alert(1)", true},
		{"JavaScript:alert(1)", true},
		{"//evil.example", true},
		{"ftp://example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateComponentID(t *testing.T) {
	if err := ValidateComponentID("0190a3c4-7b2e-7c1d-8e4f-1234567890ab"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "a b", "a\nb", strings.Repeat("x", 129)} {
		if err := ValidateComponentID(bad); err == nil {
			t.Errorf("ValidateComponentID(%q) expected error", bad)
		}
	}
}

func TestRequired(t *testing.T) {
	if err := Required("label", "  "); !Is(err, ErrCodeValidation) {
		t.Errorf("Required(blank) = %v, want validation failure", err)
	}
	if err := Required("label", "Home"); err != nil {
		t.Errorf("Required(Home) = %v", err)
	}
}
