package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "ripple.svg", false},
		{"nested file", "out/ripple.svg", false},
		{"absolute file", "/tmp/ripple.webp", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"directory", "out/", true},
		{"windows directory", "out\\", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateConfigExt(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"ripple.toml", false},
		{"ripple.yaml", false},
		{"ripple.yml", false},
		{"RIPPLE.TOML", false},
		{"ripple.json", true},
		{"ripple", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateConfigExt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateConfigExt(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
