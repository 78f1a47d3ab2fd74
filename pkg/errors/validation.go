package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputPath validates a path that rendered artifacts are written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}

// ValidateConfigExt checks that a config file has a supported extension.
func ValidateConfigExt(path string) error {
	lower := strings.ToLower(path)
	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "unsupported config file %q (must end in .toml, .yaml or .yml)", path)
}
