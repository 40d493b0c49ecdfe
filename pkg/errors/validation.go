package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Supported input file extensions.
const (
	ExtCanvas = ".canvas"
	ExtJSON   = ".json"
)

// ValidateInputPath validates a path given on the command line before it is
// opened. It does not check that the file exists.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be .canvas or .json (case-insensitive)
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCanvas, ExtJSON:
		return nil
	default:
		return New(ErrCodeInvalidPath, "unsupported file type %q (must be .canvas or .json)", filepath.Ext(path))
	}
}

// ValidateOutputPath validates a path an artifact will be written to.
// Unlike input paths, any extension is accepted.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}
	return nil
}
