package errors

import (
	"slices"
	"strings"
	"unicode"
)

// maxAttributeNameLength bounds attribute names accepted by ValidateAttributeName.
const maxAttributeNameLength = 1024

// ValidateAttributeName validates the name of a graph, vertex or edge attribute.
//
// The validation rules are intentionally narrow, since GraphML allows almost
// any string as attr.name:
//   - No empty names
//   - No control characters (they cannot appear in an XML attribute value)
//   - Maximum length of 1024 bytes
func ValidateAttributeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "attribute name cannot be empty")
	}

	if len(name) > maxAttributeNameLength {
		return New(ErrCodeInvalidInput, "attribute name too long (max %d characters)", maxAttributeNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) && r != '\t' {
			return New(ErrCodeInvalidInput, "attribute name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a local file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateFormat checks that format (case-insensitive) is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
