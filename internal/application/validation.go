package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "fragmentID" -> "fragment ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "fragmentID" -> "fragment ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"fragmentID": "fragment ID",
		"tagID":      "tag ID",
		"title":      "title",
		"name":       "name",
		"path":       "file path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateMaxLength checks that a trimmed value does not exceed max runes.
func ValidateMaxLength(fieldName, value string, max int) error {
	if n := len([]rune(strings.TrimSpace(value))); n > max {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is too long (%d > %d characters)", formatFieldName(fieldName), n, max),
		}
	}
	return nil
}
