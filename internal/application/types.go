package application

import "fragments/internal/domain"

// Re-export domain types for use by adapters
type (
	Fragment = domain.Fragment
	Tag      = domain.Tag
	Document = domain.Document
)

// SplitTagNames splits a comma separated tag list into trimmed names
func SplitTagNames(input string) []string {
	return domain.SplitTagNames(input)
}

// TagNames maps tag IDs to display names, falling back to the ID
func TagNames(ids []string, tags []Tag) []string {
	return domain.TagNames(ids, tags)
}
