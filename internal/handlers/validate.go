package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post and category form fields.
const (
	maxTitleLen        = 300
	maxBodyLen         = 100_000
	maxExcerptLen      = 1_000
	maxCategoryNameLen = 100
	maxDescriptionLen  = 500
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, content string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxBodyLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateExcerpt checks the optional excerpt field.
func validateExcerpt(excerpt string) string {
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	return ""
}

// validateCategory checks category form inputs and returns the first error found.
func validateCategory(name, description string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "Category name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 500 characters)."
	}
	return ""
}
