package handlers

import (
	"strings"
	"testing"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		wantErr bool
	}{
		{"valid", "A title", "Some body", false},
		{"empty title", "", "body", true},
		{"whitespace title", "   ", "body", true},
		{"empty content", "Title", "", true},
		{"title at limit", strings.Repeat("a", maxTitleLen), "body", false},
		{"title over limit", strings.Repeat("a", maxTitleLen+1), "body", true},
		{"content over limit", "Title", strings.Repeat("a", maxBodyLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePost(tt.title, tt.content)
			if (msg != "") != tt.wantErr {
				t.Errorf("validatePost: got %q, wantErr=%v", msg, tt.wantErr)
			}
		})
	}
}

func TestValidateExcerpt(t *testing.T) {
	if msg := validateExcerpt(strings.Repeat("a", maxExcerptLen)); msg != "" {
		t.Errorf("excerpt at limit should pass: %q", msg)
	}
	if msg := validateExcerpt(strings.Repeat("a", maxExcerptLen+1)); msg == "" {
		t.Error("excerpt over limit should fail")
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name        string
		catName     string
		description string
		wantErr     bool
	}{
		{"valid", "golang", "", false},
		{"with description", "golang", "Posts about Go", false},
		{"empty name", "", "", true},
		{"name over limit", strings.Repeat("a", maxCategoryNameLen+1), "", true},
		{"description over limit", "golang", strings.Repeat("a", maxDescriptionLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateCategory(tt.catName, tt.description)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateCategory: got %q, wantErr=%v", msg, tt.wantErr)
			}
		})
	}
}
