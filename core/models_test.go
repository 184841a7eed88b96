package core

import (
	"testing"
)

func TestDocIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "Recipe Title: soup",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "Recipe Title: a much longer recipe body that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := DocIDFromContent(tt.content)
			id2 := DocIDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("DocIDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestDocIDFromContent_Different(t *testing.T) {
	id1 := DocIDFromContent("content1")
	id2 := DocIDFromContent("content2")

	if id1 == id2 {
		t.Errorf("DocIDFromContent() produced same ID for different content")
	}
}

func TestRecipeDoc_ID(t *testing.T) {
	doc := RecipeDoc{Content: "Recipe Title: pancakes"}
	if doc.ID() != DocIDFromContent("Recipe Title: pancakes") {
		t.Errorf("RecipeDoc.ID() does not match DocIDFromContent of its content")
	}
}

func TestRole_String(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want string
	}{
		{name: "user", role: RoleUser, want: "user"},
		{name: "assistant", role: RoleAssistant, want: "assistant"},
		{name: "zero value", role: Role(0), want: "unknown"},
		{name: "out of range", role: Role(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.String(); got != tt.want {
				t.Errorf("Role.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
