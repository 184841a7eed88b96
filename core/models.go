package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// DocID is a content-derived identifier for an indexed document.
type DocID uint64

// DocIDFromContent generates a deterministic DocID from text content using
// BLAKE2b hashing. Identical content always produces the same ID.
func DocIDFromContent(text string) DocID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return DocID(binary.LittleEndian.Uint64(sum))
}

// Metadata keys set by the document preparer.
const (
	MetaSource     = "source"
	MetaRecipeName = "recipe_name"
)

// RecipeDoc is a normalized text unit ready for embedding and retrieval.
// Content holds the templated recipe text; Metadata carries the stable
// source identifier and a human-readable label.
type RecipeDoc struct {
	Content  string
	Metadata map[string]string
}

// ID returns the document's content-derived identifier.
func (d *RecipeDoc) ID() DocID {
	return DocIDFromContent(d.Content)
}

// Role identifies the author of a conversation turn.
type Role int

const (
	// RoleUser represents the human asking questions.
	RoleUser Role = iota + 1
	// RoleAssistant represents the generative model's answers.
	RoleAssistant
)

// String returns the role name used in prompts and transcripts.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// ConversationTurn is a single utterance in a session, ordered by occurrence.
type ConversationTurn struct {
	Role Role
	Text string
}

// SearchResult is a retrieved document with its similarity score.
type SearchResult struct {
	Doc   RecipeDoc
	Score float32
}
