package storage

import (
	"time"

	"github.com/malisevdinoglu/GenAI-Chatbot/core"
)

// IndexEntry is one stored (document, embedding) pair. Seq is assigned from a
// monotonic sequence at insertion time and defines insertion order for
// similarity tie-breaking. Entries are immutable once stored.
type IndexEntry struct {
	Seq        uint64
	Doc        core.RecipeDoc
	Vector     []float32
	InsertedAt time.Time
}

// IndexMeta describes the state of a whole index. It is rewritten on every
// append and on seal; Sealed marks a completely built index.
type IndexMeta struct {
	DocCount  uint64
	Dimension int
	Sealed    bool
	CreatedAt time.Time
}
