package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/panjf2000/ants/v2"

	"github.com/malisevdinoglu/GenAI-Chatbot/core"
	"github.com/malisevdinoglu/GenAI-Chatbot/storage"
)

// Store implements storage.IndexStore for BadgerDB-backed indexes.
type Store struct {
	inMemory bool
	logger   *slog.Logger
}

var _ storage.IndexStore = (*Store)(nil)

// NewStore creates an IndexStore that persists indexes on disk.
func NewStore() storage.IndexStore {
	return &Store{logger: slog.Default().With("component", "index_store")}
}

// Open loads a sealed index from location. An absent location, or one holding
// an index that was never sealed, returns storage.ErrNotFound.
func (s *Store) Open(location string) (storage.VectorIndex, error) {
	if s.inMemory {
		// Nothing survives process restart in memory mode.
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, location)
	}

	if _, err := os.Stat(location); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, location)
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	backend, err := OpenBackend(location, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	meta, err := readMeta(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	if !meta.Sealed {
		// An unsealed index is an interrupted build. Treat it as absent so
		// the caller discards and rebuilds.
		backend.Close()
		return nil, fmt.Errorf("%w: index at %s was never sealed", storage.ErrNotFound, location)
	}

	return newIndex(backend, location, *meta)
}

// Create initializes an empty, unsealed index bound to location.
func (s *Store) Create(location string) (storage.VectorIndex, error) {
	backend, err := OpenBackend(location, s.inMemory)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	meta := storage.IndexMeta{CreatedAt: time.Now().UTC()}
	if err := writeMeta(backend, &meta); err != nil {
		backend.Close()
		return nil, err
	}

	s.logger.Info("created index", "location", location, "in_memory", s.inMemory)
	return newIndex(backend, location, meta)
}

// Discard removes whatever index data exists at location.
func (s *Store) Discard(location string) error {
	if s.inMemory {
		return nil
	}
	if err := os.RemoveAll(location); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}
	s.logger.Info("discarded index", "location", location)
	return nil
}

// OpenIndex loads a sealed index from location using a disk-backed store.
func OpenIndex(location string) (storage.VectorIndex, error) {
	return NewStore().Open(location)
}

// CreateIndex initializes an empty index at location using a disk-backed store.
func CreateIndex(location string) (storage.VectorIndex, error) {
	return NewStore().Create(location)
}

// DiscardIndex removes the index data at location.
func DiscardIndex(location string) error {
	return NewStore().Discard(location)
}

// Index implements storage.VectorIndex on top of a BadgerDB backend.
type Index struct {
	backend  *Backend
	seq      *badger.Sequence
	pool     *ants.Pool
	location string
	logger   *slog.Logger

	mu     sync.RWMutex
	meta   storage.IndexMeta
	closed bool
}

var _ storage.VectorIndex = (*Index)(nil)

func newIndex(backend *Backend, location string, meta storage.IndexMeta) (*Index, error) {
	seq, err := backend.GetSequence(indexEntrySeq)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		seq.Release()
		backend.Close()
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	return &Index{
		backend:  backend,
		seq:      seq,
		pool:     pool,
		location: location,
		logger:   slog.Default().With("component", "vector_index"),
		meta:     meta,
	}, nil
}

// Append inserts (document, vector) pairs and durably persists them.
// len(docs) must equal len(vectors); a mismatch is a programming error.
func (ix *Index) Append(ctx context.Context, docs []core.RecipeDoc, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		panic(fmt.Sprintf("badger: docs/vectors length mismatch: %d vs %d", len(docs), len(vectors)))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return storage.ErrStorageClosed
	}
	if ix.meta.Sealed {
		return fmt.Errorf("%w: cannot append to a sealed index", storage.ErrStorageFailed)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	newMeta := ix.meta
	newMeta.DocCount += uint64(len(docs))
	if newMeta.Dimension == 0 {
		newMeta.Dimension = len(vectors[0])
	}

	now := time.Now().UTC()
	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		for i := range docs {
			nextSeq, err := ix.seq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextSeq == 0 {
				nextSeq, err = ix.seq.Next()
				if err != nil {
					return err
				}
			}

			entry := storage.IndexEntry{
				Seq:        nextSeq,
				Doc:        docs[i],
				Vector:     vectors[i],
				InsertedAt: now,
			}
			if err := tx.Set(makeEntryKey(entry.Seq), storage.MarshalIndexEntry(&entry)); err != nil {
				return err
			}
		}

		if err := tx.Set(makeMetaKey(), storage.MarshalIndexMeta(&newMeta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	if err := ix.backend.Sync(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	ix.meta = newMeta
	return nil
}

// scoredEntry pairs an entry with its similarity to the query vector.
type scoredEntry struct {
	entry *storage.IndexEntry
	score float32
}

// Search returns up to k nearest neighbors by cosine similarity, best match
// first. Stored and query vectors are unit-normalized, so the dot product is
// the cosine similarity. Ties resolve to the earlier-inserted entry.
func (ix *Index) Search(ctx context.Context, queryVector []float32, k int) ([]*core.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", storage.ErrInvalidQuery, k)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []*storage.IndexEntry
	err := ix.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *storage.IndexEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalIndexEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}
			entries = append(entries, entry)
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	// Score in parallel over the worker pool. Each task writes to its own
	// slot, so no locking is needed.
	scored := make([]scoredEntry, len(entries))
	var wg sync.WaitGroup
	for i := range entries {
		entry := entries[i]
		slot := &scored[i]
		wg.Add(1)
		task := func() {
			defer wg.Done()
			slot.entry = entry
			slot.score = dotProduct(queryVector, entry.Vector)
		}
		if submitErr := ix.pool.Submit(task); submitErr != nil {
			// Pool unavailable, score on the calling goroutine.
			task()
		}
	}
	wg.Wait()

	slices.SortFunc(scored, func(a, b scoredEntry) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		if a.entry.Seq < b.entry.Seq {
			return -1
		}
		if a.entry.Seq > b.entry.Seq {
			return 1
		}
		return 0
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	results := make([]*core.SearchResult, len(scored))
	for i, s := range scored {
		results[i] = &core.SearchResult{
			Doc:   s.entry.Doc,
			Score: s.score,
		}
	}
	return results, nil
}

// Count returns the number of stored documents.
func (ix *Index) Count(ctx context.Context) (int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return 0, storage.ErrStorageClosed
	}
	return int(ix.meta.DocCount), nil
}

// Seal durably marks the index as completely built. Sealing an already
// sealed index is a no-op.
func (ix *Index) Seal(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return storage.ErrStorageClosed
	}
	if ix.meta.Sealed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	newMeta := ix.meta
	newMeta.Sealed = true
	if err := writeMeta(ix.backend, &newMeta); err != nil {
		return err
	}
	if err := ix.backend.Sync(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}

	ix.meta = newMeta
	ix.logger.Info("sealed index", "location", ix.location, "doc_count", ix.meta.DocCount)
	return nil
}

// Sealed reports whether the index has been marked complete.
func (ix *Index) Sealed() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.meta.Sealed
}

// Location returns the durable location the index is bound to.
func (ix *Index) Location() string {
	return ix.location
}

// Close releases the sequence, the worker pool, and the database.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.closed {
		return nil
	}
	ix.closed = true

	ix.pool.Release()
	if err := ix.seq.Release(); err != nil {
		ix.backend.Close()
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}
	if err := ix.backend.Close(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}
	return nil
}

// readMeta loads the index metadata record.
func readMeta(backend *Backend) (*storage.IndexMeta, error) {
	var meta *storage.IndexMeta
	err := backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeMetaKey())
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			meta, err = storage.UnmarshalIndexMeta(val)
			return err
		})
	}, false)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: index metadata missing", storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}
	return meta, nil
}

// writeMeta persists the index metadata record.
func writeMeta(backend *Backend, meta *storage.IndexMeta) error {
	err := backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeMetaKey(), storage.MarshalIndexMeta(meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailed, err)
	}
	return nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
