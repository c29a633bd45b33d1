package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
	"github.com/cognicore/twokenize/pkg/twokenize/store"
)

// Store is an in-memory implementation of store.Store for tests and one-shot runs.
type Store struct {
	mu   sync.RWMutex
	docs map[string]store.Doc
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{docs: make(map[string]store.Doc)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertDoc inserts or replaces a document, keyed by ID.
func (s *Store) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.ID == "" {
		return fmt.Errorf("upsert doc: %w: empty id", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = copyDoc(d)
	return nil
}

// GetDoc returns a document by ID.
func (s *Store) GetDoc(ctx context.Context, id string) (store.Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, ok := s.docs[id]; ok {
		return copyDoc(doc), true, nil
	}
	return store.Doc{}, false, nil
}

// ListDocs returns up to limit documents, newest first.
func (s *Store) ListDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Doc, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i] = copyDoc(out[i])
	}
	return out, nil
}

// DeleteDoc removes a document. Unknown IDs report internalerr.ErrNotFound.
func (s *Store) DeleteDoc(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("delete doc %q: %w", id, internalerr.ErrNotFound)
	}
	delete(s.docs, id)
	return nil
}

// ClassCounts counts stored tokens per class.
func (s *Store) ClassCounts(ctx context.Context) (map[twokenize.Class]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[twokenize.Class]int64)
	for _, doc := range s.docs {
		for _, tok := range doc.Tokens {
			counts[tok.Class]++
		}
	}
	return counts, nil
}

// TopTokens returns the k most frequent token texts of a class, ties by text.
func (s *Store) TopTokens(ctx context.Context, class twokenize.Class, k int) ([]store.TokenCount, error) {
	if k <= 0 {
		k = store.DefaultTopK
	}
	s.mu.RLock()
	counts := make(map[string]int64)
	for _, doc := range s.docs {
		for _, tok := range doc.Tokens {
			if tok.Class == class {
				counts[tok.Text]++
			}
		}
	}
	s.mu.RUnlock()

	out := make([]store.TokenCount, 0, len(counts))
	for text, n := range counts {
		out = append(out, store.TokenCount{Text: text, Class: class, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func copyDoc(d store.Doc) store.Doc {
	cp := d
	if d.Tokens != nil {
		cp.Tokens = make([]twokenize.Token, len(d.Tokens))
		copy(cp.Tokens, d.Tokens)
	}
	return cp
}
