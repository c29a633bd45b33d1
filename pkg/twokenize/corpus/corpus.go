// Package corpus tokenizes documents and keeps them in a store.
package corpus

import (
	"context"
	"crypto/rand"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
	"github.com/cognicore/twokenize/pkg/twokenize/store"
)

// Corpus is the ingestion facade over a tokenizer and a store
type Corpus struct {
	store   store.Store
	tok     *twokenize.Tokenizer
	workers int
	now     func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Corpus instance
type Options struct {
	Store     store.Store
	Tokenizer *twokenize.Tokenizer // nil means the default tokenizer
	Workers   int                  // IngestBatch parallelism; <= 0 means GOMAXPROCS
	Now       func() time.Time     // clock for CreatedAt and IDs; nil means time.Now
}

// New creates a Corpus with the given dependencies
func New(opts Options) *Corpus {
	c := &Corpus{
		store:   opts.Store,
		tok:     opts.Tokenizer,
		workers: opts.Workers,
		now:     opts.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	if c.tok == nil {
		c.tok = twokenize.New(nil, twokenize.Options{})
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Close cleanly shuts down the underlying store
func (c *Corpus) Close() error {
	return c.store.Close()
}

// Item is a document to be ingested
type Item struct {
	Source    string
	Text      string
	CreatedAt time.Time // zero means the ingestion time
}

// Ingest tokenizes and stores one item
func (c *Corpus) Ingest(ctx context.Context, it Item) (store.Doc, error) {
	tokens, err := c.tok.Tokenize(it.Text)
	if err != nil {
		return store.Doc{}, fmt.Errorf("tokenize %s: %w", describe(it), err)
	}
	doc := c.newDoc(it, tokens)
	if err := c.store.UpsertDoc(ctx, doc); err != nil {
		return store.Doc{}, fmt.Errorf("store %s: %w", doc.ID, err)
	}
	return doc, nil
}

// IngestBatch tokenizes items in parallel, then stores them in input order.
// The first error cancels the remaining work; nothing is stored unless every
// item tokenized.
func (c *Corpus) IngestBatch(ctx context.Context, items []Item) ([]store.Doc, error) {
	tokens := make([][]twokenize.Token, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			toks, err := c.tok.Tokenize(items[i].Text)
			if err != nil {
				return fmt.Errorf("tokenize item %d (%s): %w", i, describe(items[i]), err)
			}
			tokens[i] = toks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]store.Doc, len(items))
	for i, it := range items {
		docs[i] = c.newDoc(it, tokens[i])
		if err := c.store.UpsertDoc(ctx, docs[i]); err != nil {
			return docs[:i], fmt.Errorf("store %s: %w", docs[i].ID, err)
		}
	}
	return docs, nil
}

func (c *Corpus) newDoc(it Item, tokens []twokenize.Token) store.Doc {
	now := c.now()
	created := it.CreatedAt
	if created.IsZero() {
		created = now
	}
	c.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(now), c.entropy).String()
	c.mu.Unlock()
	return store.Doc{ID: id, Source: it.Source, Text: it.Text, CreatedAt: created, Tokens: tokens}
}

func describe(it Item) string {
	if it.Source != "" {
		return it.Source
	}
	return "item"
}

// Get returns a stored document.
func (c *Corpus) Get(ctx context.Context, id string) (store.Doc, error) {
	doc, found, err := c.store.GetDoc(ctx, id)
	if err != nil {
		return store.Doc{}, err
	}
	if !found {
		return store.Doc{}, fmt.Errorf("doc %q: %w", id, internalerr.ErrNotFound)
	}
	return doc, nil
}

// Stats summarizes the stored tokens
type Stats struct {
	Tokens int64
	Counts map[twokenize.Class]int64
	Top    map[twokenize.Class][]store.TokenCount
}

// Classes returns the classes with at least one token, most frequent first.
func (s Stats) Classes() []twokenize.Class {
	out := make([]twokenize.Class, 0, len(s.Counts))
	for cls, n := range s.Counts {
		if n > 0 {
			out = append(out, cls)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if s.Counts[out[i]] != s.Counts[out[j]] {
			return s.Counts[out[i]] > s.Counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Stats aggregates class counts and the topK token texts of every class present.
func (c *Corpus) Stats(ctx context.Context, topK int) (Stats, error) {
	counts, err := c.store.ClassCounts(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("class counts: %w", err)
	}
	st := Stats{Counts: counts, Top: make(map[twokenize.Class][]store.TokenCount)}
	for _, cls := range st.Classes() {
		st.Tokens += counts[cls]
		top, err := c.store.TopTokens(ctx, cls, topK)
		if err != nil {
			return Stats{}, fmt.Errorf("top %s tokens: %w", cls, err)
		}
		st.Top[cls] = top
	}
	return st, nil
}
