package store

import (
	"context"
	"time"

	"github.com/cognicore/twokenize/pkg/twokenize"
)

// Store persists tokenized documents and answers corpus-level queries.
type Store interface {
	Close() error

	// Docs
	UpsertDoc(ctx context.Context, d Doc) error
	GetDoc(ctx context.Context, id string) (Doc, bool, error)
	ListDocs(ctx context.Context, limit int) ([]Doc, error)
	DeleteDoc(ctx context.Context, id string) error

	// Aggregates over every stored token
	ClassCounts(ctx context.Context) (map[twokenize.Class]int64, error)
	TopTokens(ctx context.Context, class twokenize.Class, k int) ([]TokenCount, error)
}

// Doc is a stored document with its tokens.
type Doc struct {
	ID        string
	Source    string
	Text      string
	CreatedAt time.Time
	Tokens    []twokenize.Token
}

// TokenCount is how often a token text occurs with a class across the corpus.
type TokenCount struct {
	Text  string
	Class twokenize.Class
	Count int64
}

// Defaults applied when callers pass a non-positive limit.
const (
	DefaultListLimit = 20
	DefaultTopK      = 10
)
