// Package internalerr defines the sentinel errors shared by the tokenizer,
// its configuration and the document stores. Callers match them with errors.Is.
package internalerr

import "errors"

// Tokenizer input
var (
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

// Documents and stores
var (
	ErrNotFound         = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid document")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Configuration and lexicon files
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)
