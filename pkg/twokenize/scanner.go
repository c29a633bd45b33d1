package twokenize

import (
	"sync"
	"unicode/utf8"
)

// Tokenizer runs the scanner over a catalog with fixed options.
type Tokenizer struct {
	catalog *Catalog
	opts    Options
}

// New creates a Tokenizer. A nil catalog means DefaultCatalog().
func New(c *Catalog, opts Options) *Tokenizer {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Tokenizer{catalog: c, opts: opts}
}

// Catalog returns the catalog the tokenizer consults.
func (t *Tokenizer) Catalog() *Catalog { return t.catalog }

// Options returns the tokenizer's options.
func (t *Tokenizer) Options() Options { return t.opts }

// Tokenize splits text into tokens. Invalid UTF-8 yields a *DecodingError
// and no tokens.
func (t *Tokenizer) Tokenize(text string) ([]Token, error) {
	if off := invalidOffset(text); off >= 0 {
		return nil, &DecodingError{Offset: off}
	}

	var tokens []Token
	for pos := 0; pos < len(text); {
		cand, ok := t.catalog.Best(text, pos)
		if !ok {
			// unreachable with the fallback rule in place
			_, size := utf8.DecodeRuneInString(text[pos:])
			tokens = append(tokens, Token{Text: text[pos : pos+size], Start: pos, End: pos + size, Class: Other})
			pos += size
			continue
		}
		tokens = t.emit(tokens, text, cand)
		pos = cand.End
	}
	return tokens, nil
}

// TokenizeBytes is Tokenize over a byte slice.
func (t *Tokenizer) TokenizeBytes(b []byte) ([]Token, error) {
	return t.Tokenize(string(b))
}

// Strings returns only the token texts.
func (t *Tokenizer) Strings(text string) ([]string, error) {
	tokens, err := t.Tokenize(text)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out, nil
}

// defaultTokenizer is built on first use of the package-level Tokenize.
var defaultTokenizer = sync.OnceValue(func() *Tokenizer {
	return New(nil, Options{})
})

// Tokenize is a convenience over a Tokenizer with the default catalog and
// options. Callers that need another lexicon build their own with New.
func Tokenize(text string) ([]Token, error) {
	return defaultTokenizer().Tokenize(text)
}

func invalidOffset(s string) int {
	if utf8.ValidString(s) {
		return -1
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
