// Package twokenize splits informal social-media text (tweets, chat, forum
// posts) into classified tokens.
//
// Tokenization is a single left-to-right pass. At every cursor position the
// scanner consults an immutable Catalog of rules grouped into ranked families
// (emoticons first, then emails, URLs, mentions, hashtags, numbers,
// abbreviations, punctuation runs, HTML entities, words, whitespace and a
// one-grapheme fallback). The first family with a match wins and, inside a
// family, the longest match wins. The fallback never fails, so the scanner
// always makes progress.
//
// Offsets are UTF-8 byte offsets. For every token text[t.Start:t.End] == t.Text,
// and concatenating all tokens (whitespace tokens included) reconstructs the
// input. With whitespace emission disabled, the gaps between tokens are pure
// whitespace.
//
// A Catalog and a Tokenizer are read-only once built and safe for concurrent use.
package twokenize

import "fmt"

// Class tags the kind of a token.
type Class int

const (
	Emoticon     Class = iota // :-) (: ^_^ <3 and emoji
	URL                       // http://…, www.…, example.com/…
	Mention                   // @user
	Hashtag                   // #tag
	Email                     // user@example.com
	Number                    // 3.14 1,000 10:30 $5 -2 50%
	Abbreviation              // Mr. etc. U.S.A. don't
	Punctuation               // runs like ... !!! ?! and single marks
	HTMLEntity                // &amp; &#39;
	Word                      // letters/digits with internal apostrophes and hyphens
	Other                     // symbols, arrows, decorations
	Whitespace                // runs of whitespace
)

var classNames = [...]string{
	Emoticon:     "Emoticon",
	URL:          "URL",
	Mention:      "Mention",
	Hashtag:      "Hashtag",
	Email:        "Email",
	Number:       "Number",
	Abbreviation: "Abbreviation",
	Punctuation:  "Punctuation",
	HTMLEntity:   "HTMLEntity",
	Word:         "Word",
	Other:        "Other",
	Whitespace:   "Whitespace",
}

// Classes lists every class in declaration order.
func Classes() []Class {
	out := make([]Class, len(classNames))
	for i := range classNames {
		out[i] = Class(i)
	}
	return out
}

// String returns the name of the class.
func (c Class) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(classNames) {
		return nil, fmt.Errorf("twokenize: unknown class %d", int(c))
	}
	return []byte(classNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(b []byte) error {
	cls, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = cls
	return nil
}

// ParseClass returns the class with the given name.
func ParseClass(name string) (Class, error) {
	for i, n := range classNames {
		if n == name {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("twokenize: unknown class %q", name)
}

// Token is a contiguous, classified span of the input.
type Token struct {
	Text  string `json:"text"`           // input[Start:End], never transformed
	Start int    `json:"start"`          // byte offset (inclusive)
	End   int    `json:"end"`            // byte offset (exclusive)
	Class Class  `json:"class"`          // classification
	Norm  string `json:"norm,omitempty"` // canonical form of a punctuation run, when requested
}

// String returns a debug representation, e.g. Word("see")[3:6].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Class, t.Text, t.Start, t.End)
}
