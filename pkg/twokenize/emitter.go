package twokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// contractionSuffixes are split off by Options.SplitContractions, longest first.
var contractionSuffixes = []string{"n't", "'ve", "'ll", "'re", "'d", "'s", "'m"}

// emit appends the token(s) for a committed candidate.
func (t *Tokenizer) emit(tokens []Token, text string, c Candidate) []Token {
	cls := c.Rule.ClassOf(text[c.Start:c.End])
	if cls == Whitespace && !t.opts.EmitWhitespace {
		return tokens
	}
	tok := Token{Text: text[c.Start:c.End], Start: c.Start, End: c.End, Class: cls}

	if cls == Punctuation && t.opts.NormalizeRepeatedPunctuation {
		tok.Norm = canonicalRun(tok.Text)
	}
	if (cls == Word || cls == Abbreviation) && t.opts.SplitContractions {
		if cut := contractionCut(tok.Text); cut > 0 {
			return append(tokens,
				Token{Text: tok.Text[:cut], Start: tok.Start, End: tok.Start + cut, Class: Word},
				Token{Text: tok.Text[cut:], Start: tok.Start + cut, End: tok.End, Class: Word},
			)
		}
	}
	return append(tokens, tok)
}

// canonicalRun collapses a punctuation run: dot and ellipsis runs of two or
// more become "...", anything else keeps its distinct runes in order of first
// appearance. Single runes have no canonical form ("").
func canonicalRun(run string) string {
	if utf8.RuneCountInString(run) < 2 {
		return ""
	}
	if strings.Trim(run, ".…") == "" {
		return "..."
	}
	var b strings.Builder
	for _, r := range run {
		if !strings.ContainsRune(b.String(), r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// contractionCut returns the byte offset where a contraction suffix starts,
// or 0 when word does not end in one after at least one word rune.
func contractionCut(word string) int {
	for _, suf := range contractionSuffixes {
		if cut := matchSuffix(word, suf); cut > 0 {
			if r, ok := before(word, cut); ok && isWordRune(r) {
				return cut
			}
		}
	}
	return 0
}

// matchSuffix matches the lowercase ASCII suf at the end of s, ignoring case
// and letting any apostrophe variant stand for '\''. It returns where the
// suffix starts, or -1.
func matchSuffix(s, suf string) int {
	i, j := len(s), len(suf)
	for j > 0 {
		if i == 0 {
			return -1
		}
		r, size := utf8.DecodeLastRuneInString(s[:i])
		want := rune(suf[j-1])
		if r >= utf8.RuneSelf && !(want == '\'' && isApostrophe(r)) {
			return -1
		}
		if r < utf8.RuneSelf && unicode.ToLower(r) != want {
			return -1
		}
		i -= size
		j--
	}
	return i
}
