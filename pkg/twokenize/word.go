package twokenize

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// matchWord matches letters, digits, marks and underscores, joined by single
// internal apostrophes (gov't, John's) or hyphens (state-of-the-art).
func matchWord(s string, pos int) int {
	i := runOf(s, pos, 0, isWordRune)
	if i == pos {
		return -1
	}
	for {
		r, size, ok := at(s, i)
		if !ok || !(isApostrophe(r) || r == '-') {
			return i
		}
		next, _, ok := at(s, i+size)
		if !ok || !isAlnum(next) {
			return i
		}
		if r == '-' {
			if prev, _ := before(s, i); !isAlnum(prev) {
				return i
			}
		}
		i = runOf(s, i+size, 0, isWordRune)
	}
}

func matchWhitespace(s string, pos int) int {
	end := runOf(s, pos, 0, isSpace)
	if end == pos {
		return -1
	}
	return end
}

// matchFallback consumes one extended grapheme cluster and never fails on
// non-empty input.
func matchFallback(s string, pos int) int {
	if pos >= len(s) {
		return -1
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[pos:], -1)
	if cluster == "" {
		_, size, _ := at(s, pos)
		return pos + size
	}
	return pos + len(cluster)
}

func classifyFallback(text string) Class {
	if r, _ := utf8.DecodeRuneInString(text); unicode.IsPunct(r) {
		return Punctuation
	}
	return Other
}
