package twokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWordRune reports letters, digits, combining marks and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == '′'
}

// before returns the rune ending at pos, or ok=false at the start of s.
func before(s string, pos int) (r rune, ok bool) {
	if pos <= 0 {
		return 0, false
	}
	r, _ = utf8.DecodeLastRuneInString(s[:pos])
	return r, true
}

// at returns the rune starting at pos, or ok=false at the end of s.
func at(s string, pos int) (r rune, size int, ok bool) {
	if pos >= len(s) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRuneInString(s[pos:])
	return r, size, true
}

// wordBoundaryBefore is true at the start of s, after a non-word rune, or
// after a closed number.
func wordBoundaryBefore(s string, pos int) bool {
	r, ok := before(s, pos)
	return !ok || !isWordRune(r) || afterNumber(s, pos)
}

// afterNumber is true between a digit and a letter. No token starts there
// inside a word, so the digit ended a number or a heart: "$3xP", "<3xD".
func afterNumber(s string, pos int) bool {
	prev, ok := before(s, pos)
	if !ok || !unicode.IsDigit(prev) {
		return false
	}
	r, _, ok := at(s, pos)
	return ok && unicode.IsLetter(r)
}

// wordBoundaryAfter is true at the end of s or before a non-word rune.
func wordBoundaryAfter(s string, pos int) bool {
	r, _, ok := at(s, pos)
	return !ok || !isWordRune(r)
}

// spaceBefore is true at the start of s or after whitespace.
func spaceBefore(s string, pos int) bool {
	r, ok := before(s, pos)
	return !ok || isSpace(r)
}

// runOf consumes runes from pos while in(r) holds, at most limit runes
// (limit <= 0 means unbounded). It returns the end offset.
func runOf(s string, pos int, limit int, in func(rune) bool) int {
	n := 0
	for pos < len(s) && (limit <= 0 || n < limit) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !in(r) {
			break
		}
		pos += size
		n++
	}
	return pos
}

// runOfSet is runOf over a literal set of runes.
func runOfSet(s string, pos int, limit int, set string) int {
	return runOf(s, pos, limit, func(r rune) bool { return strings.ContainsRune(set, r) })
}

// hasPrefixFold reports whether s[pos:] starts with prefix, ASCII case-insensitively.
func hasPrefixFold(s string, pos int, prefix string) bool {
	if len(s)-pos < len(prefix) {
		return false
	}
	return strings.EqualFold(s[pos:pos+len(prefix)], prefix)
}
