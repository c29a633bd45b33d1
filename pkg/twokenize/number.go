package twokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func numberRules() []Rule {
	return []Rule{
		{Name: "number", Class: Number, Rank: RankNumber, Matcher: MatcherFunc(matchNumber)},
		{Name: "iso-date", Class: Number, Rank: RankNumber, Matcher: MatcherFunc(matchISODate)},
	}
}

func isDigit(r rune) bool { return unicode.IsDigit(r) }

// matchNumber matches an optionally signed, optionally currency-prefixed
// digit run with internal separators: 3.14 1,000 10:30 10/12/2020 192.168.0.1
// -2 +3.5 $5 €1,200.50 50%.
//
// A bare digit run that starts a longer word ("2day", "10-year-old") is left
// to the word rule.
func matchNumber(s string, pos int) int {
	i := pos
	decorated := false

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if !wordBoundaryBefore(s, pos) {
			return -1
		}
		i++
		decorated = true
	}
	if r, size, ok := at(s, i); ok && unicode.Is(unicode.Sc, r) {
		i += size
		decorated = true
	}

	first := i
	i = runOf(s, i, 0, isDigit)
	if i == first {
		return -1
	}
	firstGroup := i - first

	separated := false
	commasOnly := true
	for i < len(s) {
		sep := s[i]
		next, _, ok := at(s, i+1)
		if !ok || !isDigit(next) {
			break
		}
		if sep == ',' {
			// thousands groups: 1,000 12,345,678 (not the list "1,2,3")
			if !commasOnly || firstGroup > 3 || !threeDigitGroup(s, i+1) {
				break
			}
			i += 4
			separated = true
			continue
		}
		if strings.IndexByte(".:/", sep) < 0 {
			break
		}
		i = runOf(s, i+1, 0, isDigit)
		separated = true
		commasOnly = false
	}

	if i < len(s) && s[i] == '%' {
		i++
		decorated = true
	}

	if !separated && !decorated && lettersFollow(s, i) {
		return -1
	}
	return i
}

// lettersFollow reports whether the word segment that continues a digit run
// at i, or the one after a single joiner (10-year-old, 90's), holds a letter.
// Later segments are not read, so "1-1-1-a" gives up the leading 1s as numbers.
func lettersFollow(s string, i int) bool {
	end := runOf(s, i, 0, isWordRune)
	if strings.IndexFunc(s[i:end], unicode.IsLetter) >= 0 {
		return true
	}
	r, size, ok := at(s, end)
	if !ok || !(isApostrophe(r) || r == '-') {
		return false
	}
	if prev, _ := before(s, end); r == '-' && !isAlnum(prev) {
		return false
	}
	next := runOf(s, end+size, 0, isWordRune)
	return strings.IndexFunc(s[end+size:next], unicode.IsLetter) >= 0
}

// threeDigitGroup reports exactly three ASCII digits at i not followed by another digit.
func threeDigitGroup(s string, i int) bool {
	if i+3 > len(s) {
		return false
	}
	for j := i; j < i+3; j++ {
		if !isDigitByte(s[j]) {
			return false
		}
	}
	r, _, ok := at(s, i+3)
	return !ok || !isDigit(r)
}

// matchISODate matches yyyy-mm-dd not followed by another digit.
func matchISODate(s string, pos int) int {
	const layout = "dddd-dd-dd"
	if len(s)-pos < len(layout) {
		return -1
	}
	for j := 0; j < len(layout); j++ {
		c := s[pos+j]
		if layout[j] == 'd' && !isDigitByte(c) || layout[j] == '-' && c != '-' {
			return -1
		}
	}
	end := pos + len(layout)
	if r, _ := utf8.DecodeRuneInString(s[end:]); end < len(s) && isDigit(r) {
		return -1
	}
	return end
}
