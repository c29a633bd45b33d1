package twokenize

import "unicode/utf8"

const (
	quoteRunes    = `'"“”‘’`
	terminalRunes = ".?!,…"
	colonRunes    = ":;"
	dashRunes     = "―—–"
	shaftRunes    = "-―—="
	maxEntity     = 32
)

func punctuationRules() []Rule {
	return []Rule{
		{Name: "quotes", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun(quoteRunes, 1)},
		{Name: "terminal", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun(terminalRunes, 1)},
		{Name: "colons", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun(colonRunes, 1)},
		{Name: "double-hyphen", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun("-", 2)},
		{Name: "dashes", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun(dashRunes, 1)},
		{Name: "tildes", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun("~", 1)},
		{Name: "equals", Class: Punctuation, Rank: RankPunctuation, Matcher: setRun("=", 1)},
		{Name: "arrow", Class: Other, Rank: RankPunctuation, Matcher: MatcherFunc(matchArrow)},
		{Name: "arrow-symbols", Class: Other, Rank: RankPunctuation, Matcher: runMatcher(isArrowSymbol)},
	}
}

// setRun matches a run of at least least runes from set.
func setRun(set string, least int) MatcherFunc {
	return func(s string, pos int) int {
		end := runOfSet(s, pos, 0, set)
		if utf8.RuneCountInString(s[pos:end]) < least {
			return -1
		}
		return end
	}
}

func isArrowSymbol(r rune) bool {
	return r >= 0x2190 && r <= 0x21FF
}

// matchArrow matches ASCII arrows: -> => --> <- <-- <=> << >>.
func matchArrow(s string, pos int) int {
	best := -1

	// <*[-―—=]*>+
	i := runOfSet(s, pos, 0, "<")
	j := runOfSet(s, i, 0, shaftRunes)
	if k := runOfSet(s, j, 0, ">"); k > j {
		best = k
	}

	// <+[-―—=]*>*
	if i > pos {
		k := runOfSet(s, j, 0, ">")
		best = max(best, k)
	}
	return best
}

// matchEntity matches &name; &#123; and &#x1F600;.
func matchEntity(s string, pos int) int {
	if pos >= len(s) || s[pos] != '&' {
		return -1
	}
	limit := min(len(s), pos+maxEntity)
	i := pos + 1
	switch {
	case i+1 < limit && s[i] == '#' && (s[i+1] == 'x' || s[i+1] == 'X'):
		i = scanBytes(s, i+2, limit, isHexByte)
		if s[i-1] == 'x' || s[i-1] == 'X' {
			return -1
		}
	case i < limit && s[i] == '#':
		i = scanBytes(s, i+1, limit, isDigitByte)
		if s[i-1] == '#' {
			return -1
		}
	case i < limit && isASCIILetter(s[i]):
		i = scanBytes(s, i, limit, func(b byte) bool { return isASCIILetter(b) || isDigitByte(b) })
	default:
		return -1
	}
	if i >= limit || s[i] != ';' {
		return -1
	}
	return i + 1
}

func scanBytes(s string, i, limit int, in func(byte) bool) int {
	for i < limit && in(s[i]) {
		i++
	}
	return i
}

func isHexByte(b byte) bool {
	return isDigitByte(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
