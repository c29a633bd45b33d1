package twokenize

import (
	"strings"
	"unicode"

	"github.com/cognicore/twokenize/pkg/twokenize/lexicon"
)

func abbreviationRules(lex *lexicon.Lexicon) []Rule {
	return []Rule{
		{Name: "abbreviation", Class: Abbreviation, Rank: RankAbbreviation, Matcher: knownAbbreviations{lex: lex}},
		{Name: "acronym", Class: Abbreviation, Rank: RankAbbreviation, Matcher: MatcherFunc(matchAcronym)},
	}
}

// knownAbbreviations matches lexicon entries (Mr. etc. don't y'all) case-insensitively.
type knownAbbreviations struct {
	lex *lexicon.Lexicon
}

func isAbbrevRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || r == '.' || isApostrophe(r) || r == '‘'
}

func (m knownAbbreviations) Match(s string, pos int) int {
	r, _, ok := at(s, pos)
	if !ok || !(unicode.IsLetter(r) || isApostrophe(r) || r == '‘') || !wordBoundaryBefore(s, pos) {
		return -1
	}
	// NFC folding can compose a decomposed spelling, so the raw text may
	// hold more runes than the folded entry.
	limit := 2 * m.lex.MaxAbbreviationLen()
	if limit == 0 {
		return -1
	}
	end := runOf(s, pos, limit, isAbbrevRune)

	var ends []int
	for i := pos; i < end; {
		_, size, _ := at(s, i)
		i += size
		ends = append(ends, i)
	}
	for k := len(ends) - 1; k >= 0; k-- {
		e := ends[k]
		cand := s[pos:e]
		if !m.lex.IsAbbreviation(cand) {
			continue
		}
		if !strings.HasSuffix(cand, ".") && !wordBoundaryAfter(s, e) {
			continue
		}
		return e
	}
	return -1
}

// maxAcronymPairs caps the letter-dot pairs of an acronym; a longer dotted
// run is read as words and periods.
const maxAcronymPairs = 16

// matchAcronym matches dotted letter sequences: U.S.A. e.g. i.e p.m.
func matchAcronym(s string, pos int) int {
	if !boundaryBeforeAlnum(s, pos) {
		return -1
	}
	i, pairs := pos, 0
	for pairs < maxAcronymPairs && i+1 < len(s) && isASCIILetter(s[i]) && s[i+1] == '.' {
		i += 2
		pairs++
	}
	best := -1
	if pairs >= 2 && boundaryNotDot(s, i) {
		best = i
	}
	if pairs >= 1 && i < len(s) && isASCIILetter(s[i]) && boundaryNotDot(s, i+1) {
		best = i + 1
	}
	return best
}

// boundaryNotDot is true at the end of s, before whitespace, before closing
// sentence punctuation other than '.', or before an HTML entity.
func boundaryNotDot(s string, pos int) bool {
	r, _, ok := at(s, pos)
	if !ok || isSpace(r) || strings.ContainsRune(`“"?!,:;`, r) {
		return true
	}
	return r == '&' && matchEntity(s, pos) > pos
}
