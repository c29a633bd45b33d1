package twokenize

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/twokenize/pkg/twokenize/lexicon"
)

// RFC 5321 length limits; they also keep a failed scan bounded.
const (
	maxEmailLocal  = 64
	maxEmailDomain = 255
	maxLabel       = 63
	maxLabels      = 6
)

// urlTrailing is sentence punctuation that ends a URL's surroundings rather than the URL.
const urlTrailing = `'"“”‘’.?!…,:;`

var urlTrailingEntities = []string{"&amp;", "&lt;", "&gt;", "&quot;"}

func isEmailLocal(b byte) bool {
	return isASCIILetter(b) || isDigitByte(b) || strings.IndexByte("._%+-", b) >= 0
}

func isDomainByte(b byte) bool {
	return isASCIILetter(b) || isDigitByte(b) || b == '.' || b == '-'
}

// matchEmail matches local@domain.tld between non-word boundaries.
func matchEmail(s string, pos int) int {
	if !wordBoundaryBefore(s, pos) {
		return -1
	}
	sign := pos
	for sign < len(s) && sign-pos < maxEmailLocal && isEmailLocal(s[sign]) {
		sign++
	}
	if sign == pos || sign >= len(s) || s[sign] != '@' {
		return -1
	}

	domEnd := sign + 1
	for domEnd < len(s) && domEnd-sign <= maxEmailDomain && isDomainByte(s[domEnd]) {
		domEnd++
	}

	// longest domain that ends in .letters{2,} and is followed by a boundary
	for end := domEnd; end > sign+1; end-- {
		if !isASCIILetter(s[end-1]) || !wordBoundaryAfter(s, end) {
			continue
		}
		domain := s[sign+1 : end]
		dot := strings.LastIndexByte(domain, '.')
		if dot < 1 || len(domain)-dot-1 < 2 || !allLetters(domain[dot+1:]) {
			continue
		}
		return end
	}
	return -1
}

func allLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return s != ""
}

// urlMatcher recognizes scheme URLs, www. URLs and bare domains with a known TLD.
type urlMatcher struct {
	lex *lexicon.Lexicon
}

func (m urlMatcher) Match(s string, pos int) int {
	var bodyStart int
	needBody := true
	switch {
	case hasPrefixFold(s, pos, "https://"):
		bodyStart = pos + len("https://")
	case hasPrefixFold(s, pos, "http://"):
		bodyStart = pos + len("http://")
	case hasPrefixFold(s, pos, "www.") && wordBoundaryBefore(s, pos):
		bodyStart = pos + len("www.")
	default:
		if !wordBoundaryBefore(s, pos) {
			return -1
		}
		host := m.bareHost(s, pos)
		if host < 0 {
			return -1
		}
		bodyStart, needBody = host, false
	}

	end := urlBodyEnd(s, bodyStart)
	if needBody && end == bodyStart {
		return -1
	}
	return end
}

// bareHost matches label(.label)*.tld and returns the end of the host, or -1.
// The TLD must be followed by a non-word rune or the end of the text.
func (m urlMatcher) bareHost(s string, pos int) int {
	var ends []int
	i := pos
	for len(ends) < maxLabels {
		j := i
		for j < len(s) && j-i < maxLabel && (isASCIILetter(s[j]) || isDigitByte(s[j]) || s[j] == '-') {
			j++
		}
		if j == i {
			break
		}
		ends = append(ends, j)
		if j >= len(s) || s[j] != '.' {
			break
		}
		i = j + 1
	}

	for k := len(ends) - 1; k >= 1; k-- {
		tld := s[ends[k-1]+1 : ends[k]]
		if m.lex.IsTLD(tld) && wordBoundaryAfter(s, ends[k]) {
			return ends[k]
		}
	}
	return -1
}

// urlBodyEnd returns where a URL body starting at i ends. The body runs to
// whitespace, '<', '>', ".." or the end of the text; trailing sentence
// punctuation, entities and unbalanced closing brackets are given back.
func urlBodyEnd(s string, i int) int {
	if i >= len(s) || s[i] == '.' {
		return i
	}
	stop := i
	for stop < len(s) {
		r, size := utf8.DecodeRuneInString(s[stop:])
		if isSpace(r) || r == '<' || r == '>' || strings.HasPrefix(s[stop:], "..") {
			break
		}
		stop += size
	}
	return i + len(trimURLTail(s[i:stop]))
}

func trimURLTail(body string) string {
	// open minus close count per bracket pair, kept current while trimming
	balance := map[rune]int{
		')': strings.Count(body, "(") - strings.Count(body, ")"),
		']': strings.Count(body, "[") - strings.Count(body, "]"),
		'}': strings.Count(body, "{") - strings.Count(body, "}"),
	}
	for body != "" {
		r, size := utf8.DecodeLastRuneInString(body)
		if strings.ContainsRune(urlTrailing, r) {
			body = body[:len(body)-size]
			continue
		}
		if b, ok := balance[r]; ok && b < 0 {
			balance[r]++
			body = body[:len(body)-size]
			continue
		}
		trimmed := false
		for _, e := range urlTrailingEntities {
			if strings.HasSuffix(body, e) {
				body = body[:len(body)-len(e)]
				trimmed = true
				break
			}
		}
		if !trimmed {
			break
		}
	}
	return body
}

// matchMention matches @user (ASCII or fullwidth at sign).
func matchMention(s string, pos int) int {
	return sigilRun(s, pos, '@', '＠')
}

// matchHashtag matches #tag (ASCII or fullwidth number sign).
func matchHashtag(s string, pos int) int {
	return sigilRun(s, pos, '#', '＃')
}

func sigilRun(s string, pos int, sigils ...rune) int {
	r, size, ok := at(s, pos)
	if !ok {
		return -1
	}
	for _, sg := range sigils {
		if r == sg {
			end := runOf(s, pos+size, 0, isWordRune)
			if end == pos+size {
				return -1
			}
			return end
		}
	}
	return -1
}
