package twokenize

import "github.com/cognicore/twokenize/pkg/twokenize/lexicon"

// Matcher attempts a match starting exactly at pos. It returns the exclusive
// end offset of the match, or -1 when nothing matches. A matcher may inspect
// s before pos (for boundary checks) but never matches there.
type Matcher interface {
	Match(s string, pos int) int
}

// MatcherFunc adapts an ordinary function to Matcher.
type MatcherFunc func(s string, pos int) int

// Match calls f(s, pos).
func (f MatcherFunc) Match(s string, pos int) int { return f(s, pos) }

// Family ranks. Lower ranks are consulted first.
const (
	RankEmoticon = iota
	RankEmail
	RankURL
	RankMention
	RankHashtag
	RankNumber
	RankAbbreviation
	RankPunctuation
	RankHTMLEntity
	RankWord
	RankWhitespace
	RankFallback
)

// Rule is one entry of the catalog.
type Rule struct {
	Name    string
	Class   Class
	Rank    int
	Matcher Matcher

	// classify overrides Class for rules whose class depends on the matched text.
	classify func(text string) Class
}

// ClassOf returns the class of a token this rule produced from text.
func (r *Rule) ClassOf(text string) Class {
	if r.classify != nil {
		return r.classify(text)
	}
	return r.Class
}

// Candidate is the result of one rule matching at one cursor position.
type Candidate struct {
	Start int
	End   int
	Rule  *Rule
}

// Len is the byte length of the candidate.
func (c Candidate) Len() int { return c.End - c.Start }

// Catalog is the immutable ordered set of rules consulted at every position.
type Catalog struct {
	rules []Rule
	// family boundaries: rules[families[i]:families[i+1]] share a rank
	families []int
	lex      *lexicon.Lexicon
}

// NewCatalog builds a catalog over lex. A nil lexicon means lexicon.Default().
// The lexicon is cloned; later changes to lex do not affect the catalog.
func NewCatalog(lex *lexicon.Lexicon) *Catalog {
	if lex == nil {
		lex = lexicon.Default()
	} else {
		lex = lex.Clone()
	}

	c := &Catalog{lex: lex}
	c.rules = append(c.rules, emoticonRules(lex)...)
	c.rules = append(c.rules,
		Rule{Name: "email", Class: Email, Rank: RankEmail, Matcher: MatcherFunc(matchEmail)},
		Rule{Name: "url", Class: URL, Rank: RankURL, Matcher: urlMatcher{lex: lex}},
		Rule{Name: "mention", Class: Mention, Rank: RankMention, Matcher: MatcherFunc(matchMention)},
		Rule{Name: "hashtag", Class: Hashtag, Rank: RankHashtag, Matcher: MatcherFunc(matchHashtag)},
	)
	c.rules = append(c.rules, numberRules()...)
	c.rules = append(c.rules, abbreviationRules(lex)...)
	c.rules = append(c.rules, punctuationRules()...)
	c.rules = append(c.rules,
		Rule{Name: "html-entity", Class: HTMLEntity, Rank: RankHTMLEntity, Matcher: MatcherFunc(matchEntity)},
		Rule{Name: "word", Class: Word, Rank: RankWord, Matcher: MatcherFunc(matchWord)},
		Rule{Name: "whitespace", Class: Whitespace, Rank: RankWhitespace, Matcher: MatcherFunc(matchWhitespace)},
		Rule{Name: "fallback", Class: Other, Rank: RankFallback, Matcher: MatcherFunc(matchFallback), classify: classifyFallback},
	)

	for i := range c.rules {
		if i == 0 || c.rules[i].Rank != c.rules[i-1].Rank {
			c.families = append(c.families, i)
		}
	}
	c.families = append(c.families, len(c.rules))
	return c
}

// DefaultCatalog builds a catalog over the built-in lexicon.
func DefaultCatalog() *Catalog {
	return NewCatalog(nil)
}

// Rules returns a copy of the ordered rules.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Lexicon returns a copy of the lexicon the catalog was built with.
func (c *Catalog) Lexicon() *lexicon.Lexicon {
	return c.lex.Clone()
}

// MatchAllAt returns every rule that matches starting at pos, in catalog order.
func (c *Catalog) MatchAllAt(s string, pos int) []Candidate {
	var out []Candidate
	for i := range c.rules {
		if end := c.rules[i].Matcher.Match(s, pos); end > pos {
			out = append(out, Candidate{Start: pos, End: end, Rule: &c.rules[i]})
		}
	}
	return out
}

// Best returns the winning candidate at pos: the longest match of the first
// family that matches at all, ties broken by catalog order.
func (c *Catalog) Best(s string, pos int) (Candidate, bool) {
	for f := 0; f+1 < len(c.families); f++ {
		var best Candidate
		found := false
		for i := c.families[f]; i < c.families[f+1]; i++ {
			end := c.rules[i].Matcher.Match(s, pos)
			if end <= pos {
				continue
			}
			if !found || end > best.End {
				best = Candidate{Start: pos, End: end, Rule: &c.rules[i]}
				found = true
			}
		}
		if found {
			return best, true
		}
	}
	return Candidate{}, false
}

// Select applies the priority policy to an arbitrary candidate set: lowest
// rank first, then longest, then earliest in the set.
func Select(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Rule.Rank < best.Rule.Rank || (c.Rule.Rank == best.Rule.Rank && c.End > best.End) {
			best = c
		}
	}
	return best, true
}
