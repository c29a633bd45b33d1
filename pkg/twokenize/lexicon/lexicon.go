package lexicon

import (
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Lexicon stores the curated vocabularies the tokenizer protects from splitting:
// - Abbreviations: "mr.", "etc.", "Gen." (case-insensitive, except that an
//   entry starting with an upper-case letter needs one in the text too)
// - Contractions: "don't", "y'all", "'em" (apostrophe variants are equivalent)
// - Emoticons: literal faces that the character-class rules miss ("xD", "\o/")
// - TLDs: extra top-level domains accepted for bare-domain URLs
//
// A Lexicon is mutable while it is being assembled. The tokenizer clones it
// when a catalog is built, so later edits never reach a running catalog.
type Lexicon struct {
	// folded key -> original spelling
	abbreviations map[string]string
	emoticons     map[string]struct{}
	tlds          map[string]struct{}

	// longest entries, in bytes of the folded/literal form
	maxAbbrev   int
	maxEmoticon int
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		abbreviations: make(map[string]string),
		emoticons:     make(map[string]struct{}),
		tlds:          make(map[string]struct{}),
	}
}

// Default returns a fresh lexicon holding the built-in lists.
func Default() *Lexicon {
	l := New()
	for _, a := range defaultAbbreviations {
		l.AddAbbreviation(a)
	}
	for _, c := range defaultContractions {
		l.AddAbbreviation(c)
	}
	for _, e := range defaultEmoticons {
		l.AddEmoticon(e)
	}
	for _, t := range defaultTLDs {
		l.AddTLD(t)
	}
	return l
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	replace_defaults: false
//	abbreviations: [Mr., approx., gov't]
//	emoticons: ["xD", "\\o/"]
//	tlds: [app, dev]
//
// Entries are added on top of Default() unless replace_defaults is true.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		ReplaceDefaults bool     `yaml:"replace_defaults"`
		Abbreviations   []string `yaml:"abbreviations"`
		Emoticons       []string `yaml:"emoticons"`
		TLDs            []string `yaml:"tlds"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	lex := Default()
	if file.ReplaceDefaults {
		lex = New()
	}
	for _, a := range file.Abbreviations {
		lex.AddAbbreviation(a)
	}
	for _, e := range file.Emoticons {
		lex.AddEmoticon(e)
	}
	for _, t := range file.TLDs {
		lex.AddTLD(t)
	}
	return lex, nil
}

// Fold maps s to the key used for abbreviation lookups: NFC, lower case,
// and every apostrophe variant replaced by U+0027.
func Fold(s string) string {
	s = norm.NFC.String(strings.ToLower(s))
	if !strings.ContainsAny(s, "’′‘") {
		return s
	}
	return apostropheFolder.Replace(s)
}

var apostropheFolder = strings.NewReplacer("’", "'", "′", "'", "‘", "'")

// AddAbbreviation registers an abbreviation or contraction. Blank entries are ignored.
func (l *Lexicon) AddAbbreviation(a string) {
	a = strings.TrimSpace(a)
	if a == "" {
		return
	}
	key := Fold(a)
	l.abbreviations[key] = a
	if len(key) > l.maxAbbrev {
		l.maxAbbrev = len(key)
	}
}

// AddEmoticon registers a literal emoticon. Emoticons are case-sensitive.
func (l *Lexicon) AddEmoticon(e string) {
	e = strings.TrimSpace(e)
	if e == "" {
		return
	}
	l.emoticons[e] = struct{}{}
	if len(e) > l.maxEmoticon {
		l.maxEmoticon = len(e)
	}
}

// AddTLD registers a top-level domain, with or without the leading dot.
func (l *Lexicon) AddTLD(t string) {
	t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
	if t == "" {
		return
	}
	l.tlds[t] = struct{}{}
}

// IsAbbreviation reports whether s is a known abbreviation or contraction.
func (l *Lexicon) IsAbbreviation(s string) bool {
	entry, ok := l.abbreviations[Fold(s)]
	if !ok {
		return false
	}
	return !startsUpper(entry) || startsUpper(s)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// IsEmoticon reports whether s is a known literal emoticon.
func (l *Lexicon) IsEmoticon(s string) bool {
	_, ok := l.emoticons[s]
	return ok
}

// IsTLD reports whether s (without dot) is an accepted top-level domain.
func (l *Lexicon) IsTLD(s string) bool {
	_, ok := l.tlds[strings.ToLower(s)]
	return ok
}

// MaxAbbreviationLen is the byte length of the longest folded abbreviation.
func (l *Lexicon) MaxAbbreviationLen() int { return l.maxAbbrev }

// MaxEmoticonLen is the byte length of the longest literal emoticon.
func (l *Lexicon) MaxEmoticonLen() int { return l.maxEmoticon }

// Abbreviations returns the registered abbreviations in their original spelling, sorted.
func (l *Lexicon) Abbreviations() []string {
	out := make([]string, 0, len(l.abbreviations))
	for _, a := range l.abbreviations {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Emoticons returns the registered emoticons, sorted.
func (l *Lexicon) Emoticons() []string {
	return sortedKeys(l.emoticons)
}

// TLDs returns the registered top-level domains, sorted.
func (l *Lexicon) TLDs() []string {
	return sortedKeys(l.tlds)
}

// Clone returns a deep copy.
func (l *Lexicon) Clone() *Lexicon {
	c := New()
	for k, v := range l.abbreviations {
		c.abbreviations[k] = v
	}
	for k := range l.emoticons {
		c.emoticons[k] = struct{}{}
	}
	for k := range l.tlds {
		c.tlds[k] = struct{}{}
	}
	c.maxAbbrev = l.maxAbbrev
	c.maxEmoticon = l.maxEmoticon
	return c
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Abbreviations: len(l.abbreviations),
		Emoticons:     len(l.emoticons),
		TLDs:          len(l.tlds),
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	Abbreviations int // Abbreviations and contractions
	Emoticons     int // Literal emoticons
	TLDs          int // Extra top-level domains
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
