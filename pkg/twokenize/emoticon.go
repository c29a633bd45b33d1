package twokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/cognicore/twokenize/pkg/twokenize/lexicon"
)

// Emoticon character classes. "8" and "x" work as eyes too but collide with
// ordinary text, so only the punctuation eyes are used.
const (
	eyes        = ":=;"
	happyMouths = ")]}D"
	sadMouths   = "([{"
	tongues     = "pPd3"

	// east-asian faces: ヽ(´ー｀)ﾉ (^_^) ＼(◎o◎)／
	eastLeft  = "＼\\ƪԄ(（<>;ヽ-=~*"
	eastRight = "-=);'\"<>ʃ）/／ノﾉ丿╯σっµ~*"

	// eyes of a basic face X.X / X_X
	faceEyes = "♥0oO°vV$tTxX;ಠ@ʘ•・◕^¬*"
)

// Caps on runs inside a candidate that may still fail, so a long run of
// brackets cannot make every position rescan it.
const (
	maxEastRun   = 8
	maxEastItems = 16
	maxFaceRun   = 8
)

func emoticonRules(lex *lexicon.Lexicon) []Rule {
	rule := func(name string, cls Class, m Matcher) Rule {
		return Rule{Name: name, Class: cls, Rank: RankEmoticon, Matcher: m}
	}
	return []Rule{
		rule("emoticon-western", Emoticon, MatcherFunc(matchWestern)),
		rule("emoticon-reversed", Emoticon, MatcherFunc(matchReversed)),
		rule("emoticon-east", Emoticon, MatcherFunc(matchEast)),
		rule("emoticon-face", Emoticon, MatcherFunc(matchBasicFace)),
		rule("emoticon-heart", Emoticon, MatcherFunc(matchHearts)),
		rule("emoticon-lexicon", Emoticon, literalEmoticons{lex: lex}),
		rule("emoticon-decoration", Emoticon, runMatcher(inSet("♥❤♡"), inSet("☹☺☻"))),
		rule("decoration", Other, runMatcher(inSet("♫♪"), inSet("★☆"), isPrivateUseEmoji)),
		rule("emoji", Emoticon, MatcherFunc(matchEmoji)),
	}
}

func inSet(set string) func(rune) bool {
	return func(r rune) bool { return strings.ContainsRune(set, r) }
}

// isPrivateUseEmoji covers the pre-Unicode iOS emoji in U+E001..U+EBBB.
func isPrivateUseEmoji(r rune) bool {
	return r >= 0xE001 && r <= 0xEBBB
}

// runMatcher matches a maximal run of runes that all satisfy the first
// predicate accepting the rune at pos.
func runMatcher(preds ...func(rune) bool) MatcherFunc {
	return func(s string, pos int) int {
		r, _, ok := at(s, pos)
		if !ok {
			return -1
		}
		for _, in := range preds {
			if in(r) {
				return runOf(s, pos, 0, in)
			}
		}
		return -1
	}
}

// mouthLookaheadOK: tongues and "other" mouths must be followed by a non-word
// rune, the end, or a retweet marker (":P RT" written without a space).
func mouthLookaheadOK(s string, pos int) bool {
	if wordBoundaryAfter(s, pos) {
		return true
	}
	return strings.HasPrefix(s[pos:], "RT") || strings.HasPrefix(s[pos:], "rt") || strings.HasPrefix(s[pos:], "Rt")
}

// otherMouthSet returns the run set an "other" mouth starting with b belongs to.
func otherMouthSet(b byte) string {
	switch b {
	case 'o', 'O':
		return "oO"
	case '/', '\\':
		return "/\\"
	case 'v', 'V':
		return "vV"
	case 's', 'S':
		return "sS"
	case '|':
		return "|"
	}
	return ""
}

// matchMouth matches a western mouth at pos and returns its end or -1.
func matchMouth(s string, pos int) int {
	if pos >= len(s) {
		return -1
	}
	b := s[pos]
	switch {
	case strings.IndexByte(tongues, b) >= 0:
		end := runOfSet(s, pos, 0, tongues)
		if mouthLookaheadOK(s, end) {
			return end
		}
		return -1
	case otherMouthSet(b) != "":
		set := otherMouthSet(b)
		end := runOfSet(s, pos, 0, set)
		if mouthLookaheadOK(s, end) {
			return end
		}
		// punctuation mouths can give one back: the next mouth rune is the boundary
		if !isASCIILetter(b) && end-pos >= 2 {
			return end - 1
		}
		return -1
	case strings.IndexByte(sadMouths, b) >= 0:
		return runOfSet(s, pos, 0, sadMouths)
	case strings.IndexByte(happyMouths, b) >= 0:
		end := runOfSet(s, pos, 0, happyMouths)
		if r, _, ok := at(s, end); ok && unicode.IsLetter(r) {
			// ":Day" is not a grin
			for end > pos && s[end-1] == 'D' {
				end--
			}
		}
		if end == pos {
			return -1
		}
		return end
	}
	return -1
}

// noseEnds lists the offsets after every admissible nose at pos, the empty nose first.
func noseEnds(s string, pos int) []int {
	ends := []int{pos}
	r, size, ok := at(s, pos)
	if !ok {
		return ends
	}
	if r == 'o' || r == 'O' || (!isAlnum(r) && !isSpace(r)) {
		ends = append(ends, pos+size)
	}
	return ends
}

// matchWestern matches :-) ;P =D >:( &gt;:( :'( and similar.
func matchWestern(s string, pos int) int {
	i := pos
	switch {
	case strings.HasPrefix(s[i:], "&gt;"):
		i += len("&gt;")
	case strings.HasPrefix(s[i:], ">"):
		i++
	}
	if i >= len(s) || strings.IndexByte(eyes, s[i]) < 0 {
		return -1
	}
	i++

	best := -1
	for _, n := range noseEnds(s, i) {
		if end := matchMouth(s, n); end > best {
			best = end
		}
	}
	return best
}

// matchReversed matches (: (-: D: )': at the start of text or after whitespace.
// Eyes on the right are ambiguous with "(word):", hence the space requirement.
func matchReversed(s string, pos int) int {
	if !spaceBefore(s, pos) || pos >= len(s) {
		return -1
	}
	b := s[pos]
	var mouthEnd int
	switch {
	case strings.IndexByte(sadMouths, b) >= 0:
		mouthEnd = runOfSet(s, pos, maxFaceRun, sadMouths)
	case strings.IndexByte(happyMouths, b) >= 0:
		mouthEnd = runOfSet(s, pos, maxFaceRun, happyMouths)
	case otherMouthSet(b) != "":
		mouthEnd = runOfSet(s, pos, maxFaceRun, otherMouthSet(b))
	default:
		return -1
	}

	best := -1
	for _, n := range noseEnds(s, mouthEnd) {
		if n >= len(s) || strings.IndexByte(eyes, s[n]) < 0 {
			continue
		}
		end := n + 1
		switch {
		case strings.HasPrefix(s[end:], "&lt;"):
			end += len("&lt;")
		case strings.HasPrefix(s[end:], "<"):
			end++
		}
		if end > best {
			best = end
		}
	}
	return best
}

// isEastSymbol is any rune that can sit inside an east-asian face.
func isEastSymbol(r rune) bool {
	if r < utf8.RuneSelf && (isASCIILetter(byte(r)) || isDigitByte(byte(r))) {
		return false
	}
	return !isSpace(r) && !strings.ContainsRune("()*:=-", r)
}

// matchEast matches left-bracket, face body, right-bracket faces such as
// (^_^) ヽ(´ー｀)ﾉ -_- ;_; (>_<)
func matchEast(s string, pos int) int {
	leftMax := runOfSet(s, pos, maxEastRun, eastLeft)
	if leftMax == pos {
		return -1
	}

	best := -1
	for left := pos; left < leftMax; {
		_, size := utf8.DecodeRuneInString(s[left:])
		left += size

		// every offset reachable after one or more body items
		frontier := []int{left}
		seen := map[int]bool{}
		for items := 0; items < maxEastItems && len(frontier) > 0; items++ {
			var next []int
			for _, p := range frontier {
				if end := rawFace(s, p); end > p && !seen[end] {
					seen[end] = true
					next = append(next, end)
				}
				if r, size, ok := at(s, p); ok && isEastSymbol(r) && !seen[p+size] {
					seen[p+size] = true
					next = append(next, p+size)
				}
			}
			frontier = next
		}

		for body := range seen {
			if !hasFaceRune(s[left:body]) {
				continue
			}
			if end := runOfSet(s, body, maxEastRun, eastRight); end > body && end > best {
				best = end
			}
		}
	}
	return best
}

// hasFaceRune rejects bodies made only of bracket runes, like "~~~".
func hasFaceRune(body string) bool {
	for _, r := range body {
		if !strings.ContainsRune(eastLeft, r) && !strings.ContainsRune(eastRight, r) {
			return true
		}
	}
	return false
}

// rawFace matches X.X / X_X / X-X with equal eyes, without boundary checks.
func rawFace(s string, pos int) int {
	l, lsize, ok := at(s, pos)
	if !ok || !strings.ContainsRune(faceEyes, l) {
		return -1
	}
	i := pos + lsize
	if i >= len(s) {
		return -1
	}
	switch s[i] {
	case '.':
		if l == '0' {
			// 0.0 is a number
			return -1
		}
		i++
	case '_', '-':
		i = runOfSet(s, i, maxFaceRun, "_-")
	default:
		return -1
	}
	r, rsize, ok := at(s, i)
	if !ok || !(r == l || unicode.ToLower(r) == unicode.ToLower(l)) {
		return -1
	}
	return i + rsize
}

var angleBrackets = []string{"&lt;", "&gt;", "<", ">"}

func angleAt(s string, pos int) int {
	for _, a := range angleBrackets {
		if strings.HasPrefix(s[pos:], a) {
			return pos + len(a)
		}
	}
	return -1
}

// matchBasicFace matches o.O ^_^ @_@ x_x, plus --' >_< ._. faces.
func matchBasicFace(s string, pos int) int {
	if !boundaryBeforeAlnum(s, pos) {
		return -1
	}
	best := -1
	if end := rawFace(s, pos); end > 0 && boundaryAfterAlnum(s, end) {
		best = end
	}

	// --' and --"
	if strings.HasPrefix(s[pos:], "--'") || strings.HasPrefix(s[pos:], "--\"") {
		best = max(best, pos+3)
	}

	// >_< <.< &gt;_&lt; but not the arrow <->
	if i := angleAt(s, pos); i > 0 {
		j := runOfSet(s, i, maxFaceRun, "._-")
		if j > i {
			if k := angleAt(s, j); k > 0 {
				arrow := s[pos] == '<' && s[j] == '>' && strings.Trim(s[i:j], "-") == ""
				if !arrow {
					best = max(best, k)
				}
			}
		}
	}

	// ._.
	if strings.HasPrefix(s[pos:], "._") {
		j := runOfSet(s, pos+1, maxFaceRun, "_")
		if j < len(s) && s[j] == '.' {
			best = max(best, j+1)
		}
	}
	return best
}

func boundaryBeforeAlnum(s string, pos int) bool {
	r, ok := before(s, pos)
	return !ok || !isAlnum(r) || afterNumber(s, pos)
}

func boundaryAfterAlnum(s string, pos int) bool {
	r, _, ok := at(s, pos)
	return !ok || !isAlnum(r)
}

// matchHearts matches <3 </3 <<33 <3<3, not followed by a digit (<300 is a comparison).
func matchHearts(s string, pos int) int {
	i := pos
	end := -1
	for i < len(s) && s[i] == '<' {
		j := runOfSet(s, i, 0, "<")
		if j < len(s) && s[j] == '/' {
			j++
		}
		k := runOfSet(s, j, 0, "3")
		if k == j {
			break
		}
		end, i = k, k
	}
	if end < 0 {
		return -1
	}
	if end < len(s) && isDigitByte(s[end]) {
		return -1
	}
	return end
}

// literalEmoticons matches the lexicon's curated faces, longest first.
type literalEmoticons struct {
	lex *lexicon.Lexicon
}

func (m literalEmoticons) Match(s string, pos int) int {
	limit := min(m.lex.MaxEmoticonLen(), len(s)-pos)
	for n := limit; n > 0; n-- {
		cand := s[pos : pos+n]
		if !m.lex.IsEmoticon(cand) {
			continue
		}
		first, _ := utf8.DecodeRuneInString(cand)
		last, _ := utf8.DecodeLastRuneInString(cand)
		if isAlnum(first) && !boundaryBeforeAlnum(s, pos) {
			continue
		}
		if isAlnum(last) && !boundaryAfterAlnum(s, pos+n) {
			continue
		}
		return pos + n
	}
	return -1
}

// matchEmoji matches one emoji grapheme cluster: pictographs with their
// modifiers and ZWJ sequences, flag pairs and keycaps.
func matchEmoji(s string, pos int) int {
	if pos >= len(s) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	if r < utf8.RuneSelf && !isDigitByte(byte(r)) && r != '#' && r != '*' {
		return -1
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[pos:], -1)
	if isPictographic(r) || strings.ContainsRune(cluster, keycap) ||
		(strings.ContainsRune(cluster, emojiPresentation) && !isAlnum(r)) {
		return pos + len(cluster)
	}
	return -1
}

const (
	emojiPresentation = '\uFE0F'
	keycap            = '\u20E3'
)

func isPictographic(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji blocks, incl. regional indicators
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2300 && r <= 0x23FF, r >= 0x2B00 && r <= 0x2BFF:
		return true
	}
	switch r {
	case 0x203C, 0x2049, 0x3030, 0x303D, 0x3297, 0x3299:
		return true
	}
	return false
}
