package twokenize

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
)

// describe renders tokens as Class:Text for compact comparisons.
func describe(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Class.String() + ":" + tok.Text
	}
	return out
}

var tokenizeCases = []struct {
	name string
	text string
	want []string
}{
	{"priority", ":) see http://example.com/foo?q=1 #ok @bob",
		[]string{"Emoticon::)", "Word:see", "URL:http://example.com/foo?q=1", "Hashtag:#ok", "Mention:@bob"}},
	{"repeated punctuation", "wow!!!", []string{"Word:wow", "Punctuation:!!!"}},
	{"contraction", "don't", []string{"Abbreviation:don't"}},
	{"time then word", "10:30am", []string{"Number:10:30", "Word:am"}},
	{"title", "Mr. Smith arrived.", []string{"Abbreviation:Mr.", "Word:Smith", "Word:arrived", "Punctuation:."}},
	{"email", "email me at j.co@gmail.com", []string{"Word:email", "Word:me", "Word:at", "Email:j.co@gmail.com"}},
	{"heart", "I <3 u", []string{"Word:I", "Emoticon:<3", "Word:u"}},
	{"numbers", "3.14 1,000 $5 -2 50%", []string{"Number:3.14", "Number:1,000", "Number:$5", "Number:-2", "Number:50%"}},
	{"entities", "&amp; &#39;", []string{"HTMLEntity:&amp;", "HTMLEntity:&#39;"}},
	{"acronym", "U.S.A. rocks", []string{"Abbreviation:U.S.A.", "Word:rocks"}},
	{"dotted latin", "i.e. this", []string{"Abbreviation:i.e.", "Word:this"}},
	{"hyphenated", "state-of-the-art", []string{"Word:state-of-the-art"}},
	{"url trailing dot", "www.example.com.", []string{"URL:www.example.com", "Punctuation:."}},
	{"url in parens", "(http://example.com)", []string{"Punctuation:(", "URL:http://example.com", "Punctuation:)"}},
	{"arrow", "wait -> go", []string{"Word:wait", "Other:->", "Word:go"}},
	{"east face", "ヽ(´ー｀)ﾉ", []string{"Emoticon:ヽ(´ー｀)ﾉ"}},
	{"basic face", "^_^", []string{"Emoticon:^_^"}},
	{"emoji with modifier", "👍🏽 ok", []string{"Emoticon:👍🏽", "Word:ok"}},
	{"flag", "🇺🇸", []string{"Emoticon:🇺🇸"}},
	{"non-latin words", "привет мир", []string{"Word:привет", "Word:мир"}},
	{"digits inside word", "2day", []string{"Word:2day"}},
	{"iso date", "2020-01-15", []string{"Number:2020-01-15"}},
	{"capitalised title", "Gen. Lee", []string{"Abbreviation:Gen.", "Word:Lee"}},
	{"sentence end", "my gen.", []string{"Word:my", "Word:gen", "Punctuation:."}},
	{"face after currency", "$3xP", []string{"Number:$3", "Emoticon:xP"}},
	{"face after heart", "<3xP_", []string{"Emoticon:<3", "Emoticon:xP", "Word:_"}},
	{"basic face after number", "$0o_o", []string{"Number:$0", "Emoticon:o_o"}},
	{"balanced url brackets", "(see http://en.wikipedia.org/wiki/Go_(game))",
		[]string{"Punctuation:(", "Word:see", "URL:http://en.wikipedia.org/wiki/Go_(game)", "Punctuation:)"}},
}

func TestTokenize(t *testing.T) {
	tok := New(nil, Options{})
	for _, tc := range tokenizeCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := tok.Tokenize(tc.text)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tc.text, err)
			}
			if got := describe(tokens); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tokens, err := Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize(\"\") error: %v", err)
	}
	if tokens != nil {
		t.Errorf("Tokenize(\"\") = %v, want nil", tokens)
	}
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	tokens, err := Tokenize(" \t\n ")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens for whitespace-only input, got %v", tokens)
	}
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	tokens, err := Tokenize("ab\xffcd")
	if tokens != nil {
		t.Errorf("expected no tokens, got %v", tokens)
	}
	var de *DecodingError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodingError, got %v", err)
	}
	if de.Offset != 2 {
		t.Errorf("DecodingError.Offset = %d, want 2", de.Offset)
	}
	if !errors.Is(err, internalerr.ErrInvalidEncoding) {
		t.Error("DecodingError should unwrap to ErrInvalidEncoding")
	}
}

func TestTokenizeBytes(t *testing.T) {
	tok := New(nil, Options{})
	tokens, err := tok.TokenizeBytes([]byte("hi :)"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Word:hi", "Emoticon::)"}
	if got := describe(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeBytes = %v, want %v", got, want)
	}
}

func TestStrings(t *testing.T) {
	got, err := New(nil, Options{}).Strings("lol... ok")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"lol", "...", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Strings = %v, want %v", got, want)
	}
}

func TestOffsetsMatchText(t *testing.T) {
	for _, tc := range tokenizeCases {
		tokens, err := Tokenize(tc.text)
		if err != nil {
			t.Fatal(err)
		}
		prevEnd := 0
		for _, tok := range tokens {
			if tc.text[tok.Start:tok.End] != tok.Text {
				t.Errorf("%q: token %v does not match its span", tc.text, tok)
			}
			if tok.Start < prevEnd {
				t.Errorf("%q: token %v overlaps previous token", tc.text, tok)
			}
			if strings.TrimSpace(tc.text[prevEnd:tok.Start]) != "" {
				t.Errorf("%q: non-whitespace gap before %v", tc.text, tok)
			}
			prevEnd = tok.End
		}
		if utf8.RuneCountInString(tc.text) < len(tokens) {
			t.Errorf("%q: %d tokens for %d runes", tc.text, len(tokens), utf8.RuneCountInString(tc.text))
		}
	}
}

func TestReconstruction(t *testing.T) {
	tok := New(nil, Options{EmitWhitespace: true})
	for _, tc := range tokenizeCases {
		tokens, err := tok.Tokenize(tc.text)
		if err != nil {
			t.Fatal(err)
		}
		var b strings.Builder
		for _, tk := range tokens {
			b.WriteString(tk.Text)
		}
		if b.String() != tc.text {
			t.Errorf("concatenated tokens = %q, want %q", b.String(), tc.text)
		}
	}
}

func TestIdempotentClassification(t *testing.T) {
	for _, tc := range tokenizeCases {
		tokens, err := Tokenize(tc.text)
		if err != nil {
			t.Fatal(err)
		}
		for _, tok := range tokens {
			again, err := Tokenize(tok.Text)
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != 1 || again[0].Text != tok.Text || again[0].Class != tok.Class {
				t.Errorf("re-tokenizing %v gave %v", tok, again)
			}
		}
	}
}

func TestEmitWhitespace(t *testing.T) {
	tokens, err := New(nil, Options{EmitWhitespace: true}).Tokenize("a  b")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Word:a", "Whitespace:  ", "Word:b"}
	if got := describe(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestNormalizeRepeatedPunctuation(t *testing.T) {
	tok := New(nil, Options{NormalizeRepeatedPunctuation: true})
	tests := []struct {
		text     string
		wantText string
		wantNorm string
	}{
		{"no!!!", "!!!", "!"},
		{"what?!?!", "?!?!", "?!"},
		{"wait.....", ".....", "..."},
		{"hmm……", "……", "..."},
		{"ok.", ".", ""},
	}
	for _, tt := range tests {
		tokens, err := tok.Tokenize(tt.text)
		if err != nil {
			t.Fatal(err)
		}
		last := tokens[len(tokens)-1]
		if last.Class != Punctuation || last.Text != tt.wantText || last.Norm != tt.wantNorm {
			t.Errorf("Tokenize(%q) last token = %v norm %q, want %q norm %q",
				tt.text, last, last.Norm, tt.wantText, tt.wantNorm)
		}
	}

	// without the option the run is still one token, with no canonical form
	tokens, _ := Tokenize("no!!!")
	if got := tokens[len(tokens)-1]; got.Text != "!!!" || got.Norm != "" {
		t.Errorf("default options: got %v norm %q", got, got.Norm)
	}
}

func TestSplitContractions(t *testing.T) {
	tok := New(nil, Options{SplitContractions: true})
	tests := []struct {
		text string
		want []string
	}{
		{"don't stop", []string{"Word:do", "Word:n't", "Word:stop"}},
		{"we'll see", []string{"Word:we", "Word:'ll", "Word:see"}},
		{"John's", []string{"Word:John", "Word:'s"}},
		{"didn’t", []string{"Word:did", "Word:n’t"}},
		{"gov't", []string{"Word:gov't"}},
	}
	for _, tt := range tests {
		tokens, err := tok.Tokenize(tt.text)
		if err != nil {
			t.Fatal(err)
		}
		if got := describe(tokens); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
		for _, tk := range tokens {
			if tt.text[tk.Start:tk.End] != tk.Text {
				t.Errorf("%q: split token %v has wrong span", tt.text, tk)
			}
		}
	}
}

func TestLongAdversarialInput(t *testing.T) {
	inputs := []string{
		strings.Repeat("(", 5000),
		strings.Repeat("<", 5000),
		strings.Repeat("^_", 3000),
		strings.Repeat("a.", 3000),
		strings.Repeat("x@", 3000),
	}
	tok := New(nil, Options{EmitWhitespace: true})
	for _, in := range inputs {
		tokens, err := tok.Tokenize(in)
		if err != nil {
			t.Fatal(err)
		}
		var b strings.Builder
		for _, tk := range tokens {
			b.WriteString(tk.Text)
		}
		if b.String() != in {
			t.Errorf("reconstruction failed for input starting %q", in[:10])
		}
	}
}

// fastestScan returns the quickest of three runs over text.
func fastestScan(t *testing.T, tok *Tokenizer, text string) time.Duration {
	t.Helper()
	best := time.Duration(math.MaxInt64)
	for i := 0; i < 3; i++ {
		start := time.Now()
		if _, err := tok.Tokenize(text); err != nil {
			t.Fatal(err)
		}
		best = min(best, time.Since(start))
	}
	return best
}

func TestScanTimeIsLinear(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}
	inputs := []struct {
		name   string
		prefix string
		unit   string
	}{
		{"dotted words", "", "ab."},
		{"brackets after url", "http://a", ")"},
		{"hyphenated digits", "", "1-"},
		{"dotted letters", "", "a."},
		{"plain words", "", "ab "},
	}
	tok := New(nil, Options{})
	for _, in := range inputs {
		small := fastestScan(t, tok, in.prefix+strings.Repeat(in.unit, 4000))
		large := fastestScan(t, tok, in.prefix+strings.Repeat(in.unit, 32000))
		// eight times the input: about 8x the time if linear, 64x if quadratic
		if large > 24*small && large > 50*time.Millisecond {
			t.Errorf("%s: %v for 4000 units but %v for 32000", in.name, small, large)
		}
	}
}

func TestLongDottedRun(t *testing.T) {
	// one pair too many: the leading letter falls out and the rest fits
	in := strings.Repeat("a.", maxAcronymPairs+1)
	tokens, err := Tokenize(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Word:a", "Punctuation:.", "Abbreviation:" + in[2:]}
	if got := describe(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize(%q) = %v, want %v", in, got, want)
	}

	in = strings.Repeat("a.", maxAcronymPairs)
	tokens, err = Tokenize(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Class != Abbreviation {
		t.Errorf("Tokenize(%q) = %v, want one Abbreviation", in, tokens)
	}
}

func TestHyphenatedDigits(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"10-year-old", []string{"Word:10-year-old"}},
		{"90's", []string{"Word:90's"}},
		{"10-20", []string{"Number:10", "Punctuation:-", "Number:20"}},
		{"1-1-a", []string{"Number:1", "Punctuation:-", "Word:1-a"}},
	}
	for _, tt := range tests {
		tokens, err := Tokenize(tt.text)
		if err != nil {
			t.Fatal(err)
		}
		if got := describe(tokens); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassText(t *testing.T) {
	for _, c := range Classes() {
		got, err := ParseClass(c.String())
		if err != nil || got != c {
			t.Errorf("ParseClass(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseClass("Nope"); err == nil {
		t.Error("expected error for unknown class name")
	}
	if got := Class(99).String(); got != "Class(99)" {
		t.Errorf("Class(99).String() = %q", got)
	}
}

func TestTokenJSON(t *testing.T) {
	b, err := json.Marshal(Token{Text: "see", Start: 3, End: 6, Class: Word})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"text":"see","start":3,"end":6,"class":"Word"}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}

	var tok Token
	if err := json.Unmarshal([]byte(`{"text":"#ok","start":0,"end":3,"class":"Hashtag"}`), &tok); err != nil {
		t.Fatal(err)
	}
	if tok.Class != Hashtag {
		t.Errorf("decoded class = %v, want Hashtag", tok.Class)
	}
}

func TestTokenString(t *testing.T) {
	got := Token{Text: "see", Start: 3, End: 6, Class: Word}.String()
	if got != `Word("see")[3:6]` {
		t.Errorf("String() = %s", got)
	}
}

func FuzzTokenize(f *testing.F) {
	for _, tc := range tokenizeCases {
		f.Add(tc.text)
	}
	f.Add("ab\xffcd")
	tok := New(nil, Options{EmitWhitespace: true})
	f.Fuzz(func(t *testing.T, text string) {
		tokens, err := tok.Tokenize(text)
		if !utf8.ValidString(text) {
			if err == nil {
				t.Fatalf("expected error for invalid UTF-8 %q", text)
			}
			return
		}
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", text, err)
		}
		var b strings.Builder
		pos := 0
		for _, tk := range tokens {
			if tk.Start != pos || tk.End <= tk.Start {
				t.Fatalf("token %v does not continue at %d", tk, pos)
			}
			b.WriteString(tk.Text)
			pos = tk.End
		}
		if b.String() != text {
			t.Fatalf("reconstruction %q != %q", b.String(), text)
		}
		for _, tk := range tokens {
			again, err := tok.Tokenize(tk.Text)
			if err != nil {
				t.Fatal(err)
			}
			if len(again) != 1 || again[0].Class != tk.Class {
				t.Fatalf("token %v of %q re-tokenizes as %v", tk, text, again)
			}
		}
	})
}
