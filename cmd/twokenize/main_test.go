package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/twokenize/pkg/twokenize/store/sqlite"
)

func TestRunTextFormat(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(":) see http://example.com/foo?q=1 #ok @bob\nwow!!!\n")

	if err := run(context.Background(), cliOptions{format: "text"}, in, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := ":) see http://example.com/foo?q=1 #ok @bob\nwow !!!\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunTSVFormat(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("hi :)\n")

	if err := run(context.Background(), cliOptions{format: "tsv"}, in, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "line 1\t0\t2\tWord\thi\nline 1\t3\t5\tEmoticon\t:)\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunJSONWithOptions(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("don't!!\n")
	opts := cliOptions{format: "json", split: true, normalize: true}

	if err := run(context.Background(), opts, in, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var doc struct {
		Source string `json:"source"`
		Tokens []struct {
			Text  string `json:"text"`
			Class string `json:"class"`
			Norm  string `json:"norm"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(doc.Tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %+v", doc.Tokens)
	}
	if doc.Tokens[0].Text != "do" || doc.Tokens[1].Text != "n't" {
		t.Errorf("contraction not split: %+v", doc.Tokens)
	}
	if doc.Tokens[2].Class != "Punctuation" || doc.Tokens[2].Norm != "!" {
		t.Errorf("punctuation token = %+v", doc.Tokens[2])
	}
}

func TestRunHTMLFromJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.jsonl")
	if err := os.WriteFile(path, []byte(`{"source":"p1","text":"<p>I &lt;3 <b>Go</b></p>"}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts := cliOptions{format: "text", inPath: path, html: true}
	if err := run(context.Background(), opts, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "I <3 Go\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunStoresAndReportsStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "corpus.db")

	var out bytes.Buffer
	opts := cliOptions{format: "text", dbPath: dbPath, stats: true, topK: 2}
	in := strings.NewReader("#go #go\n#go rocks\n")
	if err := run(context.Background(), opts, in, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "=== 4 tokens ===") {
		t.Errorf("stats missing from output: %q", out.String())
	}
	if !strings.Contains(out.String(), "#go") {
		t.Errorf("top tokens missing from output: %q", out.String())
	}

	st, err := sqlite.OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	docs, err := st.ListDocs(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 stored docs, got %d", len(docs))
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lexicon.yaml"), []byte("tlds: [zz]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "twokenize.yaml")
	if err := os.WriteFile(cfg, []byte("emit_whitespace_tokens: true\nlexicon: lexicon.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts := cliOptions{format: "tsv", configPath: cfg}
	if err := run(context.Background(), opts, strings.NewReader("go foo.zz\n"), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "line 1\t0\t2\tWord\tgo\nline 1\t2\t3\tWhitespace\t \nline 1\t3\t9\tURL\tfoo.zz\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunBadFormat(t *testing.T) {
	err := run(context.Background(), cliOptions{format: "xml"}, strings.NewReader(""), &bytes.Buffer{})
	if err == nil {
		t.Error("expected error for unknown format")
	}
}
