package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/twokenize/internal/input"
	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/config"
	"github.com/cognicore/twokenize/pkg/twokenize/corpus"
	"github.com/cognicore/twokenize/pkg/twokenize/store"
	"github.com/cognicore/twokenize/pkg/twokenize/store/memstore"
	"github.com/cognicore/twokenize/pkg/twokenize/store/sqlite"
)

type cliOptions struct {
	configPath  string
	lexiconPath string
	inPath      string
	html        bool
	format      string
	whitespace  bool
	normalize   bool
	split       bool
	dbPath      string
	stats       bool
	topK        int
	workers     int
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Config file (YAML, optional)")
	flag.StringVar(&opts.lexiconPath, "lexicon", "", "Lexicon file (YAML, overrides the config entry)")
	flag.StringVar(&opts.inPath, "in", "", "Input JSONL file (default: one document per stdin line)")
	flag.BoolVar(&opts.html, "html", false, "Strip HTML markup before tokenizing")
	flag.StringVar(&opts.format, "format", "text", "Output format: text, tsv or json")
	flag.BoolVar(&opts.whitespace, "ws", false, "Emit whitespace tokens")
	flag.BoolVar(&opts.normalize, "norm", false, "Report canonical forms of punctuation runs")
	flag.BoolVar(&opts.split, "split", false, "Split contractions (don't -> do n't)")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite database to store documents in (optional)")
	flag.BoolVar(&opts.stats, "stats", false, "Print class counts and top tokens after processing")
	flag.IntVar(&opts.topK, "top", 5, "Top tokens per class for -stats")
	flag.IntVar(&opts.workers, "workers", 0, "Tokenizer workers (default: GOMAXPROCS)")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts cliOptions, stdin io.Reader, stdout io.Writer) error {
	switch opts.format {
	case "text", "tsv", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, tsv or json)", opts.format)
	}

	c, err := buildCorpus(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	var items []corpus.Item
	if opts.inPath != "" {
		items, err = input.LoadFromJSONL(opts.inPath)
		if err != nil {
			return fmt.Errorf("load documents: %w", err)
		}
		log.Printf("Loaded %d documents from %s", len(items), opts.inPath)
	} else {
		items, err = input.ReadLines(stdin)
		if err != nil {
			return err
		}
	}
	if opts.html {
		for i := range items {
			items[i].Text = input.StripHTML(items[i].Text)
		}
	}

	docs, err := c.IngestBatch(ctx, items)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if opts.dbPath != "" {
		log.Printf("Stored %d documents in %s", len(docs), opts.dbPath)
	}

	if err := writeDocs(stdout, opts.format, docs); err != nil {
		return err
	}

	if opts.stats {
		st, err := c.Stats(ctx, opts.topK)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		writeStats(stdout, st)
	}
	return nil
}

// buildCorpus loads configuration, applies flag overrides and opens the store.
func buildCorpus(ctx context.Context, opts cliOptions) (*corpus.Corpus, error) {
	loader := config.Loader{ConfigPath: opts.configPath, LexiconPath: opts.lexiconPath}
	comp, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	tokOpts := comp.Options
	tokOpts.EmitWhitespace = tokOpts.EmitWhitespace || opts.whitespace
	tokOpts.NormalizeRepeatedPunctuation = tokOpts.NormalizeRepeatedPunctuation || opts.normalize
	tokOpts.SplitContractions = tokOpts.SplitContractions || opts.split

	var st store.Store = memstore.New()
	if opts.dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, opts.dbPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
	}

	return corpus.New(corpus.Options{
		Store:     st,
		Tokenizer: twokenize.New(comp.Catalog, tokOpts),
		Workers:   opts.workers,
	}), nil
}

var tsvEscaper = strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")

type jsonDoc struct {
	ID     string            `json:"id"`
	Source string            `json:"source,omitempty"`
	Tokens []twokenize.Token `json:"tokens"`
}

func writeDocs(w io.Writer, format string, docs []store.Doc) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, d := range docs {
			tokens := d.Tokens
			if tokens == nil {
				tokens = []twokenize.Token{}
			}
			if err := enc.Encode(jsonDoc{ID: d.ID, Source: d.Source, Tokens: tokens}); err != nil {
				return err
			}
		}
	case "tsv":
		for _, d := range docs {
			for _, t := range d.Tokens {
				if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", tsvEscaper.Replace(d.Source), t.Start, t.End, t.Class, tsvEscaper.Replace(t.Text)); err != nil {
					return err
				}
			}
		}
	default:
		for _, d := range docs {
			texts := make([]string, len(d.Tokens))
			for i, t := range d.Tokens {
				texts[i] = t.Text
			}
			if _, err := fmt.Fprintln(w, strings.Join(texts, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeStats(w io.Writer, st corpus.Stats) {
	fmt.Fprintf(w, "\n=== %d tokens ===\n", st.Tokens)
	for _, cls := range st.Classes() {
		fmt.Fprintf(w, "%-13s %d\n", cls, st.Counts[cls])
		for _, tc := range st.Top[cls] {
			fmt.Fprintf(w, "    %-24s %d\n", tc.Text, tc.Count)
		}
	}
}
