package config

import (
	"fmt"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/lexicon"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	ConfigPath  string
	LexiconPath string // overrides the config file's lexicon entry
}

// Components holds all loaded configuration components
type Components struct {
	Lexicon   *lexicon.Lexicon
	Catalog   *twokenize.Catalog
	Tokenizer *twokenize.Tokenizer
	Options   twokenize.Options
}

// Load reads all configuration files and returns initialized components.
// Empty paths mean built-in defaults.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	lexPath := l.LexiconPath
	if l.ConfigPath != "" {
		cfg, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		comp.Options = cfg.Options()
		if lexPath == "" {
			lexPath = cfg.Lexicon
		}
	}

	if lexPath != "" {
		lex, err := lexicon.LoadFromYAML(lexPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.Default()
	}

	comp.Catalog = twokenize.NewCatalog(comp.Lexicon)
	comp.Tokenizer = twokenize.New(comp.Catalog, comp.Options)
	return comp, nil
}
