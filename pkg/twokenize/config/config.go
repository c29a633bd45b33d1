package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
)

// Config represents the tokenizer configuration file
type Config struct {
	EmitWhitespaceTokens         bool   `yaml:"emit_whitespace_tokens"`
	NormalizeRepeatedPunctuation bool   `yaml:"normalize_repeated_punctuation"`
	SplitContractions            bool   `yaml:"split_contractions"`
	Lexicon                      string `yaml:"lexicon"`
}

// Load loads a configuration from a YAML file. Unknown keys are rejected.
// A relative lexicon path is resolved against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	if cfg.Lexicon != "" && !filepath.IsAbs(cfg.Lexicon) {
		cfg.Lexicon = filepath.Join(filepath.Dir(path), cfg.Lexicon)
	}
	return &cfg, nil
}

// Options converts the file settings to tokenizer options.
func (c *Config) Options() twokenize.Options {
	return twokenize.Options{
		EmitWhitespace:               c.EmitWhitespaceTokens,
		NormalizeRepeatedPunctuation: c.NormalizeRepeatedPunctuation,
		SplitContractions:            c.SplitContractions,
	}
}
