package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognicore/twokenize/pkg/twokenize"
	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "twokenize.yaml", `emit_whitespace_tokens: true
normalize_repeated_punctuation: true
split_contractions: false
lexicon: lexicon.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.EmitWhitespaceTokens)
	require.True(t, cfg.NormalizeRepeatedPunctuation)
	require.False(t, cfg.SplitContractions)
	require.Equal(t, filepath.Join(dir, "lexicon.yaml"), cfg.Lexicon)

	require.Equal(t, twokenize.Options{EmitWhitespace: true, NormalizeRepeatedPunctuation: true}, cfg.Options())
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, twokenize.Options{}, cfg.Options())
	require.Empty(t, cfg.Lexicon)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "emit_whitespace: true\n")

	_, err := Load(path)
	require.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestLoadConfigAbsoluteLexicon(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "lex.yaml")
	path := writeFile(t, dir, "cfg.yaml", "lexicon: "+abs+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, abs, cfg.Lexicon)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
