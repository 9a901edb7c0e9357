package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "linearch", "archive.db"), cfg.StorePath)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 200, cfg.SampleWindow)
	assert.Empty(t, cfg.OpenAIAPIKey)
}

func TestLoad_FileOverridesAndEnvFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	dir := filepath.Join(home, ".config", "linearch")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := "store_path = \"~/data/sessions.db\"\nmodel = \"gpt-4o\"\nsample_window = 50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "data", "sessions.db"), cfg.StorePath)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 50, cfg.SampleWindow)
	assert.Equal(t, "sk-env", cfg.OpenAIAPIKey)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", "x.db"), expandHome("~/x.db", "/home/u"))
	assert.Equal(t, "/abs/x.db", expandHome("/abs/x.db", "/home/u"))
	assert.Equal(t, "~", expandHome("~", "/home/u"))
}
