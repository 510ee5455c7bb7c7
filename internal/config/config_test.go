package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"provider: groq\ngoogle_api_key: from-file\ngroq_api_key: file-groq\n",
	), 0o600))

	t.Setenv(EnvGoogleAPIKey, "from-env")
	t.Setenv(EnvGroqAPIKey, "")
	t.Setenv(EnvProvider, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, "from-env", cfg.GoogleAPIKey, "env must override the file")
	assert.Equal(t, "file-groq", cfg.GroqAPIKey, "empty env must not override")

	t.Setenv(EnvProvider, "gemini")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestActiveKey(t *testing.T) {
	cfg := &Config{GoogleAPIKey: " g-key ", GroqAPIKey: "deprecated"}

	assert.Equal(t, "g-key", cfg.ActiveKey("gemini"))
	assert.Equal(t, "g-key", cfg.ActiveKey(""), "unknown providers resolve to the Google key")
	assert.Equal(t, "", cfg.ActiveKey("groq"), "placeholder key counts as unset")

	cfg.GroqAPIKey = "real"
	assert.Equal(t, "real", cfg.ActiveKey("GROQ"))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Config{Provider: "groq", GroqAPIKey: "k"}
	require.NoError(t, in.Save(path))

	t.Setenv(EnvGoogleAPIKey, "")
	t.Setenv(EnvGroqAPIKey, "")
	t.Setenv(EnvProvider, "")

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in.Provider, out.Provider)
	assert.Equal(t, in.GroqAPIKey, out.GroqAPIKey)
}
