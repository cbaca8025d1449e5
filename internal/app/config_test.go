package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Window.Scale)
	assert.Equal(t, "Z", cfg.Input.Player1.A)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := DefaultConfig()
	cfg.Window.Scale = 4
	cfg.Input.Player1.A = "Space"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Window.Scale)
	assert.Equal(t, "Space", loaded.Input.Player1.A)
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestBindingsSkipUnknownKeys(t *testing.T) {
	m := KeyMapping{A: "Z", B: "NotAKey", Up: "Up"}
	bs := bindings(m)
	assert.Len(t, bs, 2)
}
