package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4, cfg.Search.Depth)
	assert.Equal(t, 4, cfg.Search.NullMoveReduction)
	assert.Equal(t, 319, cfg.Search.NullMoveMaterialThreshold)
	assert.Equal(t, 0, cfg.Search.QuiescenceSEEFloor)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	body := "[Search]\nDepth = 6\nQuiescenceSEEFloor = -50\n"
	assert.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 6, cfg.Search.Depth)
	assert.Equal(t, -50, cfg.Search.QuiescenceSEEFloor)
	// Fields absent from the file keep their compiled-in default.
	assert.Equal(t, Default().Search.NullMoveReduction, cfg.Search.NullMoveReduction)
	assert.Equal(t, Default().Search.NullMoveMaterialThreshold, cfg.Search.NullMoveMaterialThreshold)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	assert.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
