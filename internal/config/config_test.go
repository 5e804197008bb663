package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
runtime: example.com/uctest/churi
dir: ./src
patterns: [./deser, ./ser]
tags: [integration]
dist: lib/uclib.go
tempDir: .cache
backend:
  command: [go, run, ./cmd/ucc]
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "example.com/uctest/churi", cfg.Runtime)
	assert.Equal(t, []string{"./deser", "./ser"}, cfg.Patterns)
	assert.Equal(t, []string{"integration"}, cfg.Tags)
	assert.Equal(t, "lib/uclib.go", cfg.Dist)
	assert.Equal(t, filepath.Join("src", "lib", "uclib.go"), cfg.DistPath())
	assert.Equal(t, filepath.Join("src", ".cache"), cfg.TempPath())
	assert.Equal(t, []string{"go", "run", "./cmd/ucc"}, cfg.Backend.Command)
	require.NoError(t, cfg.Validate())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Equal(t, DefaultRuntime, cfg.Runtime)
	assert.Equal(t, DefaultDist, cfg.Dist)
	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, []string{"./..."}, cfg.Patterns)
	assert.Empty(t, cfg.TempPath())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("runtime: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Version = "2"
	cfg.Dist = "uclib"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "unsupported version")
	assert.Contains(t, err.Error(), "must be a .go file")
}

func TestLoadFile_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dir: module\noutDir: /abs/out\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "module"), cfg.Dir)
	assert.Equal(t, "/abs/out", cfg.OutDir)
	assert.Equal(t, filepath.Join(dir, "module", DefaultDist), cfg.DistPath())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
