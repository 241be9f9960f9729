package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRotator_RollsOverToBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tiledash.log")
	r, err := NewFileRotator(path, 1, 2)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	r.maxSize = 10

	for _, line := range []string{"first\n", "second\n", "third\n", "fourth\n"} {
		_, err := r.Write([]byte(line))
		require.NoError(t, err)
	}

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fourth\n", string(current))

	b1, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "third\n", string(b1))

	b2, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(b2))

	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestFileRotator_TruncatesWithoutBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiledash.log")
	r, err := NewFileRotator(path, 1, 0)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	r.maxSize = 8

	_, err = r.Write([]byte("aaaaaa\n"))
	require.NoError(t, err)
	_, err = r.Write([]byte("bbbbbb\n"))
	require.NoError(t, err)

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bbbbbb\n", string(current))
}

func TestNew_WritesToConfiguredOutput(t *testing.T) {
	var sb strings.Builder
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &sb

	logger := New(cfg)
	logger.Info().Str("workspace", "default").Msg("loaded")
	logger.Debug().Msg("hidden")

	assert.Contains(t, sb.String(), `"workspace":"default"`)
	assert.NotContains(t, sb.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel(" DEBUG ")
	assert.True(t, ok)
	assert.Equal(t, "debug", level.String())

	_, ok = ParseLevel("verbose")
	assert.False(t, ok)
}
