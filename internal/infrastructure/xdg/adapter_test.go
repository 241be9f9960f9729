package xdg

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Dirs(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	adapter := New()

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{name: "config", fn: adapter.ConfigDir, want: filepath.Join(root, "config", "tiledash")},
		{name: "data", fn: adapter.DataDir, want: filepath.Join(root, "data", "tiledash")},
		{name: "state", fn: adapter.StateDir, want: filepath.Join(root, "state", "tiledash")},
		{name: "cache", fn: adapter.CacheDir, want: filepath.Join(root, "cache", "tiledash")},
		{name: "logs", fn: adapter.LogDir, want: filepath.Join(root, "state", "tiledash", "logs")},
		{name: "apps", fn: adapter.AppsDir, want: filepath.Join(root, "data", "tiledash", "apps")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := tt.fn()
			require.NoError(t, err)
			assert.Equal(t, tt.want, dir)
		})
	}
}

func TestAdapter_DevMode(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Chdir(t.TempDir())

	dir, err := New().DataDir()

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, filepath.Join(".dev", "tiledash")), dir)
}
