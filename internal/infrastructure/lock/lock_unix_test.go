//go:build linux || darwin

package lock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.lock")

	first, err := Acquire(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), Holder(path))

	// flock locks belong to the open file description, so a second open
	// in the same process conflicts too.
	_, err = Acquire(path)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	second, err := Acquire(path)
	require.NoError(t, err)
	assert.NoError(t, second.Release())
}

func TestHolder_MissingFile(t *testing.T) {
	assert.Zero(t, Holder(filepath.Join(t.TempDir(), "none")))
}
