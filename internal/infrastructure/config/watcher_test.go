package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_WatchReloadsExternalEdits(t *testing.T) {
	m := newTestManager(t, "[autosave]\nenabled = true\ndelay_ms = 250\n")
	require.NoError(t, m.Load())
	require.NoError(t, m.Watch())
	require.NoError(t, m.Watch(), "second Watch is a no-op")

	changes := make(chan *Config, 16)
	m.OnConfigChange(func(cfg *Config) {
		select {
		case changes <- cfg:
		default:
		}
	})

	require.NoError(t, os.WriteFile(m.GetConfigFile(), []byte("[autosave]\nenabled = true\ndelay_ms = 750\n"), filePerm))

	// A write can surface as several events; wait for the final content.
	deadline := time.After(5 * time.Second)
	for seen := false; !seen; {
		select {
		case cfg := <-changes:
			seen = cfg.Autosave.DelayMs == 750
		case <-deadline:
			t.Fatal("config change not reported")
		}
	}
	assert.Equal(t, 750, m.Get().Autosave.DelayMs)
}
