package apphost_test

import (
	"testing"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/infrastructure/apphost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddAppCycles(t *testing.T) {
	c := apphost.NewCatalog(map[string]string{"notes": "/n.js", "Clock": "/c.js"})
	add := c.AddApp()

	var paths []string
	for range 3 {
		req, ok := add()
		require.True(t, ok)
		paths = append(paths, req.Path)
	}

	assert.Equal(t, []string{"/apps/clock", "/apps/notes", "/apps/clock"}, paths)
}

func TestCatalog_WelcomeWhenEmpty(t *testing.T) {
	c := apphost.NewCatalog(nil)

	req, ok := c.AddApp()()

	require.True(t, ok)
	assert.Equal(t, apphost.WelcomePath, req.Path)
	_, found := c.Lookup("welcome")
	assert.True(t, found)
}

func TestCatalog_FillsDefaultDashboard(t *testing.T) {
	c := apphost.NewCatalog(map[string]string{"clock": "/c.js"})
	l := layout.NewDashboardList()
	l.SetAddApp(c.AddApp())

	d, err := l.NewDashboard("one")
	require.NoError(t, err)
	l.Remove(d)

	require.Equal(t, 1, l.DashboardCount())
	require.Len(t, l.ActiveDashboard().Windows(), 1)
	assert.Equal(t, "/apps/clock", l.ActiveDashboard().Windows()[0].Path())
}
