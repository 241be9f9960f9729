package codec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/infrastructure/codec"
)

const workspaceTOML = `
type = "dashboardList"
activeIndex = 0

[[dashboards]]
  type = "dashboard"
  title = "Ops"

  [dashboards.component]
    type = "hsplit"
    offset = 0.25

    [dashboards.component.left.component]
      type = "stack"

      [[dashboards.component.left.component.windows]]
        type = "window"
        path = "/apps/clock"
        [dashboards.component.left.component.windows.query]
          tz = "UTC"

    [dashboards.component.right.component]
      type = "grid"
      cellSize = 40

      [[dashboards.component.right.component.windows]]
        type = "window"
        path = "/apps/notes"
`

const workspaceYAML = `
type: dashboardList
activeIndex: 0
dashboards:
  - type: dashboard
    title: Ops
    component:
      type: hsplit
      offset: 0.25
      left:
        component:
          type: stack
          windows:
            - type: window
              path: /apps/clock
              query: {tz: UTC}
      right:
        component:
          type: grid
          cellSize: 40
          windows:
            - type: window
              path: /apps/notes
`

func assertOpsWorkspace(t *testing.T, cfg layout.Config) {
	t.Helper()
	root, err := layout.Build(cfg, nil)
	require.NoError(t, err)
	list, ok := root.(*layout.DashboardList)
	require.True(t, ok)
	d := list.ActiveDashboard()
	require.NotNil(t, d)
	assert.Equal(t, "Ops", d.Title())

	sp, ok := d.Component().(*layout.Split)
	require.True(t, ok)
	assert.InDelta(t, 0.25, sp.Offset(), 1e-9)
	g, ok := sp.Right().(*layout.Grid)
	require.True(t, ok)
	assert.Equal(t, 40, g.CellSize())

	wins := d.Windows()
	require.Len(t, wins, 2)
	assert.Equal(t, map[string]string{"tz": "UTC"}, wins[0].Query())
	assert.Equal(t, "/apps/notes", wins[1].Path())
}

func TestTOML_DecodesNestedTables(t *testing.T) {
	cfg, err := codec.TOML{}.Decode(strings.NewReader(workspaceTOML))
	require.NoError(t, err)
	assertOpsWorkspace(t, cfg)
}

func TestYAML_DecodesBlockMappings(t *testing.T) {
	cfg, err := codec.YAML{}.Decode(strings.NewReader(workspaceYAML))
	require.NoError(t, err)
	assertOpsWorkspace(t, cfg)
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := codec.TOML{}.Decode(strings.NewReader("type = \"stack\"\ncolour = \"red\"\n"))
	assert.ErrorContains(t, err, "colour")

	_, err = codec.YAML{}.Decode(strings.NewReader("type: stack\ncolour: red\n"))
	assert.Error(t, err)

	_, err = codec.JSON{}.Decode(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestCodecs_PreserveLayoutAcrossFormats(t *testing.T) {
	source, err := codec.YAML{}.Decode(strings.NewReader(workspaceYAML))
	require.NoError(t, err)

	for _, c := range codec.All() {
		t.Run(c.Format(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, source))

			got, err := c.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, source, got)
		})
	}
}

func TestJSON_EncodesIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, codec.JSON{}.Encode(&buf, layout.Config{Type: layout.TypeStack}))

	assert.Equal(t, "{\n  \"type\": \"stack\"\n}\n", buf.String())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "toml", codec.FormatFromPath("ops.TOML"))
	assert.Equal(t, "yaml", codec.FormatFromPath("/tmp/ops.yml"))
	assert.Equal(t, "json", codec.FormatFromPath("ops"))
}
