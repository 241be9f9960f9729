package layout

import "maps"

// Config is the persisted snapshot of a node. It is a flat structure
// discriminated by Type; each node type only fills its own keys.
type Config struct {
	Type Type `json:"type" yaml:"type" toml:"type" jsonschema:"enum=window,enum=hsplit,enum=vsplit,enum=stack,enum=grid,enum=dashboard,enum=dashboardList"`

	Title         string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	CloseDisabled *bool  `json:"closeDisabled,omitempty" yaml:"closeDisabled,omitempty" toml:"closeDisabled,omitempty"`

	// Dashboard
	Component *Config `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`

	// DashboardList, Stack, Grid
	ActiveIndex *int     `json:"activeIndex,omitempty" yaml:"activeIndex,omitempty" toml:"activeIndex,omitempty"`
	Dashboards  []Config `json:"dashboards,omitempty" yaml:"dashboards,omitempty" toml:"dashboards,omitempty"`

	// Window
	Path          string            `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Params        map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Query         map[string]string `json:"query,omitempty" yaml:"query,omitempty" toml:"query,omitempty"`
	Name          string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	ContentHidden bool              `json:"contentHidden,omitempty" yaml:"contentHidden,omitempty" toml:"contentHidden,omitempty"`
	Settings      *WindowSettings   `json:"settings,omitempty" yaml:"settings,omitempty" toml:"settings,omitempty"`

	// HSplit
	Offset       *float64 `json:"offset,omitempty" yaml:"offset,omitempty" toml:"offset,omitempty"`
	Left         *Pane    `json:"left,omitempty" yaml:"left,omitempty" toml:"left,omitempty"`
	Right        *Pane    `json:"right,omitempty" yaml:"right,omitempty" toml:"right,omitempty"`
	LeftWidth    *int     `json:"leftWidth,omitempty" yaml:"leftWidth,omitempty" toml:"leftWidth,omitempty"`
	MinItemWidth *int     `json:"minItemWidth,omitempty" yaml:"minItemWidth,omitempty" toml:"minItemWidth,omitempty"`

	// VSplit
	Top           *Pane `json:"top,omitempty" yaml:"top,omitempty" toml:"top,omitempty"`
	Bottom        *Pane `json:"bottom,omitempty" yaml:"bottom,omitempty" toml:"bottom,omitempty"`
	TopHeight     *int  `json:"topHeight,omitempty" yaml:"topHeight,omitempty" toml:"topHeight,omitempty"`
	MinItemHeight *int  `json:"minItemHeight,omitempty" yaml:"minItemHeight,omitempty" toml:"minItemHeight,omitempty"`

	// Stack, Grid
	Windows []Config `json:"windows,omitempty" yaml:"windows,omitempty" toml:"windows,omitempty"`

	// Grid
	CellSize             *int `json:"cellSize,omitempty" yaml:"cellSize,omitempty" toml:"cellSize,omitempty"`
	CellMargin           *int `json:"cellMargin,omitempty" yaml:"cellMargin,omitempty" toml:"cellMargin,omitempty"`
	DefaultWindowColSpan *int `json:"defaultWindowColSpan,omitempty" yaml:"defaultWindowColSpan,omitempty" toml:"defaultWindowColSpan,omitempty"`
	DefaultWindowRowSpan *int `json:"defaultWindowRowSpan,omitempty" yaml:"defaultWindowRowSpan,omitempty" toml:"defaultWindowRowSpan,omitempty"`
	MaximizedIndex       *int `json:"maximizedIndex,omitempty" yaml:"maximizedIndex,omitempty" toml:"maximizedIndex,omitempty"`
}

// Pane wraps the component held by one side of a split.
type Pane struct {
	Component *Config `json:"component,omitempty" yaml:"component,omitempty" toml:"component,omitempty"`
}

// CountWindows returns the number of window configs below c.
func (c *Config) CountWindows() int {
	if c == nil {
		return 0
	}
	if c.Type == TypeWindow {
		return 1
	}
	count := 0
	for i := range c.Windows {
		count += c.Windows[i].CountWindows()
	}
	for i := range c.Dashboards {
		count += c.Dashboards[i].CountWindows()
	}
	count += c.Component.CountWindows()
	for _, p := range []*Pane{c.Left, c.Right, c.Top, c.Bottom} {
		if p != nil {
			count += p.Component.CountWindows()
		}
	}
	return count
}

// Clone returns a deep copy of c. Nothing in the copy aliases c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.CloseDisabled = clonePtr(c.CloseDisabled)
	out.Component = c.Component.Clone()
	out.ActiveIndex = clonePtr(c.ActiveIndex)
	out.Dashboards = cloneConfigs(c.Dashboards)
	out.Params = maps.Clone(c.Params)
	out.Query = maps.Clone(c.Query)
	if c.Settings != nil {
		settings := c.Settings.Clone()
		out.Settings = &settings
	}
	out.Offset = clonePtr(c.Offset)
	out.Left, out.Right = c.Left.clone(), c.Right.clone()
	out.Top, out.Bottom = c.Top.clone(), c.Bottom.clone()
	out.LeftWidth = clonePtr(c.LeftWidth)
	out.MinItemWidth = clonePtr(c.MinItemWidth)
	out.TopHeight = clonePtr(c.TopHeight)
	out.MinItemHeight = clonePtr(c.MinItemHeight)
	out.Windows = cloneConfigs(c.Windows)
	out.CellSize = clonePtr(c.CellSize)
	out.CellMargin = clonePtr(c.CellMargin)
	out.DefaultWindowColSpan = clonePtr(c.DefaultWindowColSpan)
	out.DefaultWindowRowSpan = clonePtr(c.DefaultWindowRowSpan)
	out.MaximizedIndex = clonePtr(c.MaximizedIndex)
	return &out
}

func (p *Pane) clone() *Pane {
	if p == nil {
		return nil
	}
	return &Pane{Component: p.Component.Clone()}
}

func cloneConfigs(in []Config) []Config {
	if in == nil {
		return nil
	}
	out := make([]Config, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func copyStrings(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
