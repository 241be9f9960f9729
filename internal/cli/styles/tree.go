package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// LayoutRenderer renders stored layouts for `tiledash show`.
type LayoutRenderer struct {
	theme *Theme
}

func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// RenderTree draws cfg as a tree rooted at the workspace name.
func (r *LayoutRenderer) RenderTree(workspace string, cfg layout.Config) string {
	root := tree.Root(fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconDatabase), r.theme.Title.Render(workspace))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(r.theme.Subtle)
	root.Child(r.node(cfg, false))
	return root.String()
}

func (r *LayoutRenderer) node(cfg layout.Config, active bool) any {
	label := r.RenderActiveMarker(r.label(cfg), active)
	isActive := func(i int) bool { return cfg.ActiveIndex != nil && *cfg.ActiveIndex == i }
	var children []any
	switch cfg.Type {
	case layout.TypeDashboardList:
		for i, d := range cfg.Dashboards {
			children = append(children, r.node(d, isActive(i)))
		}
	case layout.TypeDashboard:
		if cfg.Component != nil {
			children = append(children, r.node(*cfg.Component, false))
		}
	case layout.TypeHSplit, layout.TypeVSplit:
		for _, p := range []*layout.Pane{cfg.Left, cfg.Right, cfg.Top, cfg.Bottom} {
			if p != nil && p.Component != nil {
				children = append(children, r.node(*p.Component, false))
			}
		}
	default:
		for i, w := range cfg.Windows {
			children = append(children, r.node(w, isActive(i)))
		}
	}
	if len(children) == 0 {
		return label
	}
	return tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(r.theme.Subtle).
		Child(children...)
}

func (r *LayoutRenderer) label(cfg layout.Config) string {
	switch cfg.Type {
	case layout.TypeDashboardList:
		return r.theme.Subtitle.Render(fmt.Sprintf("dashboards (%d)", len(cfg.Dashboards)))
	case layout.TypeDashboard:
		title := cfg.Title
		if title == "" {
			title = layout.DefaultDashboardTitle
		}
		return fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconDashboard), r.theme.Title.Render(title))
	case layout.TypeHSplit, layout.TypeVSplit:
		detail := ""
		switch {
		case cfg.LeftWidth != nil:
			detail = fmt.Sprintf("left=%d", *cfg.LeftWidth)
		case cfg.TopHeight != nil:
			detail = fmt.Sprintf("top=%d", *cfg.TopHeight)
		case cfg.Offset != nil:
			detail = fmt.Sprintf("offset=%.2f", *cfg.Offset)
		}
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", r.theme.Normal.Render(IconSplit), string(cfg.Type), r.theme.Subtle.Render(detail)))
	case layout.TypeGrid:
		out := fmt.Sprintf("%s grid %s", r.theme.Normal.Render(IconGrid), r.theme.BadgeMuted.Render(fmt.Sprintf("%d windows", len(cfg.Windows))))
		if cfg.MaximizedIndex != nil {
			out += " " + r.theme.Badge.Render(fmt.Sprintf("maximized #%d", *cfg.MaximizedIndex+1))
		}
		return out
	case layout.TypeStack:
		return fmt.Sprintf("%s stack %s", r.theme.Normal.Render(IconStack), r.theme.BadgeMuted.Render(fmt.Sprintf("%d windows", len(cfg.Windows))))
	case layout.TypeWindow:
		name := cfg.Title
		if name == "" {
			name = cfg.Path
		}
		out := fmt.Sprintf("%s %s", r.theme.Normal.Render(IconWindow), name)
		if cfg.Title != "" && cfg.Path != "" {
			out += " " + r.theme.Subtle.Render(cfg.Path)
		}
		if q := formatQuery(cfg.Query); q != "" {
			out += r.theme.Subtle.Render("?" + q)
		}
		return out
	default:
		return r.theme.WarningStyle.Render(fmt.Sprintf("%s %s", IconWarning, cfg.Type))
	}
}

// RenderActiveMarker decorates the active item of a list.
func (r *LayoutRenderer) RenderActiveMarker(label string, active bool) string {
	if active {
		return r.theme.Highlight.Render("● ") + label
	}
	return "  " + label
}

func formatQuery(q map[string]string) string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+q[k])
	}
	return strings.Join(parts, "&")
}
