package styles

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
)

// WorkspacesRenderer renders non-interactive output for workspace and
// dashboard subcommands.
type WorkspacesRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewWorkspacesRenderer(theme *Theme) *WorkspacesRenderer {
	return &WorkspacesRenderer{theme: theme, now: time.Now}
}

func (r *WorkspacesRenderer) RenderEmptyList() string {
	return r.theme.Subtle.Render("No saved workspaces found.")
}

// RenderList draws one row per stored workspace. current is marked.
func (r *WorkspacesRenderer) RenderList(items []repository.WorkspaceSummary, current string) string {
	if len(items) == 0 {
		return r.RenderEmptyList()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.theme.Splitter).
		Headers("", "WORKSPACE", "DASHBOARDS", "WINDOWS", "SIZE", "UPDATED").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Highlight.Padding(0, 1)
			}
			return r.theme.Normal.Padding(0, 1)
		})
	for _, s := range items {
		marker := " "
		if s.Name == current {
			marker = "●"
		}
		t.Row(
			marker,
			s.Name,
			strconv.Itoa(s.Dashboards),
			strconv.Itoa(s.Windows),
			FormatBytes(s.Size),
			RelativeTime(s.UpdatedAt, r.now()),
		)
	}
	return fmt.Sprintf("%s %s\n%s", r.theme.Highlight.Render(IconDatabase), r.theme.Title.Render("Workspaces"), t.String())
}

// RenderDashboards lists the dashboards of a workspace config.
func (r *WorkspacesRenderer) RenderDashboards(workspace string, cfg layout.Config) string {
	if len(cfg.Dashboards) == 0 {
		return r.theme.Subtle.Render(fmt.Sprintf("Workspace %s has no dashboards.", workspace))
	}
	active := -1
	if cfg.ActiveIndex != nil {
		active = *cfg.ActiveIndex
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("", "#", "TITLE", "ROOT", "WINDOWS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Subtitle.PaddingRight(2)
			}
			return r.theme.Normal.PaddingRight(2)
		})
	for i, d := range cfg.Dashboards {
		marker := " "
		if i == active {
			marker = "●"
		}
		root := "empty"
		if d.Component != nil {
			root = string(d.Component.Type)
		}
		title := d.Title
		if title == "" {
			title = layout.DefaultDashboardTitle
		}
		t.Row(marker, strconv.Itoa(i+1), title, root, strconv.Itoa(d.CountWindows()))
	}
	return fmt.Sprintf("%s %s\n%s", r.theme.Highlight.Render(IconDashboard), r.theme.Title.Render(workspace), t.String())
}

func (r *WorkspacesRenderer) RenderDone(format string, args ...any) string {
	return fmt.Sprintf("%s %s", r.theme.SuccessStyle.Render(IconCheck), fmt.Sprintf(format, args...))
}

func (r *WorkspacesRenderer) RenderWarning(format string, args ...any) string {
	return fmt.Sprintf("%s %s", r.theme.WarningStyle.Render(IconWarning), fmt.Sprintf(format, args...))
}

func (r *WorkspacesRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}

// RelativeTime formats t relative to now ("just now", "5m ago", "3d ago").
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Local().Format("2006-01-02")
	}
}

// FormatBytes formats n with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
