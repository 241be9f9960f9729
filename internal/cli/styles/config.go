package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths lists the files and directories tiledash uses.
func (r *ConfigRenderer) RenderPaths(paths map[string]string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	names := make([]string, 0, len(paths))
	width := 0
	for name := range paths {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s %s %s\n",
			iconStyle.Render(IconFolder),
			r.theme.Subtle.Render(fmt.Sprintf("%-*s", width, name)),
			r.theme.Normal.Render(paths[name]),
		)
	}
	return sb.String()
}

// RenderSet confirms a changed setting.
func (r *ConfigRenderer) RenderSet(key, value, path string) string {
	return fmt.Sprintf("%s %s = %s %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Highlight.Render(key),
		r.theme.Normal.Render(value),
		r.theme.Subtle.Render("("+path+")"),
	)
}

// RenderWritten confirms a generated file.
func (r *ConfigRenderer) RenderWritten(what, path string) string {
	return fmt.Sprintf("%s %s %s",
		r.theme.SuccessStyle.Render(IconCheck),
		what,
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %v", r.theme.ErrorStyle.Render(IconX), err)
}
