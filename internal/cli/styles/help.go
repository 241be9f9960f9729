package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// ViewKeyMap defines keybindings for the dashboard view.
type ViewKeyMap struct {
	FocusLeft  key.Binding
	FocusRight key.Binding
	FocusUp    key.Binding
	FocusDown  key.Binding

	NextWindow    key.Binding
	PrevWindow    key.Binding
	NextDashboard key.Binding
	PrevDashboard key.Binding
	NewDashboard  key.Binding

	OpenApp    key.Binding
	SplitRight key.Binding
	SplitDown  key.Binding
	Close      key.Binding
	Maximize   key.Binding

	PresetTabs    key.Binding
	PresetColumns key.Binding
	PresetRows    key.Binding
	PresetGrid    key.Binding

	Save key.Binding
	Help key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k ViewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextWindow, k.OpenApp, k.SplitRight, k.SplitDown, k.Close, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k ViewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusLeft, k.FocusRight, k.FocusUp, k.FocusDown},
		{k.NextWindow, k.PrevWindow, k.NextDashboard, k.PrevDashboard, k.NewDashboard},
		{k.OpenApp, k.SplitRight, k.SplitDown, k.Close, k.Maximize},
		{k.PresetTabs, k.PresetColumns, k.PresetRows, k.PresetGrid},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultViewKeyMap returns the default dashboard view keybindings.
func DefaultViewKeyMap() ViewKeyMap {
	return ViewKeyMap{
		FocusLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "focus left"),
		),
		FocusRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "focus right"),
		),
		FocusUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "focus up"),
		),
		FocusDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "focus down"),
		),
		NextWindow: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next window"),
		),
		PrevWindow: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev window"),
		),
		NextDashboard: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next dashboard"),
		),
		PrevDashboard: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev dashboard"),
		),
		NewDashboard: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new dashboard"),
		),
		OpenApp: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open app"),
		),
		SplitRight: key.NewBinding(
			key.WithKeys("|", "v"),
			key.WithHelp("|", "split right"),
		),
		SplitDown: key.NewBinding(
			key.WithKeys("-", "s"),
			key.WithHelp("-", "split down"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "maximize"),
		),
		PresetTabs: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tabs"),
		),
		PresetColumns: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "columns"),
		),
		PresetRows: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "rows"),
		),
		PresetGrid: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "grid"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
