package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	IconFolder   = "\uf07b" // folder
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconLogs     = "\uf0f6" // file-text

	// Layout
	IconDashboard = "\uf0e4" // tachometer
	IconWindow    = "\uf2d2" // window
	IconStack     = "\uf24d" // clone/stack
	IconSplit     = "\uf0db" // columns
	IconGrid      = "\uf00a" // th
	IconClock     = "\uf017" // clock
)
