package port

// XDGPaths provides XDG Base Directory paths.
type XDGPaths interface {
	ConfigDir() (string, error)
	DataDir() (string, error)
	StateDir() (string, error)
	CacheDir() (string, error)

	// LogDir holds the rotated log of the terminal view.
	LogDir() (string, error)
	// AppsDir is searched for <name>.js when an app has no configured script.
	AppsDir() (string, error)
}
