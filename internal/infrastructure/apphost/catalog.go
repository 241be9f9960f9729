package apphost

import (
	"slices"
	"strings"
	"sync"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// WelcomePath is offered when no app is configured.
const WelcomePath = "/welcome"

// ContentProvider is implemented by hosts that can describe what they show.
type ContentProvider interface {
	Content() string
}

// Entry is one app that can be added to a dashboard.
type Entry struct {
	Name  string
	Title string
	Path  string
}

// Catalog lists the apps offered when a pane needs filling.
type Catalog struct {
	mu      sync.Mutex
	entries []Entry
	next    int
}

// NewCatalog builds a catalog of /apps/<name> entries sorted by name.
// Without apps it offers the welcome page.
func NewCatalog(apps map[string]string) *Catalog {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, strings.ToLower(name))
	}
	slices.Sort(names)

	c := &Catalog{}
	for _, name := range names {
		c.entries = append(c.entries, Entry{Name: name, Title: name, Path: AppPrefix + name})
	}
	if len(c.entries) == 0 {
		c.entries = []Entry{{Name: "welcome", Title: "Welcome", Path: WelcomePath}}
	}
	return c
}

// Entries returns the catalog in order.
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// AddApp returns the chooser used to fill new panes: each call yields the
// next entry, wrapping around. The title is left to the host.
func (c *Catalog) AddApp() layout.AddAppFunc {
	return func() (layout.OpenRequest, bool) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if len(c.entries) == 0 {
			return layout.OpenRequest{}, false
		}
		e := c.entries[c.next%len(c.entries)]
		c.next++
		return layout.OpenRequest{Path: e.Path, Name: e.Name}, true
	}
}

// Lookup finds an entry by name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	name = strings.ToLower(name)
	for _, e := range c.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
