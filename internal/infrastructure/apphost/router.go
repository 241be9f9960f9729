// Package apphost runs the applications shown inside layout windows.
package apphost

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/rs/zerolog"
)

// AppPrefix is the path prefix of script apps.
const AppPrefix = "/apps/"

// DefaultScriptTimeout bounds a single script run or event handler.
const DefaultScriptTimeout = 2 * time.Second

// ErrUnknownApp is returned when /apps/<name> has no script.
var ErrUnknownApp = errors.New("unknown app")

// Router resolves open requests into app hosts. /apps/<name> runs the
// configured script, anything else gets a FrameHost.
type Router struct {
	apps    map[string]string
	appsDir string
	timeout time.Duration
	notify  func()
	log     zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithAppsDir sets the directory searched for <name>.js.
func WithAppsDir(dir string) Option {
	return func(r *Router) { r.appsDir = dir }
}

// WithTimeout bounds script execution.
func WithTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithNotifier is called after a host changes its title, icon, state or
// content.
func WithNotifier(fn func()) Option {
	return func(r *Router) { r.notify = fn }
}

// WithLogger sets the logger handed to hosts.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Router) { r.log = log }
}

// NewRouter creates a router for the given app name to script path map.
func NewRouter(apps map[string]string, opts ...Option) *Router {
	r := &Router{
		apps:    make(map[string]string, len(apps)),
		timeout: DefaultScriptTimeout,
		log:     zerolog.Nop(),
	}
	for name, script := range apps {
		r.apps[strings.ToLower(name)] = script
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route creates and loads a host for req.
func (r *Router) Route(req layout.OpenRequest) (layout.AppHost, error) {
	name, ok := AppName(req.Path)
	if !ok {
		h := NewFrameHost(r.notify)
		if err := h.Load(req); err != nil {
			return nil, err
		}
		return h, nil
	}

	script, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(script)
	if err != nil {
		return nil, fmt.Errorf("read app %q: %w", name, err)
	}

	h := NewScriptHost(name, string(source),
		withHostLogger(r.log.With().Str("app", name).Logger()),
		withHostTimeout(r.timeout),
		withHostNotifier(r.notify),
	)
	if err := h.Load(req); err != nil {
		return nil, err
	}
	r.log.Debug().Str("app", name).Str("script", script).Msg("app started")
	return h, nil
}

// AsLayoutRouter adapts r for the layout package.
func (r *Router) AsLayoutRouter() layout.Router {
	return layout.RouterFunc(r.Route)
}

func (r *Router) resolve(name string) (string, error) {
	if script, ok := r.apps[name]; ok {
		return script, nil
	}
	if r.appsDir != "" {
		script := filepath.Join(r.appsDir, name+".js")
		if _, err := os.Stat(script); err == nil {
			return script, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownApp, name)
}

// AppName extracts <name> from /apps/<name>[/...].
func AppName(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, AppPrefix)
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(rest, "/")
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}
