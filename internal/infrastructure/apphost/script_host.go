package apphost

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/grafana/sobek"
	"github.com/rs/zerolog"
)

// EventLoad is emitted to scripts after every navigation.
const EventLoad = "load"

// ErrScriptTimeout is returned when a script runs past its time budget.
var ErrScriptTimeout = errors.New("script timed out")

type navigation struct {
	Path   string            `json:"path"`
	Params map[string]string `json:"params"`
	Query  map[string]string `json:"query"`
	Name   string            `json:"name"`
}

// ScriptHost runs one app script in its own sobek runtime. The script sees
// these globals:
//
//	on(event, fn)       subscribe to host events (load, beforeclose, ...)
//	setTitle(s)         window title
//	setIcon(s)          window icon
//	setState(s)         idle, loading, ready or error
//	setContent(s)       text drawn inside the window
//	log(...args)        write to the tiledash log
//	navigation          {path, params, query, name} of the last load
type ScriptHost struct {
	name   string
	source string

	mu       sync.Mutex
	vm       *sobek.Runtime
	started  bool
	handlers map[string][]sobek.Callable
	title    string
	icon     string
	content  string
	state    layout.AppState
	stateSet bool

	timeout time.Duration
	notify  func()
	log     zerolog.Logger
}

type hostOption func(*ScriptHost)

func withHostLogger(log zerolog.Logger) hostOption {
	return func(h *ScriptHost) { h.log = log }
}

func withHostTimeout(d time.Duration) hostOption {
	return func(h *ScriptHost) { h.timeout = d }
}

func withHostNotifier(fn func()) hostOption {
	return func(h *ScriptHost) { h.notify = fn }
}

// NewScriptHost prepares a host for source. The script first runs on Load.
func NewScriptHost(name, source string, opts ...hostOption) *ScriptHost {
	h := &ScriptHost{
		name:     name,
		source:   source,
		handlers: map[string][]sobek.Callable{},
		state:    layout.AppStateIdle,
		timeout:  DefaultScriptTimeout,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.vm = sobek.New()
	h.vm.SetFieldNameMapper(sobek.TagFieldNameMapper("json", true))
	h.installGlobals()
	return h
}

func (h *ScriptHost) installGlobals() {
	vm := h.vm
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(vm.Set("on", func(call sobek.FunctionCall) sobek.Value {
		event := call.Argument(0).String()
		fn, ok := sobek.AssertFunction(call.Argument(1))
		if !ok {
			panic(vm.NewTypeError("on(%q): handler is not a function", event))
		}
		h.handlers[event] = append(h.handlers[event], fn)
		return sobek.Undefined()
	}))
	must(vm.Set("setTitle", func(s string) { h.title = s; h.changed() }))
	must(vm.Set("setIcon", func(s string) { h.icon = s; h.changed() }))
	must(vm.Set("setContent", func(s string) { h.content = s; h.changed() }))
	must(vm.Set("setState", func(s string) {
		switch st := layout.AppState(s); st {
		case layout.AppStateIdle, layout.AppStateLoading, layout.AppStateReady, layout.AppStateError:
			h.state, h.stateSet = st, true
			h.changed()
		default:
			panic(vm.NewTypeError("setState: unknown state %q", s))
		}
	}))
	must(vm.Set("log", func(call sobek.FunctionCall) sobek.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		h.log.Info().Msg(strings.Join(parts, " "))
		return sobek.Undefined()
	}))
}

// changed runs with h.mu held from inside the VM; the notifier must not
// call back into the host synchronously.
func (h *ScriptHost) changed() {
	if h.notify != nil {
		h.notify()
	}
}

// run executes fn with the interrupt timer armed. Must hold h.mu.
func (h *ScriptHost) run(fn func() error) error {
	timer := time.AfterFunc(h.timeout, func() { h.vm.Interrupt(ErrScriptTimeout) })
	defer func() {
		timer.Stop()
		h.vm.ClearInterrupt()
	}()

	err := fn()
	var interrupted *sobek.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("app %q: %w", h.name, ErrScriptTimeout)
	}
	return err
}

// Load navigates the app. The first call runs the script; every call then
// emits "load" with the navigation payload.
func (h *ScriptHost) Load(req layout.OpenRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	nav := navigation{Path: req.Path, Params: req.Params, Query: req.Query, Name: req.Name}
	if err := h.vm.Set("navigation", nav); err != nil {
		return err
	}

	if !h.started {
		h.state = layout.AppStateLoading
		err := h.run(func() error {
			_, err := h.vm.RunScript(h.name+".js", h.source)
			return err
		})
		if err != nil {
			h.state = layout.AppStateError
			h.log.Error().Err(err).Msg("app script failed")
			return fmt.Errorf("run app %q: %w", h.name, err)
		}
		h.started = true
		if !h.stateSet {
			h.state = layout.AppStateReady
		}
	}

	h.emitLocked(EventLoad, nav)
	h.changed()
	return nil
}

// Emit delivers event to the script handlers in subscription order.
// Handler errors are logged and do not stop delivery.
func (h *ScriptHost) Emit(event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.emitLocked(event, payload)
}

func (h *ScriptHost) emitLocked(event string, payload any) {
	handlers := h.handlers[event]
	if len(handlers) == 0 {
		return
	}
	arg := h.vm.ToValue(payload)
	for _, fn := range handlers {
		err := h.run(func() error {
			_, err := fn(sobek.Undefined(), arg)
			return err
		})
		if err != nil {
			h.log.Warn().Err(err).Str("event", event).Msg("app event handler failed")
		}
	}
}

func (h *ScriptHost) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

func (h *ScriptHost) Icon() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.icon
}

func (h *ScriptHost) State() layout.AppState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Content returns the text set by the script.
func (h *ScriptHost) Content() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.content
}

// Name returns the app name.
func (h *ScriptHost) Name() string { return h.name }
