package apphost

import (
	"slices"
	"sync"

	"github.com/bnema/tiledash/internal/domain/layout"
)

// FrameHost stands in for an embedded page: it records navigation and
// events and reports the path as its title.
type FrameHost struct {
	mu      sync.Mutex
	history []layout.OpenRequest
	events  []string
	notify  func()
}

// NewFrameHost creates an empty frame host.
func NewFrameHost(notify func()) *FrameHost {
	return &FrameHost{notify: notify}
}

func (h *FrameHost) Emit(event string, _ any) {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
}

func (h *FrameHost) Load(req layout.OpenRequest) error {
	h.mu.Lock()
	h.history = append(h.history, req)
	h.mu.Unlock()
	if h.notify != nil {
		h.notify()
	}
	return nil
}

func (h *FrameHost) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.history) == 0 {
		return ""
	}
	return h.history[len(h.history)-1].Path
}

func (h *FrameHost) Icon() string { return "" }

func (h *FrameHost) State() layout.AppState {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.history) == 0 {
		return layout.AppStateIdle
	}
	return layout.AppStateReady
}

// Content describes the current page.
func (h *FrameHost) Content() string {
	return h.Title()
}

// History returns every loaded request, oldest first.
func (h *FrameHost) History() []layout.OpenRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.history)
}

// Events returns the names of every emitted event.
func (h *FrameHost) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.events)
}
