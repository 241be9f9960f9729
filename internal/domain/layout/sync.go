package layout

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

func errIllegalState(msg string) error {
	return fmt.Errorf("%w: %s", ErrIllegalState, msg)
}

// SyncState is the state of a load or save operation.
type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
	SyncDone    SyncState = "done"
	SyncError   SyncState = "error"
)

// Sync tracks the status of the last load or save. It is safe for
// concurrent use since saves complete off the UI goroutine.
type Sync struct {
	mu    sync.RWMutex
	state SyncState
	err   error
}

// NewSync returns an idle Sync.
func NewSync() *Sync {
	return &Sync{state: SyncIdle}
}

func (s *Sync) SyncStart() { s.set(SyncSyncing, nil) }
func (s *Sync) SyncDone()  { s.set(SyncDone, nil) }

// SyncError records a failure.
func (s *Sync) SyncError(err error) { s.set(SyncError, err) }

func (s *Sync) set(state SyncState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, s.err = state, err
}

// State returns the current state.
func (s *Sync) State() SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the error of a failed operation.
func (s *Sync) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Syncing reports whether an operation is in flight.
func (s *Sync) Syncing() bool { return s.State() == SyncSyncing }

// Loader supplies a persisted configuration.
type Loader func(ctx context.Context) (*Config, error)

// Saver persists a configuration.
type Saver func(ctx context.Context, cfg Config) error

// SaveScheduler coalesces rapid saves. Schedule is called on every change
// once auto-save is armed, with a fresh snapshot; the scheduler eventually
// calls save with the latest snapshot for key.
type SaveScheduler interface {
	Schedule(key string, cfg Config, save func(ctx context.Context, cfg Config) error)
}

// persistence is the load/save lifecycle shared by Dashboard and
// DashboardList.
type persistence struct {
	sync      *Sync
	loader    Loader
	saver     Saver
	scheduler SaveScheduler
	armed     bool
	loadSeq   atomic.Uint64
}

// Sync exposes the load/save status.
func (p *persistence) Sync() *Sync { return p.sync }

func (p *persistence) SetLoader(l Loader) { p.loader = l }
func (p *persistence) SetSaver(s Saver)   { p.saver = s }

// SetSaveScheduler sets the debouncer used for auto-save.
func (p *persistence) SetSaveScheduler(s SaveScheduler) { p.scheduler = s }

// AutoSaveArmed reports whether changes are being saved automatically.
func (p *persistence) AutoSaveArmed() bool { return p.armed }

// DisarmAutoSave stops scheduling saves on change.
func (p *persistence) DisarmAutoSave() { p.armed = false }

// load runs the loader and applies the result with apply. A result that
// arrives after a newer load started is dropped.
func (p *persistence) load(ctx context.Context, apply func(Config) error) error {
	if p.loader == nil {
		err := errIllegalState("no loader configured")
		p.sync.SyncError(err)
		return err
	}
	seq := p.loadSeq.Add(1)
	p.armed = false
	p.sync.SyncStart()
	cfg, err := p.loader(ctx)
	if p.loadSeq.Load() != seq {
		return nil
	}
	if err != nil {
		p.sync.SyncError(err)
		return err
	}
	if cfg != nil {
		if err := apply(*cfg); err != nil {
			p.sync.SyncError(err)
			return err
		}
	}
	p.sync.SyncDone()
	p.armed = p.saver != nil
	return nil
}

// save persists cfg immediately.
func (p *persistence) save(ctx context.Context, cfg Config) error {
	if p.saver == nil {
		err := errIllegalState("no saver configured")
		p.sync.SyncError(err)
		return err
	}
	p.sync.SyncStart()
	if err := p.saver(ctx, cfg); err != nil {
		p.sync.SyncError(err)
		return err
	}
	p.sync.SyncDone()
	return nil
}

// changedSnapshot schedules a save of the snapshot built by snapshot.
func (p *persistence) changedSnapshot(key string, snapshot func() Config) {
	if !p.armed || p.scheduler == nil || p.saver == nil {
		return
	}
	p.scheduler.Schedule(key, snapshot(), p.save)
}
