// Package autosave debounces layout saves.
package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/logging"
)

// DefaultDelay is the quiet period before a scheduled save runs.
const DefaultDelay = time.Second

type saveFunc func(ctx context.Context, cfg layout.Config) error

type pending struct {
	timer *time.Timer
	cfg   layout.Config
	save  saveFunc
}

// Service coalesces rapid layout changes into one save per key. It
// implements layout.SaveScheduler.
type Service struct {
	delay time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	ctx     context.Context
	pending map[string]*pending
	running int
	stopped bool

	// saveMu serializes calls to persist.
	saveMu sync.Mutex

	hashMu sync.Mutex
	saved  map[string][blake2b.Size256]byte
}

var _ layout.SaveScheduler = (*Service)(nil)

// NewService creates a new autosave service. A non-positive delay falls
// back to DefaultDelay.
func NewService(delayMs int) *Service {
	delay := DefaultDelay
	if delayMs > 0 {
		delay = time.Duration(delayMs) * time.Millisecond
	}
	s := &Service{
		delay:   delay,
		ctx:     context.Background(),
		pending: make(map[string]*pending),
		saved:   make(map[string][blake2b.Size256]byte),
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Delay returns the debounce interval.
func (s *Service) Delay() time.Duration { return s.delay }

// Start sets the context used by timer-driven saves.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx = ctx
	logging.FromContext(ctx).Debug().Dur("delay", s.delay).Msg("autosave service started")
}

// Schedule records cfg as the latest snapshot for key and restarts the
// key's timer. After Stop, saves run immediately.
func (s *Service) Schedule(key string, cfg layout.Config, save func(ctx context.Context, cfg layout.Config) error) {
	s.mu.Lock()
	if s.stopped {
		ctx := s.ctx
		s.mu.Unlock()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		_ = s.persist(ctx, key, cfg, save)
		return
	}

	if old, ok := s.pending[key]; ok {
		old.timer.Stop()
	}
	p := &pending{cfg: cfg, save: save}
	s.pending[key] = p
	p.timer = time.AfterFunc(s.delay, func() { s.fire(key, p) })
	s.mu.Unlock()
}

func (s *Service) fire(key string, p *pending) {
	s.mu.Lock()
	if s.pending[key] != p {
		// Flushed or replaced in the meantime.
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	cfg, save, ctx := p.cfg, p.save, s.ctx
	s.running++
	s.mu.Unlock()

	s.saveMu.Lock()
	_ = s.persist(ctx, key, cfg, save)
	s.saveMu.Unlock()

	s.mu.Lock()
	s.running--
	s.idle.Broadcast()
	s.mu.Unlock()
}

// persist runs save unless cfg is byte-identical to the last snapshot
// saved for key. Callers hold saveMu.
func (s *Service) persist(ctx context.Context, key string, cfg layout.Config, save saveFunc) error {
	log := logging.FromContext(ctx)

	payload, err := json.Marshal(cfg)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode layout for autosave")
		return err
	}
	sum := blake2b.Sum256(payload)

	s.hashMu.Lock()
	last, seen := s.saved[key]
	s.hashMu.Unlock()
	if seen && last == sum {
		log.Trace().Str("key", key).Msg("layout unchanged, skipping save")
		return nil
	}

	if err := save(ctx, cfg); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save layout")
		return err
	}

	s.hashMu.Lock()
	s.saved[key] = sum
	s.hashMu.Unlock()
	log.Debug().Str("key", key).Int("bytes", len(payload)).Msg("layout saved")
	return nil
}

// Pending returns the number of keys waiting for their timer.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush cancels every timer and saves the pending snapshots now. It also
// waits for timer-driven saves already running.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[string]*pending)
	for _, p := range batch {
		p.timer.Stop()
	}
	s.mu.Unlock()

	var errs []error
	s.saveMu.Lock()
	for key, p := range batch {
		if err := s.persist(ctx, key, p.cfg, p.save); err != nil {
			errs = append(errs, err)
		}
	}
	s.saveMu.Unlock()

	s.mu.Lock()
	for s.running > 0 {
		s.idle.Wait()
	}
	s.mu.Unlock()
	return errors.Join(errs...)
}

// Stop flushes pending saves. Later schedules save synchronously.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return s.Flush(ctx)
}
