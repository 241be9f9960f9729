package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/domain/layout"
)

type recorder struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (r *recorder) save(_ context.Context, cfg layout.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.titles = append(r.titles, cfg.Title)
	return nil
}

func (r *recorder) saved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func titled(title string) layout.Config {
	return layout.Config{Type: layout.TypeDashboard, Title: title}
}

func TestService_DebouncesRapidChanges(t *testing.T) {
	svc := NewService(20)
	rec := &recorder{}

	svc.Schedule("d1", titled("one"), rec.save)
	svc.Schedule("d1", titled("two"), rec.save)
	svc.Schedule("d1", titled("three"), rec.save)

	require.Eventually(t, func() bool { return len(rec.saved()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{"three"}, rec.saved())
	assert.Zero(t, svc.Pending())
}

func TestService_KeysAreIndependent(t *testing.T) {
	svc := NewService(60_000)
	rec := &recorder{}

	svc.Schedule("a", titled("a"), rec.save)
	svc.Schedule("b", titled("b"), rec.save)
	assert.Equal(t, 2, svc.Pending())

	require.NoError(t, svc.Flush(context.Background()))
	assert.ElementsMatch(t, []string{"a", "b"}, rec.saved())
	assert.Zero(t, svc.Pending())
}

func TestService_SkipsUnchangedSnapshot(t *testing.T) {
	svc := NewService(60_000)
	rec := &recorder{}
	ctx := context.Background()

	svc.Schedule("d1", titled("same"), rec.save)
	require.NoError(t, svc.Flush(ctx))
	svc.Schedule("d1", titled("same"), rec.save)
	require.NoError(t, svc.Flush(ctx))
	svc.Schedule("d1", titled("changed"), rec.save)
	require.NoError(t, svc.Flush(ctx))

	assert.Equal(t, []string{"same", "changed"}, rec.saved())
}

func TestService_FailedSaveIsRetriedOnNextSchedule(t *testing.T) {
	svc := NewService(60_000)
	boom := errors.New("database is locked")
	rec := &recorder{err: boom}
	ctx := context.Background()

	svc.Schedule("d1", titled("x"), rec.save)
	require.ErrorIs(t, svc.Flush(ctx), boom)

	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	svc.Schedule("d1", titled("x"), rec.save)
	require.NoError(t, svc.Flush(ctx))
	assert.Equal(t, []string{"x"}, rec.saved())
}

func TestService_StopFlushesAndSavesSynchronously(t *testing.T) {
	svc := NewService(60_000)
	rec := &recorder{}
	ctx := context.Background()

	svc.Schedule("d1", titled("pending"), rec.save)
	require.NoError(t, svc.Stop(ctx))
	assert.Equal(t, []string{"pending"}, rec.saved())

	svc.Schedule("d1", titled("late"), rec.save)
	assert.Equal(t, []string{"pending", "late"}, rec.saved())
	assert.Zero(t, svc.Pending())
}

func TestNewService_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewService(0).Delay())
	assert.Equal(t, 250*time.Millisecond, NewService(250).Delay())
}

func TestService_DrivesDashboardAutoSave(t *testing.T) {
	svc := NewService(60_000)
	rec := &recorder{}
	d := layout.NewDashboard()
	d.SetSaveScheduler(svc)
	d.SetSaver(rec.save)
	d.SetLoader(func(context.Context) (*layout.Config, error) {
		cfg := titled("loaded")
		return &cfg, nil
	})
	require.NoError(t, d.Load(context.Background()))

	d.SetTitle("first")
	d.SetTitle("second")
	require.Equal(t, 1, svc.Pending())
	require.NoError(t, svc.Flush(context.Background()))

	assert.Equal(t, []string{"second"}, rec.saved())
	assert.Equal(t, layout.SyncDone, d.Sync().State())
}
