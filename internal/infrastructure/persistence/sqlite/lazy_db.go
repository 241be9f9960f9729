package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/logging"
)

// LazyDB opens the database on first access, so commands that never touch
// stored workspaces skip the WASM compilation and migrations.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()

		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized reports whether a connection has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

type lazyWorkspaceRepo struct {
	lazy *LazyDB

	mu   sync.Mutex
	repo repository.WorkspaceRepository
}

// NewLazyWorkspaceRepository returns a WorkspaceRepository that opens the
// database on its first call.
func NewLazyWorkspaceRepository(lazy *LazyDB) repository.WorkspaceRepository {
	return &lazyWorkspaceRepo{lazy: lazy}
}

func (r *lazyWorkspaceRepo) get(ctx context.Context) (repository.WorkspaceRepository, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.repo != nil {
		return r.repo, nil
	}
	db, err := r.lazy.DB(ctx)
	if err != nil {
		return nil, err
	}
	r.repo = NewWorkspaceRepository(db)
	return r.repo, nil
}

func (r *lazyWorkspaceRepo) Get(ctx context.Context, name string) (*layout.Config, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, name)
}

func (r *lazyWorkspaceRepo) Save(ctx context.Context, name string, cfg layout.Config) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.Save(ctx, name, cfg)
}

func (r *lazyWorkspaceRepo) Delete(ctx context.Context, name string) error {
	repo, err := r.get(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, name)
}

func (r *lazyWorkspaceRepo) List(ctx context.Context) ([]repository.WorkspaceSummary, error) {
	repo, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}
