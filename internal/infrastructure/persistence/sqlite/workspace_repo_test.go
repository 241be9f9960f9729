package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	"github.com/bnema/tiledash/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tiledash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newRepo(t *testing.T) repository.WorkspaceRepository {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "tiledash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewWorkspaceRepository(db)
}

func listConfig(titles ...string) layout.Config {
	cfg := layout.Config{Type: layout.TypeDashboardList}
	for _, title := range titles {
		cfg.Dashboards = append(cfg.Dashboards, layout.Config{
			Type:  layout.TypeDashboard,
			Title: title,
			Component: &layout.Config{
				Type:    layout.TypeStack,
				Windows: []layout.Config{{Type: layout.TypeWindow, Path: "/apps/" + title}},
			},
		})
	}
	return cfg
}

func TestWorkspaceRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	repo := newRepo(t)

	_, err := repo.Get(ctx, "home")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Save(ctx, "home", listConfig("one", "two")))

	got, err := repo.Get(ctx, "home")
	require.NoError(t, err)
	require.Len(t, got.Dashboards, 2)
	assert.Equal(t, "two", got.Dashboards[1].Title)
	assert.Equal(t, "/apps/one", got.Dashboards[0].Component.Windows[0].Path)

	require.NoError(t, repo.Save(ctx, "home", listConfig("only")))
	got, err = repo.Get(ctx, "home")
	require.NoError(t, err)
	assert.Len(t, got.Dashboards, 1)

	require.NoError(t, repo.Delete(ctx, "home"))
	_, err = repo.Get(ctx, "home")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "home"))
}

func TestWorkspaceRepository_ListSummaries(t *testing.T) {
	ctx := testCtx()
	repo := newRepo(t)

	require.NoError(t, repo.Save(ctx, "alpha", listConfig("a")))
	require.NoError(t, repo.Save(ctx, "beta", listConfig("b1", "b2", "b3")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byName := map[string]repository.WorkspaceSummary{}
	for _, s := range list {
		byName[s.Name] = s
	}
	assert.Equal(t, 1, byName["alpha"].Dashboards)
	assert.Equal(t, 1, byName["alpha"].Windows)
	assert.Equal(t, 3, byName["beta"].Dashboards)
	assert.Equal(t, 3, byName["beta"].Windows)
	assert.Positive(t, byName["beta"].Size)
	assert.Greater(t, byName["beta"].Size, byName["alpha"].Size)
	assert.False(t, byName["alpha"].UpdatedAt.IsZero())
}

func TestWorkspaceRepository_RoundTripsThroughBuild(t *testing.T) {
	ctx := testCtx()
	repo := newRepo(t)
	root, err := layout.Build(listConfig("x", "y"), nil)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, "w", root.Config()))
	got, err := repo.Get(ctx, "w")
	require.NoError(t, err)

	again, err := layout.Build(*got, nil)
	require.NoError(t, err)
	assert.Equal(t, root.Config(), again.Config())
}

func TestMigrations_Version(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "v.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
