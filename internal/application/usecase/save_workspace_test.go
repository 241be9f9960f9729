package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/domain/layout"
	repomocks "github.com/bnema/tiledash/internal/domain/repository/mocks"
)

func TestSaveWorkspaceUseCase_Execute(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.SaveWorkspaceInput
		wantErr error
		check   func(t *testing.T, cfg layout.Config)
	}{
		{
			name:  "stores dashboard list as is",
			input: usecase.SaveWorkspaceInput{Name: "main", Config: *storedWorkspace()},
			check: func(t *testing.T, cfg layout.Config) {
				assert.Equal(t, *storedWorkspace(), cfg)
			},
		},
		{
			name: "wraps a single dashboard",
			input: usecase.SaveWorkspaceInput{
				Name:   "main",
				Config: layout.Config{Type: layout.TypeDashboard, Title: "Solo"},
			},
			check: func(t *testing.T, cfg layout.Config) {
				assert.Equal(t, layout.TypeDashboardList, cfg.Type)
				require.Len(t, cfg.Dashboards, 1)
				assert.Equal(t, "Solo", cfg.Dashboards[0].Title)
			},
		},
		{
			name:    "rejects other roots",
			input:   usecase.SaveWorkspaceInput{Name: "main", Config: layout.Config{Type: layout.TypeStack}},
			wantErr: usecase.ErrUnsupportedRoot,
		},
		{
			name:    "rejects empty name",
			input:   usecase.SaveWorkspaceInput{Config: *storedWorkspace()},
			wantErr: usecase.ErrWorkspaceNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repomocks.NewMockWorkspaceRepository(t)
			if tt.wantErr == nil {
				repo.EXPECT().Save(mock.Anything, "main", mock.AnythingOfType("layout.Config")).
					Run(func(_ context.Context, _ string, cfg layout.Config) { tt.check(t, cfg) }).
					Return(nil)
			}

			err := usecase.NewSaveWorkspaceUseCase(repo).Execute(testContext(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSaveWorkspaceUseCase_Execute_RepositoryError(t *testing.T) {
	repo := repomocks.NewMockWorkspaceRepository(t)
	boom := errors.New("disk full")
	repo.EXPECT().Save(mock.Anything, "main", mock.Anything).Return(boom)

	err := usecase.NewSaveWorkspaceUseCase(repo).Execute(testContext(), usecase.SaveWorkspaceInput{
		Name:   "main",
		Config: *storedWorkspace(),
	})

	assert.ErrorIs(t, err, boom)
}

func TestNormalizeWorkspaceName(t *testing.T) {
	name, err := usecase.NormalizeWorkspaceName("  team ops ")
	require.NoError(t, err)
	assert.Equal(t, "team ops", name)

	long := make([]rune, 129)
	for i := range long {
		long[i] = 'x'
	}
	_, err = usecase.NormalizeWorkspaceName(string(long))
	assert.ErrorIs(t, err, usecase.ErrWorkspaceNameTooLong)
}
