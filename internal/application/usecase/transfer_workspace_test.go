package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/application/port/mocks"
	"github.com/bnema/tiledash/internal/application/usecase"
	"github.com/bnema/tiledash/internal/domain/layout"
	"github.com/bnema/tiledash/internal/domain/repository"
	repomocks "github.com/bnema/tiledash/internal/domain/repository/mocks"
)

func newCodec(t *testing.T, format string) *mocks.MockLayoutCodec {
	codec := mocks.NewMockLayoutCodec(t)
	codec.EXPECT().Format().Return(format)
	return codec
}

func TestExportWorkspaceUseCase_Execute(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockWorkspaceRepository(t)
	stored := storedWorkspace()
	repo.EXPECT().Get(ctx, "main").Return(stored, nil)

	jsonCodec := newCodec(t, "json")
	yamlCodec := newCodec(t, "yaml")
	var out bytes.Buffer
	yamlCodec.EXPECT().Encode(&out, *stored).Return(nil)

	uc := usecase.NewExportWorkspaceUseCase(repo, jsonCodec, yamlCodec)

	err := uc.Execute(ctx, usecase.ExportWorkspaceInput{Name: "main", Format: "YML", Output: &out})
	require.NoError(t, err)
}

func TestExportWorkspaceUseCase_Execute_UnknownFormat(t *testing.T) {
	repo := repomocks.NewMockWorkspaceRepository(t)
	uc := usecase.NewExportWorkspaceUseCase(repo, newCodec(t, "json"))

	err := uc.Execute(testContext(), usecase.ExportWorkspaceInput{Name: "main", Format: "xml", Output: &bytes.Buffer{}})

	assert.ErrorIs(t, err, usecase.ErrUnknownFormat)
}

func TestExportWorkspaceUseCase_Execute_NotFound(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockWorkspaceRepository(t)
	repo.EXPECT().Get(ctx, "missing").Return(nil, repository.ErrNotFound)
	uc := usecase.NewExportWorkspaceUseCase(repo, newCodec(t, "json"))

	err := uc.Execute(ctx, usecase.ExportWorkspaceInput{Name: "missing", Format: "json", Output: &bytes.Buffer{}})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestImportWorkspaceUseCase_Execute_NormalizesLayout(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockWorkspaceRepository(t)
	codec := newCodec(t, "toml")
	in := strings.NewReader("ignored")
	codec.EXPECT().Decode(in).Return(layout.Config{
		Type:  layout.TypeDashboard,
		Title: "Imported",
		Component: &layout.Config{
			Type:    "panel",
			Windows: []layout.Config{{Type: layout.TypeWindow, Path: "/x"}},
		},
	}, nil)
	repo.EXPECT().Get(ctx, "imported").Return(nil, repository.ErrNotFound)

	var saved layout.Config
	repo.EXPECT().Save(ctx, "imported", mock.AnythingOfType("layout.Config")).
		Run(func(_ context.Context, _ string, cfg layout.Config) { saved = cfg }).
		Return(nil)

	uc := usecase.NewImportWorkspaceUseCase(repo, codec)

	out, err := uc.Execute(ctx, usecase.ImportWorkspaceInput{Name: "imported", Format: "toml", Input: in})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Dashboards)
	assert.Equal(t, 1, out.Windows)
	assert.Equal(t, 1, out.UnknownTypes)
	assert.Equal(t, layout.TypeDashboardList, saved.Type)
	require.Len(t, saved.Dashboards, 1)
	assert.Equal(t, "Imported", saved.Dashboards[0].Title)
	assert.Equal(t, layout.TypeStack, saved.Dashboards[0].Component.Type)
}

func TestImportWorkspaceUseCase_Execute_RefusesOverwrite(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockWorkspaceRepository(t)
	codec := newCodec(t, "json")
	in := strings.NewReader("{}")
	codec.EXPECT().Decode(in).Return(*storedWorkspace(), nil)
	repo.EXPECT().Get(ctx, "main").Return(storedWorkspace(), nil)

	_, err := usecase.NewImportWorkspaceUseCase(repo, codec).
		Execute(ctx, usecase.ImportWorkspaceInput{Name: "main", Format: "json", Input: in})

	assert.ErrorIs(t, err, usecase.ErrWorkspaceExists)
}

func TestImportWorkspaceUseCase_Execute_OverwriteSkipsLookup(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockWorkspaceRepository(t)
	codec := newCodec(t, "json")
	in := strings.NewReader("{}")
	codec.EXPECT().Decode(in).Return(*storedWorkspace(), nil)
	repo.EXPECT().Save(ctx, "main", mock.AnythingOfType("layout.Config")).Return(nil)

	out, err := usecase.NewImportWorkspaceUseCase(repo, codec).
		Execute(ctx, usecase.ImportWorkspaceInput{Name: "main", Format: "json", Input: in, Overwrite: true})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Windows)
	assert.Zero(t, out.UnknownTypes)
}
