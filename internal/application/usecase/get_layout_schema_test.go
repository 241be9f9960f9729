package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tiledash/internal/application/port/mocks"
	"github.com/bnema/tiledash/internal/application/usecase"
)

func TestGetLayoutSchemaUseCase_Execute(t *testing.T) {
	t.Run("returns provider schema", func(t *testing.T) {
		provider := mocks.NewMockLayoutSchemaProvider(t)
		provider.EXPECT().LayoutSchema().Return([]byte(`{"title":"layout"}`), nil)

		got, err := usecase.NewGetLayoutSchemaUseCase(provider).Execute(testContext())

		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"layout"}`, string(got))
	})

	t.Run("wraps provider error", func(t *testing.T) {
		provider := mocks.NewMockLayoutSchemaProvider(t)
		boom := errors.New("reflect failed")
		provider.EXPECT().LayoutSchema().Return(nil, boom)

		_, err := usecase.NewGetLayoutSchemaUseCase(provider).Execute(testContext())

		assert.ErrorIs(t, err, boom)
	})
}
