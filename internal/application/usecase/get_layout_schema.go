package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tiledash/internal/application/port"
)

// GetLayoutSchemaUseCase returns the JSON Schema of layout files.
type GetLayoutSchemaUseCase struct {
	provider port.LayoutSchemaProvider
}

// NewGetLayoutSchemaUseCase creates a new GetLayoutSchemaUseCase.
func NewGetLayoutSchemaUseCase(provider port.LayoutSchemaProvider) *GetLayoutSchemaUseCase {
	return &GetLayoutSchemaUseCase{provider: provider}
}

// Execute renders the schema.
func (uc *GetLayoutSchemaUseCase) Execute(_ context.Context) ([]byte, error) {
	schema, err := uc.provider.LayoutSchema()
	if err != nil {
		return nil, fmt.Errorf("generate layout schema: %w", err)
	}
	return schema, nil
}
