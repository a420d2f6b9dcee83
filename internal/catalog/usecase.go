package catalog

import (
	"context"

	"github.com/altarajoyas/catalog-service/internal/model"
)

type UseCase interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	ListProductTypes(ctx context.Context) ([]model.ProductType, error)

	// ListVariants serves the inventory list, optionally narrowed by a
	// free-text query.
	ListVariants(ctx context.Context, query string) ([]model.ProductVariant, error)

	// GetVariant returns one variant or a not-found error.
	GetVariant(ctx context.Context, id int64) (*model.ProductVariant, error)
}
