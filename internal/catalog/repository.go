package catalog

import (
	"context"

	"github.com/altarajoyas/catalog-service/internal/catalog/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
)

type Repository interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	ListProductTypes(ctx context.Context) ([]model.ProductType, error)

	// FindVariants returns variants newest-first, each hydrated with its
	// group (brand, type), images and current inventory.
	FindVariants(ctx context.Context, filters *dto.VariantFilters) ([]model.ProductVariant, error)

	// FindVariantsByIDs returns the hydrated variants among ids,
	// newest-first. Unknown ids are skipped.
	FindVariantsByIDs(ctx context.Context, ids []int64) ([]model.ProductVariant, error)

	// FindVariantByID returns one hydrated variant, or nil when no row
	// matches.
	FindVariantByID(ctx context.Context, id int64) (*model.ProductVariant, error)
}
