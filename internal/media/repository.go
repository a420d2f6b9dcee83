package media

import (
	"context"

	"github.com/altarajoyas/catalog-service/internal/model"
)

type Repository interface {
	VariantExists(ctx context.Context, id int64) (bool, error)

	// MaxSortOrder returns the highest sort_order among the product's
	// images, or 0 when it has none.
	MaxSortOrder(ctx context.Context, productID int64) (int, error)

	// InsertImage stores the image row and fills in its generated ID.
	InsertImage(ctx context.Context, img *model.ProductImage) error
}
