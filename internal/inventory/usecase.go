package inventory

import (
	"context"

	"github.com/altarajoyas/catalog-service/internal/inventory/dto"
)

type UseCase interface {
	// UpdateVariant is the storefront edit operation: full-field variant
	// overwrite plus stock replacement.
	UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) error

	// ApplyMovement applies a relative stock change (order events, manual
	// corrections).
	ApplyMovement(ctx context.Context, productID, change int64, notes string) error
}
