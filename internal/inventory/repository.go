package inventory

import (
	"context"
	"errors"

	"github.com/altarajoyas/catalog-service/internal/inventory/dto"
)

// ErrVariantNotFound is reported when an update targets a variant id
// with no matching row.
var ErrVariantNotFound = errors.New("variant not found")

// ErrInsufficientStock is reported when a movement would drive the
// current quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

type Repository interface {
	// UpdateVariantWithStock overwrites the variant's editable fields,
	// upserts its current quantity and appends a movement row, all in
	// one transaction. Commit both or neither.
	UpdateVariantWithStock(ctx context.Context, input *dto.UpdateVariantInput) error

	// AdjustStock applies a relative quantity change with a movement
	// row, transactionally. change may be negative.
	AdjustStock(ctx context.Context, productID, change int64, notes string) error

	// GetVariantSearchDoc projects one variant with its group, brand
	// and type names for indexing. Returns nil when the id is unknown.
	GetVariantSearchDoc(ctx context.Context, productID int64) (*dto.VariantDoc, error)
}
