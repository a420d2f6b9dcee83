package dto

import "github.com/shopspring/decimal"

// UpdateVariantInput carries the full editable field set of a variant.
// Optional fields are overwritten with NULL when nil; there are no
// partial-patch semantics.
type UpdateVariantInput struct {
	ProductID     int64
	Size          *string
	Color         *string
	Code          int64
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	SalePrice     decimal.NullDecimal
	Composition   *string
	Quantity      int64
}

// VariantDoc is the search-index projection of a variant.
type VariantDoc struct {
	ID          int64           `json:"id" db:"id"`
	Code        int64           `json:"code" db:"code"`
	Size        *string         `json:"size" db:"size"`
	Color       *string         `json:"color" db:"color"`
	Composition *string         `json:"composition" db:"composition"`
	Price       decimal.Decimal `json:"price" db:"price"`
	GroupName   string          `json:"group_name" db:"group_name"`
	BrandName   string          `json:"brand_name" db:"brand_name"`
	TypeName    string          `json:"type_name" db:"type_name"`
}
