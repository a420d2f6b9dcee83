package model

import (
	"github.com/shopspring/decimal"
)

// Brand and ProductType are owned by the catalog store and read-only here;
// no create or update path exists in this service.
type Brand struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

type ProductType struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductGroup is the sellable design a variant belongs to. Brand and
// ProductType are joined data, not columns of product_groups.
type ProductGroup struct {
	BaseModel
	Name          string       `db:"name" json:"name"`
	Description   *string      `db:"description" json:"description,omitempty"`
	BrandID       int64        `db:"brand_id" json:"brand_id"`
	ProductTypeID int64        `db:"product_type_id" json:"product_type_id"`
	Brand         *Brand       `db:"-" json:"brands,omitempty"`
	ProductType   *ProductType `db:"-" json:"product_types,omitempty"`
}

// ProductVariant is the unit of stock, pricing and editing.
type ProductVariant struct {
	BaseModel
	ProductGroupID int64               `db:"product_group_id" json:"product_group_id"`
	Size           *string             `db:"size" json:"size,omitempty"`
	Color          *string             `db:"color" json:"color,omitempty"`
	Code           int64               `db:"code" json:"code"`
	Price          decimal.Decimal     `db:"price" json:"price"`
	OriginalPrice  decimal.NullDecimal `db:"original_price" json:"original_price,omitempty"`
	SalePrice      decimal.NullDecimal `db:"sale_price" json:"sale_price,omitempty"`
	Composition    *string             `db:"composition" json:"composition,omitempty"`

	// Joined data, filled by the catalog repository.
	Group     *ProductGroup     `db:"-" json:"product_groups,omitempty"`
	Images    []ProductImage    `db:"-" json:"product_images"`
	Inventory *InventoryCurrent `db:"-" json:"inventory_current,omitempty"`
}

// ProductImage references a variant through product_id (historical column
// name, kept for schema compatibility). The URL is stored redundantly in
// two columns, matching the catalog store layout.
type ProductImage struct {
	ID            int64   `db:"id" json:"id"`
	ProductID     int64   `db:"product_id" json:"product_id"`
	URL           string  `db:"url" json:"url"`
	URLCloudinary string  `db:"url_cloudinary" json:"url_cloudinary"`
	AltText       *string `db:"alt_text" json:"alt_text,omitempty"`
	SortOrder     int     `db:"sort_order" json:"sort_order"`
}
