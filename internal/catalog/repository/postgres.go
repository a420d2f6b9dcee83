package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/altarajoyas/catalog-service/internal/catalog/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	brands := []model.Brand{}
	err := r.DB.SelectContext(ctx, &brands, `
        SELECT id, name, description, created_at, updated_at
        FROM brands
        ORDER BY name ASC
    `)
	return brands, err
}

func (r *PGRepository) ListProductTypes(ctx context.Context) ([]model.ProductType, error) {
	types := []model.ProductType{}
	err := r.DB.SelectContext(ctx, &types, `
        SELECT id, name
        FROM product_types
        ORDER BY name ASC
    `)
	return types, err
}

const variantColumns = `
    v.id, v.product_group_id, v.size, v.color, v.code, v.price,
    v.original_price, v.sale_price, v.composition, v.created_at, v.updated_at
`

func (r *PGRepository) FindVariants(ctx context.Context, filters *dto.VariantFilters) ([]model.ProductVariant, error) {
	variants := []model.ProductVariant{}

	query := `
        SELECT ` + variantColumns + `
        FROM product_variants v
    `
	args := map[string]interface{}{}

	if filters != nil && filters.Search != "" {
		query += `
        JOIN product_groups g ON g.id = v.product_group_id
        WHERE (g.name ILIKE :search
            OR v.color ILIKE :search
            OR v.composition ILIKE :search
            OR CAST(v.code AS TEXT) LIKE :search)
        `
		args["search"] = "%" + filters.Search + "%"
	}

	query += ` ORDER BY v.created_at DESC`

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &variants, args); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *PGRepository) FindVariantsByIDs(ctx context.Context, ids []int64) ([]model.ProductVariant, error) {
	if len(ids) == 0 {
		return []model.ProductVariant{}, nil
	}

	query, args, err := sqlx.In(`
        SELECT `+variantColumns+`
        FROM product_variants v
        WHERE v.id IN (?)
        ORDER BY v.created_at DESC
    `, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	variants := []model.ProductVariant{}
	if err := r.DB.SelectContext(ctx, &variants, query, args...); err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *PGRepository) FindVariantByID(ctx context.Context, id int64) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := r.DB.GetContext(ctx, &variant, `
        SELECT `+variantColumns+`
        FROM product_variants v
        WHERE v.id = $1
        LIMIT 1
    `, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	one := []model.ProductVariant{variant}
	if err := r.hydrate(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

type groupRow struct {
	model.ProductGroup
	BrandName        string  `db:"brand_name"`
	BrandDescription *string `db:"brand_description"`
	TypeName         string  `db:"type_name"`
}

// hydrate attaches group/brand/type, images and current inventory to the
// given variants with three batch queries.
func (r *PGRepository) hydrate(ctx context.Context, variants []model.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}

	variantIDs := make([]int64, 0, len(variants))
	groupIDSet := map[int64]struct{}{}
	groupIDs := []int64{}
	for i := range variants {
		variantIDs = append(variantIDs, variants[i].ID)
		if _, ok := groupIDSet[variants[i].ProductGroupID]; !ok {
			groupIDSet[variants[i].ProductGroupID] = struct{}{}
			groupIDs = append(groupIDs, variants[i].ProductGroupID)
		}
	}

	groups, err := r.loadGroups(ctx, groupIDs)
	if err != nil {
		return err
	}
	images, err := r.loadImages(ctx, variantIDs)
	if err != nil {
		return err
	}
	stock, err := r.loadInventory(ctx, variantIDs)
	if err != nil {
		return err
	}

	for i := range variants {
		v := &variants[i]
		v.Group = groups[v.ProductGroupID]
		v.Images = images[v.ID]
		if v.Images == nil {
			v.Images = []model.ProductImage{}
		}
		v.Inventory = stock[v.ID]
	}
	return nil
}

func (r *PGRepository) loadGroups(ctx context.Context, ids []int64) (map[int64]*model.ProductGroup, error) {
	query, args, err := sqlx.In(`
        SELECT g.id, g.name, g.description, g.brand_id, g.product_type_id,
               g.created_at, g.updated_at,
               b.name AS brand_name, b.description AS brand_description,
               t.name AS type_name
        FROM product_groups g
        JOIN brands b ON b.id = g.brand_id
        JOIN product_types t ON t.id = g.product_type_id
        WHERE g.id IN (?)
    `, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	rows := []groupRow{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	groups := make(map[int64]*model.ProductGroup, len(rows))
	for i := range rows {
		g := rows[i].ProductGroup
		g.Brand = &model.Brand{
			BaseModel:   model.BaseModel{ID: g.BrandID},
			Name:        rows[i].BrandName,
			Description: rows[i].BrandDescription,
		}
		g.ProductType = &model.ProductType{
			ID:   g.ProductTypeID,
			Name: rows[i].TypeName,
		}
		groups[g.ID] = &g
	}
	return groups, nil
}

func (r *PGRepository) loadImages(ctx context.Context, variantIDs []int64) (map[int64][]model.ProductImage, error) {
	query, args, err := sqlx.In(`
        SELECT id, product_id, url, url_cloudinary, alt_text, sort_order
        FROM product_images
        WHERE product_id IN (?)
        ORDER BY product_id, sort_order ASC
    `, variantIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	rows := []model.ProductImage{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	images := map[int64][]model.ProductImage{}
	for _, img := range rows {
		images[img.ProductID] = append(images[img.ProductID], img)
	}
	return images, nil
}

func (r *PGRepository) loadInventory(ctx context.Context, variantIDs []int64) (map[int64]*model.InventoryCurrent, error) {
	query, args, err := sqlx.In(`
        SELECT product_id, quantity, updated_at
        FROM inventory_current
        WHERE product_id IN (?)
    `, variantIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	rows := []model.InventoryCurrent{}
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	stock := make(map[int64]*model.InventoryCurrent, len(rows))
	for i := range rows {
		stock[rows[i].ProductID] = &rows[i]
	}
	return stock, nil
}
