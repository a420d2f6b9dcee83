package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/altarajoyas/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) VariantExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) MaxSortOrder(ctx context.Context, productID int64) (int, error) {
	var max int
	err := r.DB.GetContext(ctx, &max,
		`SELECT COALESCE(MAX(sort_order), 0) FROM product_images WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("read max sort_order: %w", err)
	}
	return max, nil
}

func (r *PGRepository) InsertImage(ctx context.Context, img *model.ProductImage) error {
	err := r.DB.QueryRowxContext(ctx, `
        INSERT INTO product_images (product_id, url, url_cloudinary, alt_text, sort_order)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, img.ProductID, img.URL, img.URLCloudinary, img.AltText, img.SortOrder).Scan(&img.ID)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}
