package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/altarajoyas/catalog-service/internal/inventory"
	"github.com/altarajoyas/catalog-service/internal/inventory/dto"
	"github.com/altarajoyas/catalog-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) UpdateVariantWithStock(ctx context.Context, input *dto.UpdateVariantInput) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	// 1. Overwrite the editable variant fields.
	res, err := tx.ExecContext(ctx, `
        UPDATE product_variants
        SET size = $1,
            color = $2,
            code = $3,
            price = $4,
            original_price = $5,
            sale_price = $6,
            composition = $7,
            updated_at = $8
        WHERE id = $9
    `,
		input.Size, input.Color, input.Code, input.Price,
		input.OriginalPrice, input.SalePrice, input.Composition,
		now, input.ProductID,
	)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return inventory.ErrVariantNotFound
	}

	// 2. Read the previous quantity under lock so the movement row is
	// derived from a stable value.
	before, err := lockQuantity(ctx, tx, input.ProductID)
	if err != nil {
		return err
	}

	if err := upsertQuantity(ctx, tx, input.ProductID, input.Quantity, now); err != nil {
		return err
	}

	// 3. Ledger row, only when the quantity actually changed.
	if before != input.Quantity {
		m := &model.InventoryMovement{
			ProductID:      input.ProductID,
			MovementType:   movementType(input.Quantity - before),
			QuantityChange: input.Quantity - before,
			QuantityBefore: before,
			QuantityAfter:  input.Quantity,
			Notes:          "inventory update",
			CreatedAt:      now,
		}
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PGRepository) AdjustStock(ctx context.Context, productID, change int64, notes string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	before, err := lockQuantity(ctx, tx, productID)
	if err != nil {
		return err
	}

	after := before + change
	if after < 0 {
		return inventory.ErrInsufficientStock
	}

	if err := upsertQuantity(ctx, tx, productID, after, now); err != nil {
		return err
	}

	m := &model.InventoryMovement{
		ProductID:      productID,
		MovementType:   movementType(change),
		QuantityChange: change,
		QuantityBefore: before,
		QuantityAfter:  after,
		Notes:          notes,
		CreatedAt:      now,
	}
	if err := insertMovement(ctx, tx, m); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PGRepository) GetVariantSearchDoc(ctx context.Context, productID int64) (*dto.VariantDoc, error) {
	var doc dto.VariantDoc
	err := r.DB.GetContext(ctx, &doc, `
        SELECT v.id, v.code, v.size, v.color, v.composition, v.price,
               g.name AS group_name, b.name AS brand_name, t.name AS type_name
        FROM product_variants v
        JOIN product_groups g ON g.id = v.product_group_id
        JOIN brands b ON b.id = g.brand_id
        JOIN product_types t ON t.id = g.product_type_id
        WHERE v.id = $1
    `, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// lockQuantity returns the current quantity with a row lock held for the
// rest of the transaction, or 0 when no inventory row exists yet.
func lockQuantity(ctx context.Context, tx *sqlx.Tx, productID int64) (int64, error) {
	var quantity int64
	err := tx.GetContext(ctx, &quantity,
		`SELECT quantity FROM inventory_current WHERE product_id = $1 FOR UPDATE`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("read current quantity: %w", err)
	}
	return quantity, nil
}

func upsertQuantity(ctx context.Context, tx *sqlx.Tx, productID, quantity int64, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
        INSERT INTO inventory_current (product_id, quantity, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (product_id)
        DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
    `, productID, quantity, now)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

func insertMovement(ctx context.Context, tx *sqlx.Tx, m *model.InventoryMovement) error {
	_, err := tx.NamedExecContext(ctx, `
        INSERT INTO inventory_movements (
            product_id, movement_type, quantity_change,
            quantity_before, quantity_after, notes, created_at
        )
        VALUES (
            :product_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :notes, :created_at
        )
    `, m)
	if err != nil {
		return fmt.Errorf("log movement: %w", err)
	}
	return nil
}

func movementType(change int64) string {
	if change < 0 {
		return model.MovementOut
	}
	return model.MovementIn
}
