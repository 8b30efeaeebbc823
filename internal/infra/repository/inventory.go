package repository

import (
	"context"

	"shophub/internal/infra"
	"shophub/internal/infra/db"

	"github.com/google/uuid"
)

// InventoryRepository mutates the per-product stock counter. Each call is a
// single auto-committed statement against the pool: reservations made by the
// order flow are durable the moment they return, independent of any
// surrounding transaction.
type InventoryRepository struct {
	db db.DBTX
}

func NewInventoryRepository(pool db.DBTX) *InventoryRepository {
	return &InventoryRepository{db: pool}
}

const decrementStockSQL = `
UPDATE products SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2`

// Decrement reserves stock with a conditional update. The stock >= quantity
// predicate closes the read-then-write race: two concurrent calls for the
// last unit serialize on the row lock and exactly one matches.
func (r *InventoryRepository) Decrement(ctx context.Context, productID uuid.UUID, quantity int32) error {
	tag, err := r.db.Exec(ctx, decrementStockSQL, productID, quantity)
	if err != nil {
		return classify("failed to decrement stock", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyDecrementMiss(ctx, productID)
	}
	return nil
}

const productExistsSQL = `
SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`

// A zero-row decrement is either a missing product or not enough stock; one
// extra lookup tells them apart.
func (r *InventoryRepository) classifyDecrementMiss(ctx context.Context, productID uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, productExistsSQL, productID).Scan(&exists); err != nil {
		return classify("failed to check product existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("insufficient stock", nil, infra.KindInsufficientStock)
}

const incrementStockSQL = `
UPDATE products SET stock = stock + $2, updated_at = now()
WHERE id = $1`

func (r *InventoryRepository) Increment(ctx context.Context, productID uuid.UUID, quantity int32) error {
	tag, err := r.db.Exec(ctx, incrementStockSQL, productID, quantity)
	if err != nil {
		return classify("failed to increment stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
