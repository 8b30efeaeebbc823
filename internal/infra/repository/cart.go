package repository

import (
	"context"

	"shophub/internal/domain/cart"
	"shophub/internal/infra"
	"shophub/internal/infra/db"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

type CartRepository struct {
	db db.DBTX
}

func NewCartRepository(pool db.DBTX) *CartRepository {
	return &CartRepository{db: pool}
}

const getOrCreateCartSQL = `
INSERT INTO carts (id, account_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT (account_id) DO UPDATE SET account_id = EXCLUDED.account_id
RETURNING id`

// GetOrCreate returns the account's cart ID, creating the row on first use.
// The no-op conflict update makes RETURNING yield the existing ID.
func (r *CartRepository) GetOrCreate(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx, getOrCreateCartSQL, uuid.New(), accountID)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, classify("failed to get or create cart", err)
	}
	return id, nil
}

const upsertCartItemSQL = `
INSERT INTO cart_items (id, cart_id, product_id, quantity)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id`

// AddItem merges into an existing line for the same product.
func (r *CartRepository) AddItem(ctx context.Context, item cart.Item) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx, upsertCartItemSQL, item.ID(), item.CartID(), item.ProductID(), item.Quantity())
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, classify("failed to add cart item", err)
	}
	return id, nil
}

const selectCartItemForAccountSQL = `
SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity
FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
WHERE ci.id = $1 AND c.account_id = $2`

func (r *CartRepository) FindItemForAccount(ctx context.Context, itemID, accountID uuid.UUID) (*commands.CartItemSnapshot, error) {
	var snap commands.CartItemSnapshot
	row := r.db.QueryRow(ctx, selectCartItemForAccountSQL, itemID, accountID)
	if err := row.Scan(&snap.ID, &snap.CartID, &snap.ProductID, &snap.Quantity); err != nil {
		return nil, classify("failed to find cart item", err)
	}
	return &snap, nil
}

const updateCartItemQuantitySQL = `
UPDATE cart_items SET quantity = $2 WHERE id = $1`

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) error {
	tag, err := r.db.Exec(ctx, updateCartItemQuantitySQL, itemID, quantity)
	if err != nil {
		return classify("failed to update cart item quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteCartItemSQL = `
DELETE FROM cart_items WHERE id = $1`

func (r *CartRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteCartItemSQL, itemID)
	if err != nil {
		return classify("failed to remove cart item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}
