package readstore

import (
	"context"
	"errors"

	"shophub/internal/infra"
	"shophub/internal/infra/db"
	"shophub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(pool db.DBTX) *CartReadStore {
	return &CartReadStore{db: pool}
}

const selectCartByAccountSQL = `
SELECT id, account_id FROM carts WHERE account_id = $1`

const selectCartItemsSQL = `
SELECT ci.id, ci.product_id, p.name, ci.quantity, p.price_cents
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY p.name ASC`

// FindByAccountID joins live product prices into the view; cart lines hold no
// price snapshot of their own.
func (r *CartReadStore) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*queries.CartView, error) {
	var view queries.CartView
	row := r.db.QueryRow(ctx, selectCartByAccountSQL, accountID)
	if err := row.Scan(&view.ID, &view.AccountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}

	rows, err := r.db.Query(ctx, selectCartItemsSQL, view.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cart items", err)
	}
	defer rows.Close()

	view.Items = make([]queries.CartItemView, 0)
	for rows.Next() {
		var item queries.CartItemView
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		item.SubtotalCents = int64(item.Quantity) * item.UnitPriceCents
		view.TotalCents += item.SubtotalCents
		view.Items = append(view.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cart items", err)
	}

	return &view, nil
}
