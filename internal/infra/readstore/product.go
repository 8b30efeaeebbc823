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

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(pool db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: pool}
}

const selectProductViewSQL = `
SELECT id, store_id, name, description, price_cents, stock, ready_delivery, created_at, updated_at
FROM products
WHERE id = $1`

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	var view queries.ProductView
	row := r.db.QueryRow(ctx, selectProductViewSQL, id)
	err := row.Scan(&view.ID, &view.StoreID, &view.Name, &view.Description,
		&view.PriceCents, &view.Stock, &view.ReadyDelivery, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	view.InStock = view.Stock > 0
	return &view, nil
}

const selectProductsByStoreSQL = `
SELECT id, store_id, name, description, price_cents, stock, ready_delivery, created_at, updated_at
FROM products
WHERE store_id = $1
ORDER BY name ASC`

func (r *ProductReadStore) FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, selectProductsByStoreSQL, storeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list store products", err)
	}
	defer rows.Close()

	result := make([]*queries.ProductView, 0)
	for rows.Next() {
		var view queries.ProductView
		err := rows.Scan(&view.ID, &view.StoreID, &view.Name, &view.Description,
			&view.PriceCents, &view.Stock, &view.ReadyDelivery, &view.CreatedAt, &view.UpdatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		view.InStock = view.Stock > 0
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate products", err)
	}

	return result, nil
}
