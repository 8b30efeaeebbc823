package repository

import (
	"context"

	"shophub/internal/domain/product"
	"shophub/internal/infra/db"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(pool db.DBTX) *ProductRepository {
	return &ProductRepository{db: pool}
}

const insertProductSQL = `
INSERT INTO products (id, store_id, name, description, price_cents, stock, ready_delivery, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING id`

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx, insertProductSQL,
		p.ID(), p.StoreID(), p.Name(), p.Description(), p.PriceCents(), p.Stock(), p.ReadyDelivery())
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, classify("failed to create product", err)
	}
	return id, nil
}

const selectProductByIDSQL = `
SELECT id, store_id, name, price_cents, stock FROM products WHERE id = $1`

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ProductSnapshot, error) {
	var snap commands.ProductSnapshot
	row := r.db.QueryRow(ctx, selectProductByIDSQL, id)
	if err := row.Scan(&snap.ID, &snap.StoreID, &snap.Name, &snap.PriceCents, &snap.Stock); err != nil {
		return nil, classify("failed to find product", err)
	}
	return &snap, nil
}
