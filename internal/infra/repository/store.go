package repository

import (
	"context"

	"shophub/internal/domain/store"
	"shophub/internal/infra/db"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

type StoreRepository struct {
	db db.DBTX
}

func NewStoreRepository(pool db.DBTX) *StoreRepository {
	return &StoreRepository{db: pool}
}

const insertStoreSQL = `
INSERT INTO stores (id, account_id, name, description, address, cep, delivery_fee_cents, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING id`

func (r *StoreRepository) Create(ctx context.Context, s *store.Store) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx, insertStoreSQL,
		s.ID(), s.AccountID(), s.Name(), s.Description(), s.Address(), s.CEP(), s.DeliveryFeeCents())
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, classify("failed to create store", err)
	}
	return id, nil
}

const selectStoreByIDSQL = `
SELECT id, account_id, name, cep, delivery_fee_cents FROM stores WHERE id = $1`

func (r *StoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.StoreSnapshot, error) {
	var snap commands.StoreSnapshot
	row := r.db.QueryRow(ctx, selectStoreByIDSQL, id)
	if err := row.Scan(&snap.ID, &snap.AccountID, &snap.Name, &snap.CEP, &snap.DeliveryFeeCents); err != nil {
		return nil, classify("failed to find store", err)
	}
	return &snap, nil
}
