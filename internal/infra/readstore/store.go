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

type StoreReadStore struct {
	db db.DBTX
}

func NewStoreReadStore(pool db.DBTX) *StoreReadStore {
	return &StoreReadStore{db: pool}
}

const selectStoreViewSQL = `
SELECT id, account_id, name, description, address, cep, delivery_fee_cents, created_at, updated_at
FROM stores
WHERE id = $1`

func (r *StoreReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.StoreView, error) {
	var view queries.StoreView
	row := r.db.QueryRow(ctx, selectStoreViewSQL, id)
	err := row.Scan(&view.ID, &view.AccountID, &view.Name, &view.Description,
		&view.Address, &view.CEP, &view.DeliveryFeeCents, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("store not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find store by ID", err)
	}
	return &view, nil
}
