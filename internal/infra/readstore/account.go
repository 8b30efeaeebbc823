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

type AccountReadStore struct {
	db db.DBTX
}

func NewAccountReadStore(pool db.DBTX) *AccountReadStore {
	return &AccountReadStore{db: pool}
}

const selectAccountViewSQL = `
SELECT id, email, created_at FROM accounts WHERE id = $1`

func (r *AccountReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AccountView, error) {
	var view queries.AccountView
	row := r.db.QueryRow(ctx, selectAccountViewSQL, id)
	if err := row.Scan(&view.ID, &view.Email, &view.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find account by ID", err)
	}
	return &view, nil
}
