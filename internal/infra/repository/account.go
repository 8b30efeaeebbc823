package repository

import (
	"context"

	"shophub/internal/domain/account"
	"shophub/internal/infra/db"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

type AccountRepository struct {
	db db.DBTX
}

func NewAccountRepository(pool db.DBTX) *AccountRepository {
	return &AccountRepository{db: pool}
}

const insertAccountSQL = `
INSERT INTO accounts (id, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
RETURNING id`

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx, insertAccountSQL, a.ID(), a.Email().String(), a.PasswordHash())
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, classify("failed to create account", err)
	}
	return id, nil
}

const selectAccountByEmailSQL = `
SELECT id, email, password_hash FROM accounts WHERE email = $1`

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*commands.AccountSnapshot, error) {
	var snap commands.AccountSnapshot
	row := r.db.QueryRow(ctx, selectAccountByEmailSQL, email)
	if err := row.Scan(&snap.ID, &snap.Email, &snap.PasswordHash); err != nil {
		return nil, classify("failed to find account by email", err)
	}
	return &snap, nil
}
