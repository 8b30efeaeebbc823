package commands

import (
	"context"

	"shophub/internal/domain/store"
	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrStoreAlreadyExists = errs.New("account already owns a store")
	ErrStoreNotFound      = errs.New("store not found")
)

type CreateStoreInput struct {
	Name             string
	Description      string
	Address          string
	CEP              string
	DeliveryFeeCents int64
}

type StoreCommands interface {
	Create(ctx context.Context, accountID uuid.UUID, input CreateStoreInput) (uuid.UUID, error)
}

type storeUseCaseImpl struct {
	storeRepo StoreRepository
}

func NewStoreUseCase(storeRepo StoreRepository) StoreCommands {
	return &storeUseCaseImpl{storeRepo: storeRepo}
}

// Create enforces one store per account via the unique constraint on
// account_id rather than a read-then-insert check.
func (u *storeUseCaseImpl) Create(ctx context.Context, accountID uuid.UUID, input CreateStoreInput) (uuid.UUID, error) {
	s, err := store.NewStore(accountID, input.Name, input.Description, input.Address, input.CEP, input.DeliveryFeeCents)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := u.storeRepo.Create(ctx, s)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrStoreAlreadyExists
		}
		return uuid.Nil, errs.Wrap(err, "failed to create store")
	}

	return id, nil
}
