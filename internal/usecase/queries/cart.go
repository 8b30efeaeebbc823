package queries

import (
	"context"

	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

type CartViewRepo interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*CartView, error)
}

type CartQueries interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	repo CartViewRepo
}

func NewCartQueries(repo CartViewRepo) CartQueries {
	return &cartQueriesImpl{repo: repo}
}

// GetByAccount returns an empty cart view when none exists yet; the cart row
// is only created on first AddItem.
func (q *cartQueriesImpl) GetByAccount(ctx context.Context, accountID uuid.UUID) (*CartView, error) {
	view, err := q.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &CartView{
				ID:        uuid.New(),
				AccountID: accountID,
				Items:     []CartItemView{},
			}, nil
		}
		return nil, errs.Wrap(err, "failed to find cart")
	}
	return view, nil
}
