package queries

import (
	"context"

	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

type ProductViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*ProductView, error)
}

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*ProductView, error)
}

type productQueriesImpl struct {
	repo ProductViewRepo
}

func NewProductQueries(repo ProductViewRepo) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Wrap(err, "failed to find product")
	}
	return view, nil
}

func (q *productQueriesImpl) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*ProductView, error) {
	views, err := q.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list store products")
	}
	return views, nil
}
