package queries

import (
	"context"

	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrStoreNotFound = errs.New("store not found")

type StoreViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StoreView, error)
}

type StoreQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StoreView, error)
}

type storeQueriesImpl struct {
	repo StoreViewRepo
}

func NewStoreQueries(repo StoreViewRepo) StoreQueries {
	return &storeQueriesImpl{repo: repo}
}

func (q *storeQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*StoreView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, errs.Wrap(err, "failed to find store")
	}
	return view, nil
}
