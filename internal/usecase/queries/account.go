package queries

import (
	"context"

	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAccountNotFound = errs.New("account not found")

type AccountViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountView, error)
}

type AccountQueries interface {
	GetCurrentAccount(ctx context.Context, id uuid.UUID) (*AccountView, error)
}

type accountQueriesImpl struct {
	repo AccountViewRepo
}

func NewAccountQueries(repo AccountViewRepo) AccountQueries {
	return &accountQueriesImpl{repo: repo}
}

func (q *accountQueriesImpl) GetCurrentAccount(ctx context.Context, id uuid.UUID) (*AccountView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, errs.Wrap(err, "failed to find account")
	}
	return view, nil
}
