package queries

import (
	"context"
	"time"

	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

// Delivery estimate mirrors the tracking endpoint's original behavior: a flat
// hour from order creation. A carrier integration would replace this.
const deliveryEstimateWindow = time.Hour

type OrderViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*OrderListItem, error)
	FindNewByStoreID(ctx context.Context, storeID uuid.UUID) ([]*OrderListItem, error)
	FindStatusHistory(ctx context.Context, orderID uuid.UUID) ([]StatusHistoryEntry, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*OrderListItem, error)
	ListNewByStore(ctx context.Context, storeID uuid.UUID) ([]*OrderListItem, error)
	StatusByID(ctx context.Context, id uuid.UUID) (*OrderStatusView, error)
}

type orderQueriesImpl struct {
	repo OrderViewRepo
}

func NewOrderQueries(repo OrderViewRepo) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to find order")
	}
	return view, nil
}

func (q *orderQueriesImpl) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*OrderListItem, error) {
	items, err := q.repo.FindByStoreID(ctx, storeID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list store orders")
	}
	return items, nil
}

func (q *orderQueriesImpl) ListNewByStore(ctx context.Context, storeID uuid.UUID) ([]*OrderListItem, error) {
	items, err := q.repo.FindNewByStoreID(ctx, storeID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list new store orders")
	}
	return items, nil
}

func (q *orderQueriesImpl) StatusByID(ctx context.Context, id uuid.UUID) (*OrderStatusView, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := q.repo.FindStatusHistory(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load status history")
	}

	formatted := view.ShippingAddress.Street + ", " + view.ShippingAddress.Number +
		" - " + view.ShippingAddress.Neighborhood +
		", " + view.ShippingAddress.City + "/" + view.ShippingAddress.State

	return &OrderStatusView{
		OrderID:          view.ID,
		CurrentStatus:    view.Status,
		LastUpdate:       view.UpdatedAt,
		TotalCents:       view.TotalCents,
		DeliveryEstimate: view.CreatedAt.Add(deliveryEstimateWindow),
		ShippingAddress:  formatted,
		History:          history,
	}, nil
}
