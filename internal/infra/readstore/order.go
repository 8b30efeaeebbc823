package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"shophub/internal/infra"
	"shophub/internal/infra/db"
	"shophub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(pool db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: pool}
}

const selectOrderByIDSQL = `
SELECT id, store_id, account_id, total_cents, status, shipping_address, payment_info, created_at, updated_at
FROM orders
WHERE id = $1`

const selectOrderItemsSQL = `
SELECT product_id, quantity, unit_price_cents
FROM order_items
WHERE order_id = $1
ORDER BY product_id`

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		view        queries.OrderView
		addressJSON []byte
	)
	row := r.db.QueryRow(ctx, selectOrderByIDSQL, id)
	err := row.Scan(&view.ID, &view.StoreID, &view.AccountID, &view.TotalCents, &view.Status,
		&addressJSON, &view.PaymentInfo, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	if err := json.Unmarshal(addressJSON, &view.ShippingAddress); err != nil {
		return nil, infra.WrapRepoErr("failed to decode shipping address", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, selectOrderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var item queries.OrderItemView
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order items", err)
	}

	return items, nil
}

const selectOrdersByStoreSQL = `
SELECT id, account_id, total_cents, status, created_at
FROM orders
WHERE store_id = $1
ORDER BY created_at DESC, id DESC`

func (r *OrderReadStore) FindByStoreID(ctx context.Context, storeID uuid.UUID) ([]*queries.OrderListItem, error) {
	return r.listOrders(ctx, selectOrdersByStoreSQL, storeID)
}

const selectNewOrdersByStoreSQL = `
SELECT id, account_id, total_cents, status, created_at
FROM orders
WHERE store_id = $1 AND status = 'received'
ORDER BY created_at ASC, id ASC`

// FindNewByStoreID is the store dashboard's work queue: only orders that have
// not been picked up yet, oldest first.
func (r *OrderReadStore) FindNewByStoreID(ctx context.Context, storeID uuid.UUID) ([]*queries.OrderListItem, error) {
	return r.listOrders(ctx, selectNewOrdersByStoreSQL, storeID)
}

func (r *OrderReadStore) listOrders(ctx context.Context, sql string, storeID uuid.UUID) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, sql, storeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	result := make([]*queries.OrderListItem, 0)
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(&item.ID, &item.AccountID, &item.TotalCents, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate orders", err)
	}

	return result, nil
}

const selectStatusHistorySQL = `
SELECT status, recorded_at, notes
FROM order_status_history
WHERE order_id = $1
ORDER BY recorded_at ASC, id ASC`

func (r *OrderReadStore) FindStatusHistory(ctx context.Context, orderID uuid.UUID) ([]queries.StatusHistoryEntry, error) {
	rows, err := r.db.Query(ctx, selectStatusHistorySQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find status history", err)
	}
	defer rows.Close()

	history := make([]queries.StatusHistoryEntry, 0)
	for rows.Next() {
		var entry queries.StatusHistoryEntry
		if err := rows.Scan(&entry.Status, &entry.RecordedAt, &entry.Notes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status history entry", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status history", err)
	}

	return history, nil
}
