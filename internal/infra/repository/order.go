package repository

import (
	"context"
	"encoding/json"
	"time"

	"shophub/internal/domain/order"
	"shophub/internal/infra"
	"shophub/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const insertOrderSQL = `
INSERT INTO orders (id, store_id, account_id, total_cents, status, shipping_address, payment_info, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING id`

const insertOrderItemSQL = `
INSERT INTO order_items (id, order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)`

// Create inserts the order header and all line items. Callers run it inside a
// transaction so the order never appears without its items.
func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	address, err := json.Marshal(o.ShippingAddress())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to marshal shipping address", err)
	}

	var orderID uuid.UUID
	row := tx.QueryRow(ctx, insertOrderSQL,
		o.ID(), o.StoreID(), o.AccountID(), o.TotalCents(), string(o.Status()), address, []byte(o.PaymentInfo()))
	if err := row.Scan(&orderID); err != nil {
		return uuid.Nil, classify("failed to create order", err)
	}

	for _, item := range o.Items() {
		if _, err := tx.Exec(ctx, insertOrderItemSQL,
			uuid.New(), orderID, item.ProductID(), item.Quantity(), item.UnitPriceCents()); err != nil {
			return uuid.Nil, classify("failed to create order item", err)
		}
	}

	return orderID, nil
}

const selectStatusForUpdateSQL = `
SELECT status FROM orders WHERE id = $1 FOR UPDATE`

func (r *OrderRepository) StatusForUpdate(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (order.Status, error) {
	var raw string
	if err := tx.QueryRow(ctx, selectStatusForUpdateSQL, orderID).Scan(&raw); err != nil {
		return "", classify("failed to lock order", err)
	}

	status, err := order.ParseStatus(raw)
	if err != nil {
		return "", infra.WrapRepoErr("stored order status is unknown", err)
	}
	return status, nil
}

const updateOrderStatusSQL = `
UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`

const insertStatusHistorySQL = `
INSERT INTO order_status_history (id, order_id, status, notes, recorded_at)
VALUES ($1, $2, $3, $4, $5)`

// UpdateStatus sets the new status and appends the matching history row. Both
// statements share the caller's transaction, so the current status and the
// last history entry never diverge.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status order.Status, notes *string, at time.Time) error {
	tag, err := tx.Exec(ctx, updateOrderStatusSQL, orderID, string(status), at)
	if err != nil {
		return classify("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}

	if _, err := tx.Exec(ctx, insertStatusHistorySQL, uuid.New(), orderID, string(status), notes, at); err != nil {
		return classify("failed to append status history", err)
	}

	return nil
}
