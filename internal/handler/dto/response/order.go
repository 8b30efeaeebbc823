package response

import (
	"encoding/json"
	"time"

	"shophub/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	StoreID         uuid.UUID           `json:"store_id"`
	AccountID       uuid.UUID           `json:"account_id"`
	TotalCents      int64               `json:"total_cents"`
	Status          string              `json:"status"`
	ShippingAddress queries.Address     `json:"shipping_address"`
	PaymentInfo     json.RawMessage     `json:"payment_info"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  int64(item.Quantity) * item.UnitPriceCents,
		})
	}

	return &OrderResponse{
		ID:              view.ID,
		StoreID:         view.StoreID,
		AccountID:       view.AccountID,
		TotalCents:      view.TotalCents,
		Status:          view.Status,
		ShippingAddress: view.ShippingAddress,
		PaymentInfo:     view.PaymentInfo,
		Items:           items,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}
