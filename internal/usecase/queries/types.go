package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	CEP          string `json:"cep"`
}

type OrderItemView struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	StoreID         uuid.UUID       `json:"store_id"`
	AccountID       uuid.UUID       `json:"account_id"`
	TotalCents      int64           `json:"total_cents"`
	Status          string          `json:"status"`
	ShippingAddress Address         `json:"shipping_address"`
	PaymentInfo     json.RawMessage `json:"payment_info"`
	Items           []OrderItemView `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderListItem struct {
	ID         uuid.UUID `json:"id"`
	AccountID  uuid.UUID `json:"account_id"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatusHistoryEntry struct {
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"timestamp"`
	Notes      *string   `json:"notes,omitempty"`
}

type OrderStatusView struct {
	OrderID          uuid.UUID            `json:"order_id"`
	CurrentStatus    string               `json:"current_status"`
	LastUpdate       time.Time            `json:"last_update"`
	TotalCents       int64                `json:"total_cents"`
	DeliveryEstimate time.Time            `json:"delivery_estimate"`
	ShippingAddress  string               `json:"shipping_address"`
	History          []StatusHistoryEntry `json:"history"`
}

type ProductView struct {
	ID            uuid.UUID `json:"id"`
	StoreID       uuid.UUID `json:"store_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"price_cents"`
	Stock         int32     `json:"stock"`
	InStock       bool      `json:"in_stock"`
	ReadyDelivery bool      `json:"ready_delivery"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StoreView struct {
	ID               uuid.UUID `json:"id"`
	AccountID        uuid.UUID `json:"account_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Address          string    `json:"address"`
	CEP              string    `json:"cep"`
	DeliveryFeeCents int64     `json:"delivery_fee_cents"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CartItemView struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	SubtotalCents  int64     `json:"subtotal_cents"`
}

type CartView struct {
	ID         uuid.UUID      `json:"id"`
	AccountID  uuid.UUID      `json:"account_id"`
	Items      []CartItemView `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
