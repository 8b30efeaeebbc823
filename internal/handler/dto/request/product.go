package request

import "github.com/google/uuid"

type CreateProductRequest struct {
	StoreID       uuid.UUID `json:"store_id" binding:"required"`
	Name          string    `json:"name" binding:"required"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"price_cents" binding:"gte=0"`
	Stock         int32     `json:"stock" binding:"gte=0"`
	ReadyDelivery bool      `json:"ready_delivery"`
}
