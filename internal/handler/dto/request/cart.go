package request

import "github.com/google/uuid"

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}
