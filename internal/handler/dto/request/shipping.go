package request

import "github.com/google/uuid"

type ShippingQuoteRequest struct {
	StoreID        uuid.UUID `json:"store_id" binding:"required"`
	DestinationCEP string    `json:"destination_cep" binding:"required"`
}
