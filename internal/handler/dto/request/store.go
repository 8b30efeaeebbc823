package request

type CreateStoreRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	CEP              string `json:"cep" binding:"required"`
	DeliveryFeeCents int64  `json:"delivery_fee_cents" binding:"gte=0"`
}
