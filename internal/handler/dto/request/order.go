package request

import (
	"shophub/internal/domain/order"
	"shophub/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	Quantity       int32     `json:"quantity" binding:"required,min=1"`
	UnitPriceCents int64     `json:"unit_price_cents" binding:"gte=0"`
}

type ShippingAddressRequest struct {
	Street       string `json:"street" binding:"required"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state"`
	CEP          string `json:"cep"`
}

type PaymentMethodRequest struct {
	Provider   string `json:"provider" binding:"required"`
	Reference  string `json:"reference" binding:"required"`
	MethodType string `json:"method_type"`
}

type PlaceOrderRequest struct {
	StoreID         uuid.UUID              `json:"store_id" binding:"required"`
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   PaymentMethodRequest   `json:"payment_method" binding:"required"`
}

func (r PlaceOrderRequest) ToInput(accountID uuid.UUID) commands.PlaceOrderInput {
	items := make([]commands.PlaceOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, commands.PlaceOrderItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	return commands.PlaceOrderInput{
		StoreID:   r.StoreID,
		AccountID: accountID,
		Items:     items,
		ShippingAddress: order.ShippingAddress{
			Street:       r.ShippingAddress.Street,
			Number:       r.ShippingAddress.Number,
			Neighborhood: r.ShippingAddress.Neighborhood,
			City:         r.ShippingAddress.City,
			State:        r.ShippingAddress.State,
			CEP:          r.ShippingAddress.CEP,
		},
		PaymentMethod: commands.PaymentMethod{
			Provider:   r.PaymentMethod.Provider,
			Reference:  r.PaymentMethod.Reference,
			MethodType: r.PaymentMethod.MethodType,
		},
	}
}

type UpdateOrderStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}
