package order

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// LineItem is a priced order line. The unit price is a point-in-time snapshot
// taken when the order is placed, not a reference to the live product price.
type LineItem struct {
	productID      uuid.UUID
	quantity       int32
	unitPriceCents int64
}

func NewLineItem(productID uuid.UUID, quantity int32, unitPriceCents int64) (LineItem, error) {
	if productID == uuid.Nil {
		return LineItem{}, errors.New("product id is required")
	}
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return LineItem{}, ErrNegativePrice
	}
	return LineItem{
		productID:      productID,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
	}, nil
}

func (li LineItem) ProductID() uuid.UUID  { return li.productID }
func (li LineItem) Quantity() int32       { return li.quantity }
func (li LineItem) UnitPriceCents() int64 { return li.unitPriceCents }

func (li LineItem) SubtotalCents() int64 {
	return int64(li.quantity) * li.unitPriceCents
}

// ShippingAddress is structured but free-form; no field is validated beyond
// presence of the street and city used by the tracking view.
type ShippingAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	CEP          string `json:"cep"`
}

func (a ShippingAddress) Format() string {
	return fmt.Sprintf("%s, %s - %s, %s/%s", a.Street, a.Number, a.Neighborhood, a.City, a.State)
}
