package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Item prices are not snapshotted here; cart totals follow the live product
// price until checkout turns lines into order items.
type Item struct {
	id        uuid.UUID
	cartID    uuid.UUID
	productID uuid.UUID
	quantity  int32
}

func NewItem(cartID, productID uuid.UUID, quantity int32) (Item, error) {
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}
	return Item{
		id:        uuid.New(),
		cartID:    cartID,
		productID: productID,
		quantity:  quantity,
	}, nil
}

func (i Item) ID() uuid.UUID        { return i.id }
func (i Item) CartID() uuid.UUID    { return i.cartID }
func (i Item) ProductID() uuid.UUID { return i.productID }
func (i Item) Quantity() int32      { return i.quantity }

type Cart struct {
	id        uuid.UUID
	accountID uuid.UUID
	createdAt time.Time
}

func NewCart(accountID uuid.UUID) *Cart {
	return &Cart{
		id:        uuid.New(),
		accountID: accountID,
	}
}

func ReconstructCart(id, accountID uuid.UUID, createdAt time.Time) *Cart {
	return &Cart{
		id:        id,
		accountID: accountID,
		createdAt: createdAt,
	}
}

func (c *Cart) ID() uuid.UUID        { return c.id }
func (c *Cart) AccountID() uuid.UUID { return c.accountID }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
