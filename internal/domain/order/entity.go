package order

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems         = errors.New("order must have at least one item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativePrice   = errors.New("unit price cannot be negative")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// PaymentInfo is the gateway capture result, stored verbatim on the order as
// an opaque blob.
type PaymentInfo struct {
	Gateway   string `json:"gateway"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

func (p PaymentInfo) MarshalBlob() (json.RawMessage, error) {
	return json.Marshal(p)
}

type HistoryEntry struct {
	Status     Status
	RecordedAt time.Time
	Notes      *string
}

type Order struct {
	id              uuid.UUID
	storeID         uuid.UUID
	accountID       uuid.UUID
	items           []LineItem
	totalCents      int64
	shippingAddress ShippingAddress
	paymentInfo     json.RawMessage
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// NewOrder builds the aggregate for a successful saga run. The total always
// equals the sum of the line subtotals; callers do not pass it in.
func NewOrder(
	storeID, accountID uuid.UUID,
	items []LineItem,
	shippingAddress ShippingAddress,
	paymentInfo json.RawMessage,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}

	return &Order{
		id:              uuid.New(),
		storeID:         storeID,
		accountID:       accountID,
		items:           items,
		totalCents:      total,
		shippingAddress: shippingAddress,
		paymentInfo:     paymentInfo,
		status:          StatusReceived,
	}, nil
}

func ReconstructOrder(
	id, storeID, accountID uuid.UUID,
	items []LineItem,
	totalCents int64,
	shippingAddress ShippingAddress,
	paymentInfo json.RawMessage,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		storeID:         storeID,
		accountID:       accountID,
		items:           items,
		totalCents:      totalCents,
		shippingAddress: shippingAddress,
		paymentInfo:     paymentInfo,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Order) ID() uuid.UUID                    { return o.id }
func (o *Order) StoreID() uuid.UUID               { return o.storeID }
func (o *Order) AccountID() uuid.UUID             { return o.accountID }
func (o *Order) Items() []LineItem                { return o.items }
func (o *Order) TotalCents() int64                { return o.totalCents }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) PaymentInfo() json.RawMessage     { return o.paymentInfo }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
