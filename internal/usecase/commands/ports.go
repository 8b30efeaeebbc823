package commands

import (
	"context"
	"time"

	"shophub/internal/domain/account"
	"shophub/internal/domain/cart"
	"shophub/internal/domain/order"
	"shophub/internal/domain/product"
	"shophub/internal/domain/store"
	"shophub/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)

type ProductSnapshot struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	Name       string
	PriceCents int64
	Stock      int32
}

type StoreSnapshot struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	Name             string
	CEP              string
	DeliveryFeeCents int64
}

type AccountSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

type CartItemSnapshot struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	AccountID     uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

// Reservation records what the saga decremented, solely to drive release.
type Reservation struct {
	ProductID uuid.UUID
	Quantity  int32
}

// InventoryRepository operates on the per-product stock counter. Decrement is
// a single conditional statement (no read-then-write window) and both
// operations commit durably on their own, independent of the order
// transaction.
type InventoryRepository interface {
	Decrement(ctx context.Context, productID uuid.UUID, quantity int32) error
	Increment(ctx context.Context, productID uuid.UUID, quantity int32) error
}

type PaymentMethod struct {
	Provider   string `json:"provider"`
	Reference  string `json:"reference"`
	MethodType string `json:"method_type"`
}

type CaptureResult struct {
	Gateway     string
	Reference   string
	AmountCents int64
	Status      string
}

func (r *CaptureResult) Succeeded() bool {
	return r != nil && r.Status == "succeeded"
}

type PaymentGateway interface {
	Capture(ctx context.Context, amountCents int64, method PaymentMethod) (*CaptureResult, error)
}

type OrderRepository interface {
	// Create inserts the order header and all items; run inside a transaction.
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	// StatusForUpdate locks the order row and returns its current status.
	StatusForUpdate(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (order.Status, error)
	// UpdateStatus sets the new status, bumps updated_at and appends the
	// history row in the same transaction.
	UpdateStatus(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status order.Status, notes *string, at time.Time) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, accountID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, accountID uuid.UUID) (*IdempotencyRecord, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, accountID uuid.UUID, responseBodyHash string, resultOrderID uuid.UUID) error
}

type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (*AccountSnapshot, error)
}

type StoreRepository interface {
	Create(ctx context.Context, s *store.Store) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*StoreSnapshot, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
}

type CartRepository interface {
	GetOrCreate(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error)
	AddItem(ctx context.Context, item cart.Item) (uuid.UUID, error)
	FindItemForAccount(ctx context.Context, itemID, accountID uuid.UUID) (*CartItemSnapshot, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
}
