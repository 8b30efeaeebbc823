package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"shophub/internal/domain/order"
	"shophub/internal/infra"
	"shophub/internal/pkg/clock"
	"shophub/internal/pkg/errs"
	"shophub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrPaymentFailed           = errs.New("payment failed")
	ErrInvalidStatus           = errs.New("invalid order status")
	ErrOrderNotFound           = errs.New("order not found")
	ErrDuplicateOrder          = errs.New("duplicate order request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrOrderProcessing         = errs.New("order processing failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// InsufficientStockError names the first product whose reservation failed.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for product " + e.ProductID.String()
}

// PaymentFailedError carries the gateway's decline reason.
type PaymentFailedError struct {
	Reason string
}

func (e *PaymentFailedError) Error() string {
	return "payment failed: " + e.Reason
}

type PlaceOrderItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type PlaceOrderInput struct {
	StoreID         uuid.UUID             `json:"store_id"`
	AccountID       uuid.UUID             `json:"account_id"`
	Items           []PlaceOrderItem      `json:"items"`
	ShippingAddress order.ShippingAddress `json:"shipping_address"`
	PaymentMethod   PaymentMethod         `json:"payment_method"`
}

type PlaceOrderResult struct {
	Order      *queries.OrderView
	IsReplayed bool
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput, idempotencyKey uuid.UUID) (*PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus string, notes *string) (*queries.OrderStatusView, error)
}

type orderUseCaseImpl struct {
	orderRepo       OrderRepository
	inventoryRepo   InventoryRepository
	idempotencyRepo IdempotencyRepository
	gateway         PaymentGateway
	orderQueries    queries.OrderQueries
	db              *pgxpool.Pool
	clock           clock.Clock
}

func NewOrderUseCase(
	orderRepo OrderRepository,
	inventoryRepo InventoryRepository,
	idempotencyRepo IdempotencyRepository,
	gateway PaymentGateway,
	orderQueries queries.OrderQueries,
	db *pgxpool.Pool,
	clock clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		orderRepo:       orderRepo,
		inventoryRepo:   inventoryRepo,
		idempotencyRepo: idempotencyRepo,
		gateway:         gateway,
		orderQueries:    orderQueries,
		db:              db,
		clock:           clock,
	}
}

// PlaceOrder runs the three-step placement flow: reserve stock per line item,
// capture payment for the computed total, persist the order with its items.
// Each step completes durably before the next starts; any failure after a
// partial reservation releases exactly what was decremented.
func (u *orderUseCaseImpl) PlaceOrder(
	ctx context.Context,
	input PlaceOrderInput,
	idempotencyKey uuid.UUID,
) (*PlaceOrderResult, error) {
	requestHash := u.calculateRequestHash(input)
	expiresAt := u.clock.Now().Add(24 * time.Hour)

	existing, err := u.handleIdempotency(ctx, idempotencyKey, input.AccountID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &PlaceOrderResult{Order: existing, IsReplayed: true}, nil
	}

	items, err := u.buildLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	// Step 1: reserve. All-or-nothing across the item list.
	reserved, err := u.reserveInventory(ctx, items)
	if err != nil {
		return nil, err
	}

	// Step 2: pay.
	captureBlob, err := u.capturePayment(ctx, items, input.PaymentMethod, reserved)
	if err != nil {
		return nil, err
	}

	// Step 3: persist.
	orderEntity, err := order.NewOrder(input.StoreID, input.AccountID, items, input.ShippingAddress, captureBlob)
	if err != nil {
		u.releaseReservations(ctx, reserved)
		return nil, errs.Mark(err, ErrOrderProcessing)
	}

	view, err := u.executeOrderTransaction(ctx, orderEntity, idempotencyKey, input.AccountID)
	if err != nil {
		// Payment is already captured here: release what we can and flag the
		// charge for manual reconciliation before surfacing a generic failure.
		releaseErr := u.releaseReservations(ctx, reserved)
		u.logReconciliationGap(orderEntity, captureBlob, err)
		return nil, errs.WithSecondary(errs.Mark(err, ErrOrderProcessing), releaseErr)
	}

	return &PlaceOrderResult{Order: view, IsReplayed: false}, nil
}

func (u *orderUseCaseImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, accountID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.OrderView, error) {
	if err := u.idempotencyRepo.TryInsert(ctx, idempotencyKey, accountID, "POST /orders", requestHash, expiresAt); err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	existing, err := u.idempotencyRepo.Get(ctx, idempotencyKey, accountID)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	switch existing.Status {
	case "completed":
		if existing.ResultOrderID != nil {
			return u.orderQueries.GetByID(ctx, *existing.ResultOrderID)
		}
		return nil, errs.New("completed request missing result order ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateOrder
		}
		// Either our own freshly claimed key or a retry of a request that
		// never completed; both proceed as a new placement.
		return nil, nil

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (u *orderUseCaseImpl) buildLineItems(items []PlaceOrderItem) ([]order.LineItem, error) {
	if len(items) == 0 {
		return nil, errs.Mark(order.ErrNoItems, ErrOrderProcessing)
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for _, item := range items {
		lineItem, err := order.NewLineItem(item.ProductID, item.Quantity, item.UnitPriceCents)
		if err != nil {
			return nil, errs.Mark(err, ErrOrderProcessing)
		}
		lineItems = append(lineItems, lineItem)
	}
	return lineItems, nil
}

// reserveInventory decrements stock per line item in list order. On any
// failure the decrements already made in this pass are rolled back before the
// error propagates.
func (u *orderUseCaseImpl) reserveInventory(ctx context.Context, items []order.LineItem) ([]Reservation, error) {
	reserved := make([]Reservation, 0, len(items))

	for _, item := range items {
		if err := u.inventoryRepo.Decrement(ctx, item.ProductID(), item.Quantity()); err != nil {
			releaseErr := u.releaseReservations(ctx, reserved)

			if infra.IsKind(err, infra.KindInsufficientStock) || infra.IsKind(err, infra.KindNotFound) {
				stockErr := errs.Mark(&InsufficientStockError{ProductID: item.ProductID()}, ErrInsufficientStock)
				return nil, errs.WithSecondary(stockErr, releaseErr)
			}
			return nil, errs.WithSecondary(errs.Mark(err, ErrOrderProcessing), releaseErr)
		}

		reserved = append(reserved, Reservation{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}

	return reserved, nil
}

func (u *orderUseCaseImpl) capturePayment(
	ctx context.Context,
	items []order.LineItem,
	method PaymentMethod,
	reserved []Reservation,
) (json.RawMessage, error) {
	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}

	result, err := u.gateway.Capture(ctx, total, method)
	if err != nil {
		releaseErr := u.releaseReservations(ctx, reserved)
		payErr := errs.Mark(&PaymentFailedError{Reason: err.Error()}, ErrPaymentFailed)
		return nil, errs.WithSecondary(payErr, releaseErr)
	}
	if !result.Succeeded() {
		releaseErr := u.releaseReservations(ctx, reserved)
		payErr := errs.Mark(&PaymentFailedError{Reason: "gateway returned status " + result.Status}, ErrPaymentFailed)
		return nil, errs.WithSecondary(payErr, releaseErr)
	}

	blob, err := order.PaymentInfo{
		Gateway:   result.Gateway,
		Reference: result.Reference,
		Amount:    result.AmountCents,
		Status:    result.Status,
	}.MarshalBlob()
	if err != nil {
		releaseErr := u.releaseReservations(ctx, reserved)
		return nil, errs.WithSecondary(errs.Mark(err, ErrOrderProcessing), releaseErr)
	}

	return blob, nil
}

// releaseReservations is best-effort compensation: every pair is attempted
// even if an earlier increment fails, and the combined error never masks the
// failure that triggered the release. Runs detached from request
// cancellation so compensation survives client disconnects.
func (u *orderUseCaseImpl) releaseReservations(ctx context.Context, reserved []Reservation) error {
	if len(reserved) == 0 {
		return nil
	}

	releaseCtx := context.WithoutCancel(ctx)

	var combined error
	for _, r := range reserved {
		if err := u.inventoryRepo.Increment(releaseCtx, r.ProductID, r.Quantity); err != nil {
			slog.Error("failed to release reserved inventory",
				"product_id", r.ProductID.String(),
				"quantity", r.Quantity,
				"error", err.Error())
			combined = errs.WithSecondary(combined, err)
		}
	}
	return combined
}

// logReconciliationGap records a capture that has no order behind it. The
// charge is not auto-refunded; this log line is the input to manual
// reconciliation.
func (u *orderUseCaseImpl) logReconciliationGap(o *order.Order, captureBlob json.RawMessage, cause error) {
	items := make([]map[string]any, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, map[string]any{
			"product_id":       item.ProductID().String(),
			"quantity":         item.Quantity(),
			"unit_price_cents": item.UnitPriceCents(),
		})
	}

	slog.Error("payment captured but order persistence failed; manual reconciliation required",
		"store_id", o.StoreID().String(),
		"account_id", o.AccountID().String(),
		"total_cents", o.TotalCents(),
		"payment_info", string(captureBlob),
		"items", items,
		"error", cause.Error())
}

func (u *orderUseCaseImpl) executeOrderTransaction(
	ctx context.Context,
	orderEntity *order.Order,
	idempotencyKey, accountID uuid.UUID,
) (*queries.OrderView, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	orderID, err := u.orderRepo.Create(ctx, tx, orderEntity)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	responseHash := u.calculateIDHash(orderID)
	if err := u.idempotencyRepo.UpdateStatusCompleted(ctx, tx, idempotencyKey, accountID, responseHash, orderID); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the full view from the read store.
	view, err := u.orderQueries.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

// UpdateStatus validates the value, appends the history row and sets the new
// status in one transaction. Any recognized value is accepted from any state;
// there is deliberately no transition table.
func (u *orderUseCaseImpl) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	newStatus string,
	notes *string,
) (*queries.OrderStatusView, error) {
	status, err := order.ParseStatus(newStatus)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStatus)
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if _, err := u.orderRepo.StatusForUpdate(ctx, tx, orderID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.orderRepo.UpdateStatus(ctx, tx, orderID, status, notes, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.orderQueries.StatusByID(ctx, orderID)
}

func (u *orderUseCaseImpl) calculateRequestHash(input PlaceOrderInput) string {
	data, _ := json.Marshal(input)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func (u *orderUseCaseImpl) calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
