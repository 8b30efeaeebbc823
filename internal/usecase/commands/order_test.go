//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shophub/internal/domain/order"
	"shophub/internal/infra"
	"shophub/internal/pkg/clock"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"
	commandsmock "shophub/tests/mock/commands"
	queriesmock "shophub/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PlaceOrderSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	orderRepo    *commandsmock.MockOrderRepository
	inventory    *commandsmock.MockInventoryRepository
	idempotency  *commandsmock.MockIdempotencyRepository
	gateway      *commandsmock.MockPaymentGateway
	orderQueries *queriesmock.MockOrderQueries
	clk          *clock.MockClock

	uc commands.OrderCommands
}

func TestPlaceOrderSuite(t *testing.T) {
	suite.Run(t, new(PlaceOrderSuite))
}

func (s *PlaceOrderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.orderRepo = commandsmock.NewMockOrderRepository(s.ctrl)
	s.inventory = commandsmock.NewMockInventoryRepository(s.ctrl)
	s.idempotency = commandsmock.NewMockIdempotencyRepository(s.ctrl)
	s.gateway = commandsmock.NewMockPaymentGateway(s.ctrl)
	s.orderQueries = queriesmock.NewMockOrderQueries(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	// The pool is only touched by the persistence step, which none of these
	// paths reach. The full flow is covered by the integration tests.
	s.uc = commands.NewOrderUseCase(
		s.orderRepo, s.inventory, s.idempotency, s.gateway, s.orderQueries, nil, s.clk,
	)
}

func (s *PlaceOrderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func validInput(accountID uuid.UUID, items ...commands.PlaceOrderItem) commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		StoreID:   uuid.New(),
		AccountID: accountID,
		Items:     items,
		ShippingAddress: order.ShippingAddress{
			Street:       "Rua Augusta",
			Number:       "1200",
			Neighborhood: "Consolação",
			City:         "São Paulo",
			State:        "SP",
			CEP:          "01304001",
		},
		PaymentMethod: commands.PaymentMethod{
			Provider:   "stripe",
			Reference:  "tok_visa",
			MethodType: "card",
		},
	}
}

// expectFreshKey wires the claim sequence for a key that has never been seen:
// the insert lands and the follow-up read returns our own processing record.
func (s *PlaceOrderSuite) expectFreshKey(key, accountID uuid.UUID) {
	var capturedHash string
	s.idempotency.EXPECT().
		TryInsert(gomock.Any(), key, accountID, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _ string, requestHash string, _ time.Time) error {
			capturedHash = requestHash
			return nil
		})
	s.idempotency.EXPECT().
		Get(gomock.Any(), key, accountID).
		DoAndReturn(func(_ context.Context, k, a uuid.UUID) (*commands.IdempotencyRecord, error) {
			return &commands.IdempotencyRecord{
				Key:         k,
				AccountID:   a,
				Status:      "processing",
				RequestHash: capturedHash,
			}, nil
		})
}

func (s *PlaceOrderSuite) TestCompletedKeyReplaysStoredOrder() {
	accountID := uuid.New()
	key := uuid.New()
	orderID := uuid.New()
	input := validInput(accountID, commands.PlaceOrderItem{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 1500})

	s.idempotency.EXPECT().
		TryInsert(gomock.Any(), key, accountID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	s.idempotency.EXPECT().
		Get(gomock.Any(), key, accountID).
		Return(&commands.IdempotencyRecord{
			Key:           key,
			AccountID:     accountID,
			Status:        "completed",
			ResultOrderID: &orderID,
		}, nil)
	s.orderQueries.EXPECT().
		GetByID(gomock.Any(), orderID).
		Return(&queries.OrderView{ID: orderID, Status: "received", TotalCents: 1500}, nil)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.NoError(s.T(), err)
	require.True(s.T(), result.IsReplayed)
	require.Equal(s.T(), orderID, result.Order.ID)
}

func (s *PlaceOrderSuite) TestSameKeyDifferentPayloadRejected() {
	accountID := uuid.New()
	key := uuid.New()
	input := validInput(accountID, commands.PlaceOrderItem{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 1500})

	s.idempotency.EXPECT().
		TryInsert(gomock.Any(), key, accountID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	s.idempotency.EXPECT().
		Get(gomock.Any(), key, accountID).
		Return(&commands.IdempotencyRecord{
			Key:         key,
			AccountID:   accountID,
			Status:      "processing",
			RequestHash: "some-other-request-entirely",
		}, nil)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrDuplicateOrder)
}

func (s *PlaceOrderSuite) TestInsufficientStockReleasesEarlierReservations() {
	accountID := uuid.New()
	key := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	input := validInput(accountID,
		commands.PlaceOrderItem{ProductID: productA, Quantity: 2, UnitPriceCents: 1000},
		commands.PlaceOrderItem{ProductID: productB, Quantity: 3, UnitPriceCents: 2500},
	)

	s.expectFreshKey(key, accountID)
	s.inventory.EXPECT().Decrement(gomock.Any(), productA, int32(2)).Return(nil)
	s.inventory.EXPECT().Decrement(gomock.Any(), productB, int32(3)).
		Return(infra.WrapRepoErr("insufficient stock", nil, infra.KindInsufficientStock))
	// Only the line that actually got decremented is released.
	s.inventory.EXPECT().Increment(gomock.Any(), productA, int32(2)).Return(nil)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrInsufficientStock)

	var stockErr *commands.InsufficientStockError
	require.ErrorAs(s.T(), err, &stockErr)
	require.Equal(s.T(), productB, stockErr.ProductID)
}

func (s *PlaceOrderSuite) TestUnknownProductReportedAsInsufficientStock() {
	accountID := uuid.New()
	key := uuid.New()
	productA := uuid.New()
	input := validInput(accountID,
		commands.PlaceOrderItem{ProductID: productA, Quantity: 1, UnitPriceCents: 500},
	)

	s.expectFreshKey(key, accountID)
	s.inventory.EXPECT().Decrement(gomock.Any(), productA, int32(1)).
		Return(infra.WrapRepoErr("product not found", nil, infra.KindNotFound))

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrInsufficientStock)
}

func (s *PlaceOrderSuite) TestPaymentErrorReleasesAllReservations() {
	accountID := uuid.New()
	key := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	input := validInput(accountID,
		commands.PlaceOrderItem{ProductID: productA, Quantity: 1, UnitPriceCents: 1000},
		commands.PlaceOrderItem{ProductID: productB, Quantity: 2, UnitPriceCents: 3000},
	)

	s.expectFreshKey(key, accountID)
	s.inventory.EXPECT().Decrement(gomock.Any(), productA, int32(1)).Return(nil)
	s.inventory.EXPECT().Decrement(gomock.Any(), productB, int32(2)).Return(nil)
	// 1*1000 + 2*3000
	s.gateway.EXPECT().
		Capture(gomock.Any(), int64(7000), input.PaymentMethod).
		Return(nil, errors.New("card declined"))
	s.inventory.EXPECT().Increment(gomock.Any(), productA, int32(1)).Return(nil)
	s.inventory.EXPECT().Increment(gomock.Any(), productB, int32(2)).Return(nil)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrPaymentFailed)

	var payErr *commands.PaymentFailedError
	require.ErrorAs(s.T(), err, &payErr)
	require.Contains(s.T(), payErr.Reason, "card declined")
}

func (s *PlaceOrderSuite) TestNonSucceededCaptureTreatedAsDecline() {
	accountID := uuid.New()
	key := uuid.New()
	productA := uuid.New()
	input := validInput(accountID,
		commands.PlaceOrderItem{ProductID: productA, Quantity: 1, UnitPriceCents: 2000},
	)

	s.expectFreshKey(key, accountID)
	s.inventory.EXPECT().Decrement(gomock.Any(), productA, int32(1)).Return(nil)
	s.gateway.EXPECT().
		Capture(gomock.Any(), int64(2000), input.PaymentMethod).
		Return(&commands.CaptureResult{Gateway: "stripe", Status: "pending"}, nil)
	s.inventory.EXPECT().Increment(gomock.Any(), productA, int32(1)).Return(nil)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrPaymentFailed)
}

func (s *PlaceOrderSuite) TestEmptyItemsRejectedBeforeReservation() {
	accountID := uuid.New()
	key := uuid.New()
	input := validInput(accountID)

	s.expectFreshKey(key, accountID)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrOrderProcessing)
}

func (s *PlaceOrderSuite) TestInvalidQuantityRejectedBeforeReservation() {
	accountID := uuid.New()
	key := uuid.New()
	input := validInput(accountID,
		commands.PlaceOrderItem{ProductID: uuid.New(), Quantity: 0, UnitPriceCents: 1000},
	)

	s.expectFreshKey(key, accountID)

	result, err := s.uc.PlaceOrder(context.Background(), input, key)

	require.Nil(s.T(), result)
	require.ErrorIs(s.T(), err, commands.ErrOrderProcessing)
}

func (s *PlaceOrderSuite) TestUpdateStatusRejectsUnknownValue() {
	view, err := s.uc.UpdateStatus(context.Background(), uuid.New(), "teleported", nil)

	require.Nil(s.T(), view)
	require.ErrorIs(s.T(), err, commands.ErrInvalidStatus)
}

// fakeStock is a concurrency-safe stand-in for the stock counter with the
// same conditional-decrement contract as the SQL implementation.
type fakeStock struct {
	mu       sync.Mutex
	stock    map[uuid.UUID]int32
	minSeen  map[uuid.UUID]int32
	declines int
}

func newFakeStock(initial map[uuid.UUID]int32) *fakeStock {
	seen := make(map[uuid.UUID]int32, len(initial))
	for id, n := range initial {
		seen[id] = n
	}
	return &fakeStock{stock: initial, minSeen: seen}
}

func (f *fakeStock) Decrement(_ context.Context, productID uuid.UUID, quantity int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock[productID] < quantity {
		f.declines++
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindInsufficientStock)
	}
	f.stock[productID] -= quantity
	if f.stock[productID] < f.minSeen[productID] {
		f.minSeen[productID] = f.stock[productID]
	}
	return nil
}

func (f *fakeStock) Increment(_ context.Context, productID uuid.UUID, quantity int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[productID] += quantity
	return nil
}

// fakeIdempotencyStore mimics the fresh-key behavior of the real table: first
// insert claims the key, the follow-up read returns the stored record.
type fakeIdempotencyStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*commands.IdempotencyRecord
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: make(map[uuid.UUID]*commands.IdempotencyRecord)}
}

func (f *fakeIdempotencyStore) TryInsert(_ context.Context, key, accountID uuid.UUID, _, requestHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[key]; !ok {
		f.records[key] = &commands.IdempotencyRecord{
			Key:         key,
			AccountID:   accountID,
			Status:      "processing",
			RequestHash: requestHash,
			ExpiresAt:   expiresAt,
		}
	}
	return nil
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key, _ uuid.UUID) (*commands.IdempotencyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := *f.records[key]
	return &rec, nil
}

type decliningGateway struct{}

func (decliningGateway) Capture(context.Context, int64, commands.PaymentMethod) (*commands.CaptureResult, error) {
	return nil, errors.New("card declined")
}

// TestConcurrentReservationNeverOversells hammers the placement flow with more
// requests than there is stock. Payment always declines, so every reservation
// is released; the counter must never dip below zero and must end where it
// started.
func TestConcurrentReservationNeverOversells(t *testing.T) {
	productID := uuid.New()
	const initialStock = int32(5)
	const attempts = 20

	stock := newFakeStock(map[uuid.UUID]int32{productID: initialStock})
	idem := newFakeIdempotencyStore()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orderRepo := commandsmock.NewMockOrderRepository(ctrl)
	orderQueries := queriesmock.NewMockOrderQueries(ctrl)
	idemMock := commandsmock.NewMockIdempotencyRepository(ctrl)
	idemMock.EXPECT().TryInsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(idem.TryInsert).AnyTimes()
	idemMock.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(idem.Get).AnyTimes()

	uc := commands.NewOrderUseCase(
		orderRepo, stock, idemMock, decliningGateway{}, orderQueries, nil,
		clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	)

	accountID := uuid.New()
	var wg sync.WaitGroup
	errsCh := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := validInput(accountID, commands.PlaceOrderItem{ProductID: productID, Quantity: 1, UnitPriceCents: 1000})
			_, err := uc.PlaceOrder(context.Background(), input, uuid.New())
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	var declined, outOfStock int
	for err := range errsCh {
		switch {
		case errors.Is(err, commands.ErrPaymentFailed):
			declined++
		case errors.Is(err, commands.ErrInsufficientStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	require.Equal(t, attempts, declined+outOfStock)
	require.GreaterOrEqual(t, stock.minSeen[productID], int32(0))
	require.Equal(t, initialStock, stock.stock[productID])
}
