//go:build integration

package integration

import (
	"context"
	"testing"

	"shophub/internal/domain/order"
	"shophub/internal/infra/payment"
	"shophub/internal/infra/readstore"
	"shophub/internal/infra/repository"
	"shophub/internal/pkg/clock"
	"shophub/internal/pkg/config"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderFlowSuite struct {
	suite.Suite
	pool         *pgxpool.Pool
	uc           commands.OrderCommands
	orderQueries queries.OrderQueries
}

func TestOrderFlowSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowSuite))
}

func (s *OrderFlowSuite) SetupSuite() {
	s.pool = setupTestPool(s.T())

	s.orderQueries = queries.NewOrderQueries(readstore.NewOrderReadStore(s.pool))
	s.uc = commands.NewOrderUseCase(
		repository.NewOrderRepository(),
		repository.NewInventoryRepository(s.pool),
		repository.NewIdempotencyRepository(s.pool),
		payment.NewGateway(config.PaymentConfig{Mode: "fake"}),
		s.orderQueries,
		s.pool,
		clock.NewRealClock(),
	)
}

func (s *OrderFlowSuite) placeOrderInput(storeID, accountID, productID uuid.UUID, quantity int32) commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		StoreID:   storeID,
		AccountID: accountID,
		Items: []commands.PlaceOrderItem{
			{ProductID: productID, Quantity: quantity, UnitPriceCents: 1500},
		},
		ShippingAddress: order.ShippingAddress{
			Street:       "Rua Augusta",
			Number:       "1200",
			Neighborhood: "Consolação",
			City:         "São Paulo",
			State:        "SP",
			CEP:          "01304001",
		},
		PaymentMethod: commands.PaymentMethod{
			Provider:  "fake",
			Reference: "tok_test",
		},
	}
}

func (s *OrderFlowSuite) TestPlaceOrderPersistsAndDecrements() {
	t := s.T()
	accountID := seedAccount(t, s.pool)
	storeID := seedStore(t, s.pool, accountID)
	productID := seedProduct(t, s.pool, storeID, 1500, 10)

	input := s.placeOrderInput(storeID, accountID, productID, 2)
	key := uuid.New()

	result, err := s.uc.PlaceOrder(context.Background(), input, key)
	require.NoError(t, err)
	require.False(t, result.IsReplayed)
	require.Equal(t, int64(3000), result.Order.TotalCents)
	require.Equal(t, "received", result.Order.Status)
	require.Len(t, result.Order.Items, 1)
	require.Contains(t, string(result.Order.PaymentInfo), "fake")

	require.Equal(t, int32(8), productStock(t, s.pool, productID))

	view, err := s.orderQueries.GetByID(context.Background(), result.Order.ID)
	require.NoError(t, err)
	require.Equal(t, "São Paulo", view.ShippingAddress.City)
}

func (s *OrderFlowSuite) TestPlaceOrderReplaySameKey() {
	t := s.T()
	accountID := seedAccount(t, s.pool)
	storeID := seedStore(t, s.pool, accountID)
	productID := seedProduct(t, s.pool, storeID, 1500, 10)

	input := s.placeOrderInput(storeID, accountID, productID, 1)
	key := uuid.New()

	first, err := s.uc.PlaceOrder(context.Background(), input, key)
	require.NoError(t, err)

	second, err := s.uc.PlaceOrder(context.Background(), input, key)
	require.NoError(t, err)
	require.True(t, second.IsReplayed)
	require.Equal(t, first.Order.ID, second.Order.ID)

	// The retry must not reserve again.
	require.Equal(t, int32(9), productStock(t, s.pool, productID))
}

func (s *OrderFlowSuite) TestPlaceOrderSameKeyDifferentPayload() {
	t := s.T()
	accountID := seedAccount(t, s.pool)
	storeID := seedStore(t, s.pool, accountID)
	productID := seedProduct(t, s.pool, storeID, 1500, 10)

	key := uuid.New()
	_, err := s.uc.PlaceOrder(context.Background(), s.placeOrderInput(storeID, accountID, productID, 1), key)
	require.NoError(t, err)

	_, err = s.uc.PlaceOrder(context.Background(), s.placeOrderInput(storeID, accountID, productID, 3), key)
	require.ErrorIs(t, err, commands.ErrDuplicateOrder)
}

func (s *OrderFlowSuite) TestPlaceOrderInsufficientStockLeavesCounterAlone() {
	t := s.T()
	accountID := seedAccount(t, s.pool)
	storeID := seedStore(t, s.pool, accountID)
	productID := seedProduct(t, s.pool, storeID, 1500, 1)

	_, err := s.uc.PlaceOrder(context.Background(), s.placeOrderInput(storeID, accountID, productID, 2), uuid.New())
	require.ErrorIs(t, err, commands.ErrInsufficientStock)
	require.Equal(t, int32(1), productStock(t, s.pool, productID))
}

func (s *OrderFlowSuite) TestUpdateStatusAppendsHistory() {
	t := s.T()
	accountID := seedAccount(t, s.pool)
	storeID := seedStore(t, s.pool, accountID)
	productID := seedProduct(t, s.pool, storeID, 1500, 5)

	result, err := s.uc.PlaceOrder(context.Background(), s.placeOrderInput(storeID, accountID, productID, 1), uuid.New())
	require.NoError(t, err)
	orderID := result.Order.ID

	notes := "started packing"
	_, err = s.uc.UpdateStatus(context.Background(), orderID, "in_preparation", &notes)
	require.NoError(t, err)

	view, err := s.uc.UpdateStatus(context.Background(), orderID, "shipped", nil)
	require.NoError(t, err)
	require.Equal(t, "shipped", view.CurrentStatus)

	require.Len(t, view.History, 2)
	require.Equal(t, "in_preparation", view.History[0].Status)
	require.NotNil(t, view.History[0].Notes)
	require.Equal(t, "shipped", view.History[1].Status)
	require.Nil(t, view.History[1].Notes)
}

func (s *OrderFlowSuite) TestUpdateStatusUnknownOrder() {
	_, err := s.uc.UpdateStatus(context.Background(), uuid.New(), "shipped", nil)
	require.ErrorIs(s.T(), err, commands.ErrOrderNotFound)
}

func (s *OrderFlowSuite) TestNewOrdersQueueOnlyHoldsReceived() {
	t := s.T()
	accountID := seedAccount(t, s.pool)
	storeID := seedStore(t, s.pool, accountID)
	productID := seedProduct(t, s.pool, storeID, 1500, 10)

	first, err := s.uc.PlaceOrder(context.Background(), s.placeOrderInput(storeID, accountID, productID, 1), uuid.New())
	require.NoError(t, err)
	second, err := s.uc.PlaceOrder(context.Background(), s.placeOrderInput(storeID, accountID, productID, 1), uuid.New())
	require.NoError(t, err)

	_, err = s.uc.UpdateStatus(context.Background(), first.Order.ID, "shipped", nil)
	require.NoError(t, err)

	pending, err := s.orderQueries.ListNewByStore(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.Order.ID, pending[0].ID)

	all, err := s.orderQueries.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
