//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shophub/internal/handler/api"
	"shophub/internal/pkg/errs"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"
	commandsmock "shophub/tests/mock/commands"
	queriesmock "shophub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	orderUseCase *commandsmock.MockOrderCommands
	orderQueries *queriesmock.MockOrderQueries
	router       *gin.Engine
	accountID    uuid.UUID
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerSuite))
}

func (s *OrderHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.orderUseCase = commandsmock.NewMockOrderCommands(s.ctrl)
	s.orderQueries = queriesmock.NewMockOrderQueries(s.ctrl)
	s.accountID = uuid.New()

	handler := api.NewOrderHandler(s.orderUseCase, s.orderQueries)

	s.router = gin.New()
	authed := s.router.Group("", func(c *gin.Context) {
		c.Set("account_id", s.accountID)
		c.Next()
	})
	authed.POST("/api/orders", handler.PlaceOrder)
	authed.GET("/api/orders", handler.ListOrders)
	authed.GET("/api/orders/:id", handler.GetOrder)
}

func (s *OrderHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func validOrderBody() []byte {
	body, _ := json.Marshal(gin.H{
		"store_id": uuid.New().String(),
		"items": []gin.H{
			{"product_id": uuid.New().String(), "quantity": 2, "unit_price_cents": 1500},
		},
		"shipping_address": gin.H{
			"street": "Rua Augusta",
			"number": "1200",
			"city":   "São Paulo",
			"state":  "SP",
			"cep":    "01304-001",
		},
		"payment_method": gin.H{
			"provider":  "stripe",
			"reference": "tok_visa",
		},
	})
	return body
}

func (s *OrderHandlerSuite) placeOrder(body []byte, idempotencyKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OrderHandlerSuite) TestPlaceOrderCreated() {
	orderID := uuid.New()
	key := uuid.New()

	s.orderUseCase.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any(), key).
		DoAndReturn(func(_ context.Context, input commands.PlaceOrderInput, _ uuid.UUID) (*commands.PlaceOrderResult, error) {
			require.Equal(s.T(), s.accountID, input.AccountID)
			return &commands.PlaceOrderResult{
				Order: &queries.OrderView{ID: orderID, Status: "received", TotalCents: 3000},
			}, nil
		})

	w := s.placeOrder(validOrderBody(), key.String())

	require.Equal(s.T(), http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(s.T(), orderID.String(), resp["id"])
}

func (s *OrderHandlerSuite) TestPlaceOrderReplayReturnsOK() {
	orderID := uuid.New()
	key := uuid.New()

	s.orderUseCase.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any(), key).
		Return(&commands.PlaceOrderResult{
			Order:      &queries.OrderView{ID: orderID, Status: "received"},
			IsReplayed: true,
		}, nil)

	w := s.placeOrder(validOrderBody(), key.String())

	require.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrderMissingIdempotencyKey() {
	w := s.placeOrder(validOrderBody(), "")

	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	require.Contains(s.T(), w.Body.String(), "Idempotency-Key")
}

func (s *OrderHandlerSuite) TestPlaceOrderMalformedIdempotencyKey() {
	w := s.placeOrder(validOrderBody(), "not-a-uuid")

	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrderEmptyItemsRejectedByBinding() {
	body, _ := json.Marshal(gin.H{
		"store_id":         uuid.New().String(),
		"items":            []gin.H{},
		"shipping_address": gin.H{"street": "Rua A", "city": "São Paulo"},
		"payment_method":   gin.H{"provider": "fake", "reference": "x"},
	})

	w := s.placeOrder(body, uuid.New().String())

	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *OrderHandlerSuite) TestPlaceOrderInsufficientStockConflict() {
	productID := uuid.New()
	key := uuid.New()

	s.orderUseCase.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any(), key).
		Return(nil, errs.Mark(&commands.InsufficientStockError{ProductID: productID}, commands.ErrInsufficientStock))

	w := s.placeOrder(validOrderBody(), key.String())

	require.Equal(s.T(), http.StatusConflict, w.Code)

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(s.T(), productID.String(), resp["product_id"])
}

func (s *OrderHandlerSuite) TestPlaceOrderPaymentFailed() {
	key := uuid.New()

	s.orderUseCase.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any(), key).
		Return(nil, errs.Mark(&commands.PaymentFailedError{Reason: "card declined"}, commands.ErrPaymentFailed))

	w := s.placeOrder(validOrderBody(), key.String())

	require.Equal(s.T(), http.StatusPaymentRequired, w.Code)

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(s.T(), "card declined", resp["reason"])
}

func (s *OrderHandlerSuite) TestPlaceOrderConflictingDuplicate() {
	key := uuid.New()

	s.orderUseCase.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any(), key).
		Return(nil, commands.ErrDuplicateOrder)

	w := s.placeOrder(validOrderBody(), key.String())

	require.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *OrderHandlerSuite) TestGetOrderNotFound() {
	orderID := uuid.New()

	s.orderQueries.EXPECT().
		GetByID(gomock.Any(), orderID).
		Return(nil, queries.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String(), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *OrderHandlerSuite) TestListOrdersRequiresStoreID() {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *OrderHandlerSuite) TestListOrders() {
	storeID := uuid.New()

	s.orderQueries.EXPECT().
		ListByStore(gomock.Any(), storeID).
		Return([]*queries.OrderListItem{
			{ID: uuid.New(), Status: "received", TotalCents: 3000},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders?store_id="+storeID.String(), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)
}
