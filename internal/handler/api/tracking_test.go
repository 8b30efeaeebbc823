//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shophub/internal/handler/api"
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

type TrackingHandlerSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	orderUseCase *commandsmock.MockOrderCommands
	orderQueries *queriesmock.MockOrderQueries
	router       *gin.Engine
}

func TestTrackingHandlerSuite(t *testing.T) {
	suite.Run(t, new(TrackingHandlerSuite))
}

func (s *TrackingHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.orderUseCase = commandsmock.NewMockOrderCommands(s.ctrl)
	s.orderQueries = queriesmock.NewMockOrderQueries(s.ctrl)

	handler := api.NewTrackingHandler(s.orderUseCase, s.orderQueries)

	s.router = gin.New()
	authed := s.router.Group("", func(c *gin.Context) {
		c.Set("account_id", uuid.New())
		c.Next()
	})
	authed.GET("/api/orders/:id/status", handler.GetStatus)
	authed.PUT("/api/orders/:id/status", handler.UpdateStatus)
}

func (s *TrackingHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TrackingHandlerSuite) updateStatus(orderID string, body gin.H) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID+"/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TrackingHandlerSuite) TestGetStatusReturnsHistory() {
	orderID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.orderQueries.EXPECT().
		StatusByID(gomock.Any(), orderID).
		Return(&queries.OrderStatusView{
			OrderID:          orderID,
			CurrentStatus:    "shipped",
			LastUpdate:       now,
			DeliveryEstimate: now.Add(time.Hour),
			History: []queries.StatusHistoryEntry{
				{Status: "in_preparation", RecordedAt: now.Add(-time.Hour)},
				{Status: "shipped", RecordedAt: now},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String()+"/status", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusOK, w.Code)

	var resp queries.OrderStatusView
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(s.T(), "shipped", resp.CurrentStatus)
	require.Len(s.T(), resp.History, 2)
}

func (s *TrackingHandlerSuite) TestGetStatusNotFound() {
	orderID := uuid.New()

	s.orderQueries.EXPECT().
		StatusByID(gomock.Any(), orderID).
		Return(nil, queries.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.String()+"/status", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TrackingHandlerSuite) TestUpdateStatusOK() {
	orderID := uuid.New()
	notes := "left the warehouse"

	s.orderUseCase.EXPECT().
		UpdateStatus(gomock.Any(), orderID, "shipped", gomock.Any()).
		Return(&queries.OrderStatusView{OrderID: orderID, CurrentStatus: "shipped"}, nil)

	w := s.updateStatus(orderID.String(), gin.H{"status": "shipped", "notes": notes})

	require.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *TrackingHandlerSuite) TestUpdateStatusRejectsUnknownValue() {
	orderID := uuid.New()

	s.orderUseCase.EXPECT().
		UpdateStatus(gomock.Any(), orderID, "teleported", gomock.Any()).
		Return(nil, commands.ErrInvalidStatus)

	w := s.updateStatus(orderID.String(), gin.H{"status": "teleported"})

	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *TrackingHandlerSuite) TestUpdateStatusOrderNotFound() {
	orderID := uuid.New()

	s.orderUseCase.EXPECT().
		UpdateStatus(gomock.Any(), orderID, "delivered", gomock.Any()).
		Return(nil, commands.ErrOrderNotFound)

	w := s.updateStatus(orderID.String(), gin.H{"status": "delivered"})

	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TrackingHandlerSuite) TestUpdateStatusInvalidOrderID() {
	w := s.updateStatus("not-a-uuid", gin.H{"status": "shipped"})

	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}
