package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/order"
	reqdto "shophub/internal/handler/dto/request"
	resdto "shophub/internal/handler/dto/response"
	"shophub/internal/handler/middleware"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderUseCase commands.OrderCommands
	orderQueries queries.OrderQueries
}

func NewOrderHandler(orderUseCase commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		orderQueries: orderQueries,
	}
}

// @Summary Place order
// @Description Place an order with an idempotency key; reserves stock, captures payment, persists the order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.PlaceOrderRequest true "Order request"
// @Success 200 {object} resdto.OrderResponse "Replayed prior result"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.PlaceOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.orderUseCase.PlaceOrder(c.Request.Context(), req.ToInput(accountID), idempotencyKey)
	if err != nil {
		h.respondPlaceOrderError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromOrderView(result.Order))
}

func (h *OrderHandler) respondPlaceOrderError(c *gin.Context, err error) {
	var stockErr *commands.InsufficientStockError
	var payErr *commands.PaymentFailedError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Insufficient stock",
			"product_id": stockErr.ProductID.String(),
		})
	case errors.Is(err, commands.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Insufficient stock",
		})
	case errors.As(err, &payErr):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":  "Payment failed",
			"reason": payErr.Reason,
		})
	case errors.Is(err, commands.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment failed",
		})
	case errors.Is(err, commands.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Duplicate order request with different parameters",
		})
	case errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrNegativePrice):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary List store orders
// @Description List orders for a store, optionally only unhandled ones
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param store_id query string true "Store ID"
// @Success 200 {array} queries.OrderListItem
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	items, err := h.orderQueries.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary List new store orders
// @Description List orders still in the received state, oldest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param store_id query string true "Store ID"
// @Success 200 {array} queries.OrderListItem
// @Failure 400 {object} map[string]string
// @Router /orders/new [get]
func (h *OrderHandler) ListNewOrders(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	items, err := h.orderQueries.ListNewByStore(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Get order
// @Description Get an order with its items
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func (h *OrderHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errors.New("Idempotency-Key header is required")
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errors.New("Idempotency-Key must be a valid UUID")
	}

	return key, nil
}
