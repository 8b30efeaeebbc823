package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/order"
	reqdto "shophub/internal/handler/dto/request"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrackingHandler struct {
	orderUseCase commands.OrderCommands
	orderQueries queries.OrderQueries
}

func NewTrackingHandler(orderUseCase commands.OrderCommands, orderQueries queries.OrderQueries) *TrackingHandler {
	return &TrackingHandler{
		orderUseCase: orderUseCase,
		orderQueries: orderQueries,
	}
}

// @Summary Order status
// @Description Get the order's current status, history and delivery estimate
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} queries.OrderStatusView
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [get]
func (h *TrackingHandler) GetStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	view, err := h.orderQueries.StatusByID(c.Request.Context(), orderID)
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

	c.JSON(http.StatusOK, view)
}

// @Summary Update order status
// @Description Set a new status and append it to the order's history
// @Tags tracking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "Status update"
// @Success 200 {object} queries.OrderStatusView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [put]
func (h *TrackingHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.orderUseCase.UpdateStatus(c.Request.Context(), orderID, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatus), errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid order status",
			})
		case errors.Is(err, commands.ErrOrderNotFound), errors.Is(err, queries.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
