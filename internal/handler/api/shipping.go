package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/store"
	reqdto "shophub/internal/handler/dto/request"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ShippingHandler struct {
	shippingQueries queries.ShippingQueries
}

func NewShippingHandler(shippingQueries queries.ShippingQueries) *ShippingHandler {
	return &ShippingHandler{shippingQueries: shippingQueries}
}

// @Summary Shipping quote
// @Description Quote local delivery from a store to a destination CEP
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body reqdto.ShippingQuoteRequest true "Quote request"
// @Success 200 {object} queries.ShippingQuoteView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shipping/quote [post]
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req reqdto.ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.shippingQueries.Quote(c.Request.Context(), req.StoreID, req.DestinationCEP)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store not found",
			})
		case errors.Is(err, queries.ErrCEPUnresolved), errors.Is(err, store.ErrInvalidCEP):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Destination CEP could not be resolved",
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
