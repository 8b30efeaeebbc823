package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/cart"
	reqdto "shophub/internal/handler/dto/request"
	resdto "shophub/internal/handler/dto/response"
	"shophub/internal/handler/middleware"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartUseCase commands.CartCommands
	cartQueries queries.CartQueries
}

func NewCartHandler(cartUseCase commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
		cartQueries: cartQueries,
	}
}

// @Summary Get cart
// @Description Get the authenticated account's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.CartView
// @Failure 401 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.cartQueries.GetByAccount(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Add cart item
// @Description Add a product to the cart, merging quantities for repeats
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Cart item request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.cartUseCase.AddItem(c.Request.Context(), accountID, commands.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Quantity must be at least 1",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update cart item
// @Description Change the quantity of a cart item
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Param request body reqdto.UpdateCartItemRequest true "Quantity update"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	var req reqdto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.cartUseCase.UpdateItemQuantity(c.Request.Context(), accountID, itemID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, commands.ErrCartItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Quantity must be at least 1",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Remove cart item
// @Description Remove an item from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cart item ID",
		})
		return
	}

	if err := h.cartUseCase.RemoveItem(c.Request.Context(), accountID, itemID); err != nil {
		if errors.Is(err, commands.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
