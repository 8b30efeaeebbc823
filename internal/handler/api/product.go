package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/product"
	reqdto "shophub/internal/handler/dto/request"
	resdto "shophub/internal/handler/dto/response"
	"shophub/internal/handler/middleware"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productUseCase commands.ProductCommands
	productQueries queries.ProductQueries
}

func NewProductHandler(productUseCase commands.ProductCommands, productQueries queries.ProductQueries) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		productQueries: productQueries,
	}
}

// @Summary Create product
// @Description Create a product in the authenticated account's store
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateProductRequest true "Product request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.productUseCase.Create(c.Request.Context(), accountID, commands.CreateProductInput{
		StoreID:       req.StoreID,
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		Stock:         req.Stock,
		ReadyDelivery: req.ReadyDelivery,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store not found",
			})
		case errors.Is(err, commands.ErrNotStoreOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account does not own this store",
			})
		case errors.Is(err, product.ErrEmptyName),
			errors.Is(err, product.ErrNegativePrice),
			errors.Is(err, product.ErrNegativeStock):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
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

// @Summary Get product
// @Description Get a product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} queries.ProductView
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	view, err := h.productQueries.GetByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, queries.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
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

// @Summary List store products
// @Description List all products of a store
// @Tags products
// @Produce json
// @Param store_id query string true "Store ID"
// @Success 200 {array} queries.ProductView
// @Failure 400 {object} map[string]string
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	views, err := h.productQueries.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}
