package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/store"
	reqdto "shophub/internal/handler/dto/request"
	resdto "shophub/internal/handler/dto/response"
	"shophub/internal/handler/middleware"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StoreHandler struct {
	storeUseCase commands.StoreCommands
	storeQueries queries.StoreQueries
}

func NewStoreHandler(storeUseCase commands.StoreCommands, storeQueries queries.StoreQueries) *StoreHandler {
	return &StoreHandler{
		storeUseCase: storeUseCase,
		storeQueries: storeQueries,
	}
}

// @Summary Create store
// @Description Create the authenticated account's store
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateStoreRequest true "Store request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /stores [post]
func (h *StoreHandler) CreateStore(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.storeUseCase.Create(c.Request.Context(), accountID, commands.CreateStoreInput{
		Name:             req.Name,
		Description:      req.Description,
		Address:          req.Address,
		CEP:              req.CEP,
		DeliveryFeeCents: req.DeliveryFeeCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrStoreAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Account already owns a store",
			})
		case errors.Is(err, store.ErrEmptyName), errors.Is(err, store.ErrInvalidCEP):
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

// @Summary Get store
// @Description Get a store by ID
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} queries.StoreView
// @Failure 404 {object} map[string]string
// @Router /stores/{id} [get]
func (h *StoreHandler) GetStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	view, err := h.storeQueries.GetByID(c.Request.Context(), storeID)
	if err != nil {
		if errors.Is(err, queries.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store not found",
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
