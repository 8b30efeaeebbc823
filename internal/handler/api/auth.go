package api

import (
	"errors"
	"net/http"

	"shophub/internal/domain/account"
	reqdto "shophub/internal/handler/dto/request"
	resdto "shophub/internal/handler/dto/response"
	"shophub/internal/handler/middleware"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase    commands.AuthCommands
	accountQueries queries.AccountQueries
}

func NewAuthHandler(authUseCase commands.AuthCommands, accountQueries queries.AccountQueries) *AuthHandler {
	return &AuthHandler{
		authUseCase:    authUseCase,
		accountQueries: accountQueries,
	}
}

// @Summary Register account
// @Description Create an account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Registration request"
// @Success 201 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authUseCase.Register(c.Request.Context(), commands.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already registered",
			})
		case errors.Is(err, account.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid email address",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.AuthResponse{AccessToken: result.Token})
}

// @Summary Login
// @Description Authenticate and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), commands.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, commands.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AuthResponse{AccessToken: result.Token})
}

// @Summary Current account
// @Description Return the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.AccountView
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.accountQueries.GetCurrentAccount(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, queries.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
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
