package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"shophub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxAccountIDKey = "account_id"

type AuthMiddleware struct {
	tokenValidator commands.TokenValidator
}

func NewAuthMiddleware(tokenValidator commands.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxAccountIDKey, claims.AccountID)
		c.Next()
	}
}

func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	accountID, exists := c.Get(ctxAccountIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := accountID.(uuid.UUID)
	return id, ok
}
