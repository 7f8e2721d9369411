package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"wearhouse/internal/pkg/response"
	"wearhouse/internal/pkg/token"
)

// TokenVerifier checks an access token and returns its claims.
type TokenVerifier interface {
	VerifyAccess(tokenStr string) (*token.Claims, error)
}

// RequireAuth verifies the bearer access token and stores the user id in the
// request context under "user_id".
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.AbortJSON(c, response.Unauthorized("missing Authorization header"))
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.AbortJSON(c, response.Unauthorized("invalid Authorization header"))
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.AbortJSON(c, response.Unauthorized("empty token"))
			return
		}

		claims, err := tokens.VerifyAccess(tokenStr)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				response.AbortJSON(c, response.Unauthorized("access token expired"))
				return
			}
			response.AbortJSON(c, response.Unauthorized("invalid token"))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
