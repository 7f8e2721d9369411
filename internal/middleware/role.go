package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"wearhouse/internal/domain"
	"wearhouse/internal/pkg/response"
)

// UserGetter loads an account for role checks. Tokens only carry the user id,
// so the role is always read fresh and never outlives a role change.
type UserGetter interface {
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
}

// RequireRole ensures the authenticated user is active and holds one of the
// given roles. Must run after RequireAuth.
func RequireRole(users UserGetter, roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint64("user_id")
		if userID == 0 {
			response.AbortJSON(c, response.Unauthorized("authentication required"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			response.AbortJSON(c, response.InternalError("failed to check permissions"))
			return
		}
		if user == nil {
			response.AbortJSON(c, response.Unauthorized("account no longer exists"))
			return
		}
		if !user.IsActive {
			response.AbortJSON(c, response.Forbidden("account is deactivated"))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Set("role", string(user.Role))
				c.Next()
				return
			}
		}
		response.AbortJSON(c, response.Forbidden("insufficient permissions"))
	}
}

// StaffOnly gates garment mutations to admins and moderators.
func StaffOnly(users UserGetter) gin.HandlerFunc {
	return RequireRole(users, domain.RoleAdmin, domain.RoleModerator)
}
