package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wearhouse/internal/pkg/response"
)

const refreshCookieName = "refresh_token"

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service      *Service
	cookieSecure bool
	cookiePath   string
}

func NewHandler(service *Service, cookieSecure bool, cookiePath string) *Handler {
	return &Handler{
		service:      service,
		cookieSecure: cookieSecure,
		cookiePath:   cookiePath,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/users/me", h.Profile)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.BadRequest("invalid request body"))
		return
	}
	response.JSON(c, h.service.Register(c.Request.Context(), req))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.BadRequest("invalid request body"))
		return
	}

	res := h.service.Login(c.Request.Context(), req)
	if res.Success {
		if data, ok := res.Data.(SessionData); ok {
			h.setRefreshCookie(c, data.RefreshToken)
		}
	}
	response.JSON(c, res)
}

// Refresh reads the old token from the scoped cookie, falling back to the
// JSON body for non-browser clients.
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookieName)
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}

	res := h.service.Refresh(c.Request.Context(), refreshToken)
	if res.Success {
		if data, ok := res.Data.(SessionData); ok {
			h.setRefreshCookie(c, data.RefreshToken)
		}
	}
	response.JSON(c, res)
}

func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if userID == 0 {
		response.JSON(c, response.Unauthorized("authentication required"))
		return
	}

	res := h.service.Logout(c.Request.Context(), userID)
	if res.Success {
		h.clearRefreshCookie(c)
	}
	response.JSON(c, res)
}

func (h *Handler) Profile(c *gin.Context) {
	userID := c.GetUint64("user_id")
	if userID == 0 {
		response.JSON(c, response.Unauthorized("authentication required"))
		return
	}
	response.JSON(c, h.service.Profile(c.Request.Context(), userID))
}

func (h *Handler) setRefreshCookie(c *gin.Context, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(h.service.tokens.RefreshTTL().Seconds())
	c.SetCookie(refreshCookieName, refreshToken, maxAge, h.cookiePath, "", h.cookieSecure, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, h.cookiePath, "", h.cookieSecure, true)
}
