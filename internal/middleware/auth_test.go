package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wearhouse/internal/domain"
	"wearhouse/internal/pkg/token"
)

func newAuthRouter(tokens TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetUint64("user_id")})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := token.New("access", "refresh", 15*time.Minute, time.Hour)
	r := newAuthRouter(tokens)

	accessToken, err := tokens.SignAccess(42)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+accessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":42`)
}

func TestRequireAuth_Rejections(t *testing.T) {
	tokens := token.New("access", "refresh", 15*time.Minute, time.Hour)
	r := newAuthRouter(tokens)

	for _, header := range []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"Bearer not-a-jwt",
	} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tokens := token.New("access", "refresh", -time.Minute, time.Hour)
	r := newAuthRouter(tokens)

	expired, err := tokens.SignAccess(42)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

type stubUserGetter struct {
	user *domain.User
}

func (s *stubUserGetter) FindByID(_ context.Context, _ uint64) (*domain.User, error) {
	return s.user, nil
}

func newRoleRouter(users UserGetter, userID uint64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	seed := func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
	}
	r.GET("/staff", seed, StaffOnly(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return r
}

func TestStaffOnly(t *testing.T) {
	moderator := &domain.User{ID: 1, Role: domain.RoleModerator, IsActive: true}
	r := newRoleRouter(&stubUserGetter{user: moderator}, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "moderator")
}

func TestStaffOnly_PlainUserForbidden(t *testing.T) {
	user := &domain.User{ID: 1, Role: domain.RoleUser, IsActive: true}
	r := newRoleRouter(&stubUserGetter{user: user}, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStaffOnly_DeactivatedForbidden(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: false}
	r := newRoleRouter(&stubUserGetter{user: admin}, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStaffOnly_MissingUser(t *testing.T) {
	r := newRoleRouter(&stubUserGetter{user: nil}, 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffOnly_NoAuthContext(t *testing.T) {
	r := newRoleRouter(&stubUserGetter{user: nil}, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
