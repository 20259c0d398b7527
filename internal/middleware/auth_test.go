package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/chirpsocial/backend/internal/middleware"
	"github.com/chirpsocial/backend/internal/service"
)

type stubValidator struct {
	claims *service.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*service.TokenClaims, error) {
	return s.claims, s.err
}

func setupAuthRouter(v middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Auth(v), func(c *gin.Context) {
		claims, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "email": claims.Email})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	r := setupAuthRouter(&stubValidator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := setupAuthRouter(&stubValidator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	r := setupAuthRouter(&stubValidator{err: service.ErrTokenInvalid})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthExpiredToken(t *testing.T) {
	r := setupAuthRouter(&stubValidator{err: service.ErrTokenExpired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuthValidTokenExposesPrincipal(t *testing.T) {
	r := setupAuthRouter(&stubValidator{claims: &service.TokenClaims{UserID: 7, Email: "a@x.com"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)
}
