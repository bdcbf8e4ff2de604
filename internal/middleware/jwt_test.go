package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/internal/service"
	"github.com/coursedesk/coursedesk-api/pkg/config"
)

func newJWTRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	authSvc := service.NewAuthService(config.AuthConfig{
		JWTSecret:         "test-secret",
		JWTExpiration:     time.Hour,
		AdminEmail:        "admin@coursedesk.test",
		AdminPasswordHash: string(hash),
	}, nil, nil)

	r := gin.New()
	r.GET("/protected", JWT(authSvc), func(c *gin.Context) {
		_, exists := c.Get(ContextUserKey)
		assert.True(t, exists)
		c.Status(http.StatusOK)
	})
	return r, authSvc
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	router, _ := newJWTRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	router, _ := newJWTRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	router, authSvc := newJWTRouter(t)

	login, err := authSvc.Login(models.LoginRequest{Email: "admin@coursedesk.test", Password: "secret"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
