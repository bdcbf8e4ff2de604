package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursedesk/coursedesk-api/internal/models"
	"github.com/coursedesk/coursedesk-api/pkg/config"
	appErrors "github.com/coursedesk/coursedesk-api/pkg/errors"
)

func newAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(config.AuthConfig{
		Enabled:           true,
		JWTSecret:         "test-secret",
		JWTExpiration:     time.Hour,
		AdminEmail:        "admin@coursedesk.test",
		AdminPasswordHash: string(hash),
	}, nil, nil)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	result, err := svc.Login(models.LoginRequest{Email: "admin@coursedesk.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, int64(3600), result.ExpiresIn)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@coursedesk.test", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthServiceLoginEmailCaseInsensitive(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(models.LoginRequest{Email: "Admin@CourseDesk.Test", Password: "correct horse"})
	require.NoError(t, err)
}

func TestAuthServiceLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(models.LoginRequest{Email: "admin@coursedesk.test", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginRejectsUnknownEmail(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(models.LoginRequest{Email: "other@coursedesk.test", Password: "correct horse"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginValidatesPayload(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.Login(models.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	result, err := svc.Login(models.LoginRequest{Email: "admin@coursedesk.test", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(result.AccessToken + "x")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceValidateTokenRejectsOtherSecret(t *testing.T) {
	issuer := newAuthService(t, "correct horse")
	result, err := issuer.Login(models.LoginRequest{Email: "admin@coursedesk.test", Password: "correct horse"})
	require.NoError(t, err)

	verifier := NewAuthService(config.AuthConfig{
		JWTSecret:     "different-secret",
		JWTExpiration: time.Hour,
		AdminEmail:    "admin@coursedesk.test",
	}, nil, nil)

	_, err = verifier.ValidateToken(result.AccessToken)
	require.Error(t, err)
}
