package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/config"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/models"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	})
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&dto.RegisterRequest{
		Handle:      "Alice_01",
		Email:       "alice@example.com",
		Password:    "correct-horse",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Alice_01", resp.User.Handle)
	assert.Equal(t, "alice_01", resp.User.MessageLink, "message link is the lowercased handle")
	assert.False(t, resp.User.IsAdmin)

	var stored models.User
	require.NoError(t, db.First(&stored, "handle = ?", "Alice_01").Error)
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.True(t, stored.AcceptsAnonymous)

	t.Run("duplicate handle", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Handle: "Alice_01", Email: "other@example.com", Password: "correct-horse"})
		requireKind(t, err, apperr.KindConflict)
	})

	t.Run("handle colliding with message link", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Handle: "alice_01", Email: "other@example.com", Password: "correct-horse"})
		requireKind(t, err, apperr.KindConflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Handle: "someone", Email: "alice@example.com", Password: "correct-horse"})
		requireKind(t, err, apperr.KindConflict)
	})

	t.Run("bad handles", func(t *testing.T) {
		for _, handle := range []string{"ab", "this_handle_is_way_too_long", "has space", "dash-ed", ""} {
			_, err := svc.Register(&dto.RegisterRequest{Handle: handle, Email: "x@example.com", Password: "correct-horse"})
			requireKind(t, err, apperr.KindValidation)
		}
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Handle: "someone", Email: "x@example.com", Password: "short"})
		requireKind(t, err, apperr.KindValidation)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{Handle: "someone", Email: "not-an-email", Password: "correct-horse"})
		requireKind(t, err, apperr.KindValidation)
	})
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&dto.RegisterRequest{Handle: "alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	// The access token carries the subject and handle claims.
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["handle"])

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong-horse"})
		requireKind(t, err, apperr.KindUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
		requireKind(t, err, apperr.KindUnauthorized)
	})

	t.Run("inactive account", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).
			Where("email = ?", "alice@example.com").
			Update("status", models.UserStatusBanned).Error)
		_, err := svc.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
		requireKind(t, err, apperr.KindForbidden)
	})
}

func TestRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first, err := svc.Register(&dto.RegisterRequest{Handle: "alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	t.Run("used token is dead", func(t *testing.T) {
		_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: first.RefreshToken})
		requireKind(t, err, apperr.KindUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "not-a-token"})
		requireKind(t, err, apperr.KindUnauthorized)
	})

	t.Run("logout revokes", func(t *testing.T) {
		require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: second.RefreshToken}))
		_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: second.RefreshToken})
		requireKind(t, err, apperr.KindUnauthorized)
	})
}
