package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Follow{},
		&models.Block{},
		&models.Message{},
		&models.Report{},
	))
	return db
}

type userOpt func(*models.User)

func asAdmin() userOpt {
	return func(u *models.User) { u.IsAdmin = true }
}

func withStatus(status string) userOpt {
	return func(u *models.User) { u.Status = status }
}

func rejectingAnonymous() userOpt {
	return func(u *models.User) { u.AcceptsAnonymous = false }
}

func createUser(t *testing.T, db *gorm.DB, handle string, opts ...userOpt) *models.User {
	t.Helper()

	user := &models.User{
		ID:                 uuid.New(),
		Handle:             handle,
		MessageLink:        handle,
		Email:              handle + "@example.com",
		Password:           "not-a-real-hash",
		Status:             models.UserStatusActive,
		AcceptsAnonymous:   true,
		EmailNotifications: false,
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err))
}
