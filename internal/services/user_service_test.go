package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/models"
)

func TestGetPublicProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewRelationshipService(db))

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "Bob_99")
	require.NoError(t, db.Model(bob).Update("message_link", "bob_99").Error)

	t.Run("by handle", func(t *testing.T) {
		profile, err := svc.GetPublicProfile(nil, "Bob_99")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, profile.ID)
	})

	t.Run("by message link", func(t *testing.T) {
		profile, err := svc.GetPublicProfile(nil, "bob_99")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, profile.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.GetPublicProfile(nil, "nobody")
		requireKind(t, err, apperr.KindNotFound)
	})

	t.Run("inactive looks missing", func(t *testing.T) {
		banned := createUser(t, db, "banned", withStatus(models.UserStatusBanned))
		_, err := svc.GetPublicProfile(nil, banned.Handle)
		requireKind(t, err, apperr.KindNotFound)
	})

	t.Run("hidden from blocked viewer", func(t *testing.T) {
		relationships := NewRelationshipService(db)
		require.NoError(t, relationships.Block(bob.ID, alice.ID))

		_, err := svc.GetPublicProfile(&alice.ID, "Bob_99")
		requireKind(t, err, apperr.KindForbidden)

		// The block hides in both directions.
		_, err = svc.GetPublicProfile(&bob.ID, "alice")
		requireKind(t, err, apperr.KindForbidden)
	})

	t.Run("own profile ignores blocks", func(t *testing.T) {
		profile, err := svc.GetPublicProfile(&bob.ID, "Bob_99")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, profile.ID)
	})
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewRelationshipService(db))

	alice := createUser(t, db, "alice")

	name := "Alice A."
	bio := "hello"
	acceptsAnonymous := false
	_, err := svc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{
		DisplayName:      &name,
		Bio:              &bio,
		AcceptsAnonymous: &acceptsAnonymous,
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	assert.Equal(t, "Alice A.", stored.DisplayName)
	assert.Equal(t, "hello", stored.Bio)
	assert.False(t, stored.AcceptsAnonymous)

	t.Run("omitted fields untouched", func(t *testing.T) {
		empty := ""
		_, err := svc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{Bio: &empty})
		require.NoError(t, err)

		var after models.User
		require.NoError(t, db.First(&after, "id = ?", alice.ID).Error)
		assert.Equal(t, "Alice A.", after.DisplayName)
		assert.Empty(t, after.Bio)
	})

	t.Run("bio too long", func(t *testing.T) {
		long := string(make([]byte, 501))
		_, err := svc.UpdateProfile(alice.ID, &dto.UpdateProfileRequest{Bio: &long})
		requireKind(t, err, apperr.KindValidation)
	})
}

func TestSetStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, NewRelationshipService(db))

	admin := createUser(t, db, "admin", asAdmin())
	alice := createUser(t, db, "alice")

	change, err := svc.SetStatus(admin, alice.ID, &dto.SetStatusRequest{
		Status: models.UserStatusBlocked,
		Reason: "abuse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, change.PreviousStatus)
	assert.Equal(t, models.UserStatusBlocked, change.NewStatus)
	assert.Equal(t, "abuse", change.Reason)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	assert.Equal(t, models.UserStatusBlocked, stored.Status)

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.SetStatus(admin, alice.ID, &dto.SetStatusRequest{Status: "frozen"})
		requireKind(t, err, apperr.KindValidation)
	})

	t.Run("self change rejected", func(t *testing.T) {
		_, err := svc.SetStatus(admin, admin.ID, &dto.SetStatusRequest{Status: models.UserStatusBanned})
		requireKind(t, err, apperr.KindValidation)
	})

	t.Run("admin targets protected", func(t *testing.T) {
		other := createUser(t, db, "other_admin", asAdmin())
		_, err := svc.SetStatus(admin, other.ID, &dto.SetStatusRequest{Status: models.UserStatusBanned})
		requireKind(t, err, apperr.KindForbidden)
	})

	t.Run("reinstating works", func(t *testing.T) {
		change, err := svc.SetStatus(admin, alice.ID, &dto.SetStatusRequest{Status: models.UserStatusActive})
		require.NoError(t, err)
		assert.Equal(t, models.UserStatusBlocked, change.PreviousStatus)
		assert.Equal(t, models.UserStatusActive, change.NewStatus)
	})
}
