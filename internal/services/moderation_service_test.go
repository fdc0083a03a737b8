package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/models"
	"gorm.io/gorm"
)

func sendTestMessage(t *testing.T, db *gorm.DB, sender *models.User, recipient *models.User, anonymous bool) *models.Message {
	t.Helper()
	svc := newMessageService(db)
	message, err := svc.Send(sender, &dto.SendMessageRequest{
		RecipientID: recipient.ID,
		Content:     "reported content",
		Anonymous:   anonymous,
	})
	require.NoError(t, err)
	return message
}

func TestCreateReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	message := sendTestMessage(t, db, alice, bob, false)

	report, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
		Type:        models.ReportTypeHarassment,
		Description: "not ok",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	require.NotNil(t, report.ReportedUserID, "identified sender is snapshotted")
	assert.Equal(t, alice.ID, *report.ReportedUserID)

	t.Run("duplicate pair is conflict", func(t *testing.T) {
		_, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
			Type:        models.ReportTypeSpam,
			Description: "still not ok",
		})
		requireKind(t, err, apperr.KindConflict)

		var count int64
		require.NoError(t, db.Model(&models.Report{}).
			Where("reporter_id = ? AND message_id = ?", bob.ID, message.ID).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{Type: "mean", Description: "x"})
		requireKind(t, err, apperr.KindValidation)
	})

	t.Run("missing description", func(t *testing.T) {
		_, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{Type: models.ReportTypeSpam, Description: "  "})
		requireKind(t, err, apperr.KindValidation)
	})

	t.Run("missing message", func(t *testing.T) {
		other := sendTestMessage(t, db, alice, bob, false)
		require.NoError(t, db.Delete(other).Error)
		_, err := svc.CreateReport(bob.ID, other.ID, &dto.CreateReportRequest{Type: models.ReportTypeSpam, Description: "x"})
		requireKind(t, err, apperr.KindNotFound)
	})
}

func TestCreateReportAnonymousSnapshotIsNil(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	message := sendTestMessage(t, db, alice, bob, true)

	report, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
		Type:        models.ReportTypeSpam,
		Description: "anonymous spam",
	})
	require.NoError(t, err)
	assert.Nil(t, report.ReportedUserID)
}

func TestReviewReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	admin := createUser(t, db, "admin", asAdmin())

	message := sendTestMessage(t, db, alice, bob, false)
	report, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
		Type:        models.ReportTypeHarassment,
		Description: "abusive",
	})
	require.NoError(t, err)

	reviewed, err := svc.ReviewReport(admin, report.ID, &dto.ReviewReportRequest{
		Status:    models.ReportStatusResolved,
		AdminNote: "confirmed",
		Action:    &dto.ReviewAction{Type: models.ReportActionBanUser},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, reviewed.Status)

	var stored models.Report
	require.NoError(t, db.First(&stored, "id = ?", report.ID).Error)
	assert.Equal(t, "confirmed", stored.AdminNote)
	require.NotNil(t, stored.ReviewerID)
	assert.Equal(t, admin.ID, *stored.ReviewerID)
	assert.NotNil(t, stored.ReviewedAt)

	// Cascade: the reported user is now banned.
	var target models.User
	require.NoError(t, db.First(&target, "id = ?", alice.ID).Error)
	assert.Equal(t, models.UserStatusBanned, target.Status)

	t.Run("terminal report cannot be reviewed again", func(t *testing.T) {
		_, err := svc.ReviewReport(admin, report.ID, &dto.ReviewReportRequest{Status: models.ReportStatusDismissed})
		requireKind(t, err, apperr.KindConflict)
	})

	t.Run("invalid target status", func(t *testing.T) {
		_, err := svc.ReviewReport(admin, report.ID, &dto.ReviewReportRequest{Status: models.ReportStatusPending})
		requireKind(t, err, apperr.KindValidation)
	})
}

func TestReviewCascadesAreBestEffort(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	admin := createUser(t, db, "admin", asAdmin())

	t.Run("ban_user no-ops for anonymous sender", func(t *testing.T) {
		message := sendTestMessage(t, db, alice, bob, true)
		report, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
			Type:        models.ReportTypeSpam,
			Description: "anon spam",
		})
		require.NoError(t, err)

		reviewed, err := svc.ReviewReport(admin, report.ID, &dto.ReviewReportRequest{
			Status: models.ReportStatusResolved,
			Action: &dto.ReviewAction{Type: models.ReportActionBanUser},
		})
		require.NoError(t, err, "review commits even though the action has no target")
		assert.Equal(t, models.ReportStatusResolved, reviewed.Status)

		var sender models.User
		require.NoError(t, db.First(&sender, "id = ?", alice.ID).Error)
		assert.Equal(t, models.UserStatusActive, sender.Status)
	})

	t.Run("delete_message no-ops when message already gone", func(t *testing.T) {
		message := sendTestMessage(t, db, alice, bob, false)
		report, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
			Type:        models.ReportTypeSpam,
			Description: "gone soon",
		})
		require.NoError(t, err)
		require.NoError(t, db.Delete(message).Error)

		reviewed, err := svc.ReviewReport(admin, report.ID, &dto.ReviewReportRequest{
			Status: models.ReportStatusResolved,
			Action: &dto.ReviewAction{Type: models.ReportActionDeleteMessage},
		})
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusResolved, reviewed.Status)
	})

	t.Run("block_user skips admin targets", func(t *testing.T) {
		moderator := createUser(t, db, "moderator", asAdmin())
		message := sendTestMessage(t, db, moderator, bob, false)
		report, err := svc.CreateReport(bob.ID, message.ID, &dto.CreateReportRequest{
			Type:        models.ReportTypeOther,
			Description: "grudge report",
		})
		require.NoError(t, err)

		_, err = svc.ReviewReport(admin, report.ID, &dto.ReviewReportRequest{
			Status: models.ReportStatusDismissed,
			Action: &dto.ReviewAction{Type: models.ReportActionBlockUser},
		})
		require.NoError(t, err)

		var target models.User
		require.NoError(t, db.First(&target, "id = ?", moderator.ID).Error)
		assert.Equal(t, models.UserStatusActive, target.Status)
	})
}

func TestListReports(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	admin := createUser(t, db, "admin", asAdmin())

	first := sendTestMessage(t, db, alice, bob, false)
	second := sendTestMessage(t, db, alice, bob, false)

	r1, err := svc.CreateReport(bob.ID, first.ID, &dto.CreateReportRequest{Type: models.ReportTypeSpam, Description: "one"})
	require.NoError(t, err)
	_, err = svc.CreateReport(bob.ID, second.ID, &dto.CreateReportRequest{Type: models.ReportTypeSpam, Description: "two"})
	require.NoError(t, err)

	_, err = svc.ReviewReport(admin, r1.ID, &dto.ReviewReportRequest{Status: models.ReportStatusDismissed})
	require.NoError(t, err)

	pending, total, err := svc.ListReports(models.ReportStatusPending, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, "two", pending[0].Description)

	all, total, err := svc.ListReports("", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}
