package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/models"
	"gorm.io/gorm"
)

// ModerationService owns the report lifecycle: pending is the only reviewable
// state, and a review may carry exactly one best-effort cascading action.
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// CreateReport files a report against a message. The reported user is a
// snapshot of the message's sender at this moment; for anonymous messages it
// stays nil and user-level cascades will no-op.
func (s *ModerationService) CreateReport(reporterID, messageID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if !models.ValidReportType(req.Type) {
		return nil, apperr.Validation("type must be spam, harassment, inappropriate_content, fake_account, or other")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	if len(req.Description) > 1000 {
		return nil, apperr.Validation("description must be at most 1000 characters")
	}

	var message models.Message
	if err := s.db.First(&message, "id = ?", messageID).Error; err != nil {
		return nil, apperr.NotFound("message not found")
	}

	var existing models.Report
	if err := s.db.Where("reporter_id = ? AND message_id = ?", reporterID, messageID).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("you have already reported this message")
	}

	report := models.Report{
		ID:             uuid.New(),
		ReporterID:     reporterID,
		MessageID:      messageID,
		ReportedUserID: message.SenderID,
		Type:           req.Type,
		Description:    req.Description,
		ScreenshotKey:  req.ScreenshotKey,
		Status:         models.ReportStatusPending,
	}

	if err := s.db.Create(&report).Error; err != nil {
		// Unique (reporter, message) index turns a concurrent duplicate into
		// the same Conflict.
		return nil, apperr.Conflict("you have already reported this message")
	}
	return &report, nil
}

func (s *ModerationService) ListReports(status string, page, limit int) ([]models.Report, int64, error) {
	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var reports []models.Report
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return reports, total, nil
}

// ReviewReport transitions a pending report to a terminal state. Reviewing a
// terminal report fails with Conflict — there is no reopening transition. The
// optional cascading action is best-effort: the review commits even when the
// action target no longer exists.
func (s *ModerationService) ReviewReport(reviewer *models.User, reportID uuid.UUID, req *dto.ReviewReportRequest) (*models.Report, error) {
	switch req.Status {
	case models.ReportStatusReviewed, models.ReportStatusResolved, models.ReportStatusDismissed:
	default:
		return nil, apperr.Validation("status must be reviewed, resolved, or dismissed")
	}
	if req.Action != nil && !models.ValidReportAction(req.Action.Type) {
		return nil, apperr.Validation("action type must be delete_message, block_user, or ban_user")
	}

	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		return nil, apperr.NotFound("report not found")
	}
	if report.Status != models.ReportStatusPending {
		return nil, apperr.Conflict("report has already been reviewed")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      req.Status,
		"admin_note":  req.AdminNote,
		"reviewer_id": reviewer.ID,
		"reviewed_at": now,
	}
	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to update report: %w", err))
	}

	if req.Action != nil {
		s.applyAction(&report, req.Action.Type)
	}

	return &report, nil
}

// applyAction executes a review cascade. Failures are logged, never returned:
// the primary review has already committed.
func (s *ModerationService) applyAction(report *models.Report, action string) {
	switch action {
	case models.ReportActionDeleteMessage:
		result := s.db.Where("id = ?", report.MessageID).Delete(&models.Message{})
		if result.Error != nil {
			slog.Error("report action failed", "action", action, "report_id", report.ID, "error", result.Error)
		}
	case models.ReportActionBlockUser, models.ReportActionBanUser:
		if report.ReportedUserID == nil {
			slog.Info("report action skipped: anonymous sender", "action", action, "report_id", report.ID)
			return
		}
		status := models.UserStatusBlocked
		if action == models.ReportActionBanUser {
			status = models.UserStatusBanned
		}
		result := s.db.Model(&models.User{}).
			Where("id = ? AND is_admin = false", *report.ReportedUserID).
			Update("status", status)
		if result.Error != nil {
			slog.Error("report action failed", "action", action, "report_id", report.ID, "error", result.Error)
		}
	}
}
