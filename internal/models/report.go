package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report statuses. Pending is the only non-terminal state; there is no
// reopening transition.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Report types.
const (
	ReportTypeSpam          = "spam"
	ReportTypeHarassment    = "harassment"
	ReportTypeInappropriate = "inappropriate_content"
	ReportTypeFakeAccount   = "fake_account"
	ReportTypeOther         = "other"
)

// Cascading actions an admin may attach to a review.
const (
	ReportActionDeleteMessage = "delete_message"
	ReportActionBlockUser     = "block_user"
	ReportActionBanUser       = "ban_user"
)

// Report references a message; ReportedUserID snapshots the message's sender
// at report time and stays nil for anonymous messages, which makes the
// block_user/ban_user cascades no-op for them.
type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reporter_message,priority:1;index" json:"reporter_id"`
	MessageID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reporter_message,priority:2;index" json:"message_id"`
	ReportedUserID *uuid.UUID `gorm:"type:uuid;index" json:"reported_user_id,omitempty"`
	Type           string     `gorm:"size:50;not null" json:"type"`
	Description    string     `gorm:"size:1000;not null" json:"description"`
	ScreenshotKey  string     `gorm:"size:255" json:"screenshot_key,omitempty"`
	Status         string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AdminNote      string     `gorm:"size:1000" json:"admin_note,omitempty"`
	ReviewerID     *uuid.UUID `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Reporter       User       `gorm:"foreignKey:ReporterID" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func ValidReportType(t string) bool {
	switch t {
	case ReportTypeSpam, ReportTypeHarassment, ReportTypeInappropriate, ReportTypeFakeAccount, ReportTypeOther:
		return true
	}
	return false
}

func ValidReportAction(a string) bool {
	switch a {
	case ReportActionDeleteMessage, ReportActionBlockUser, ReportActionBanUser:
		return true
	}
	return false
}
