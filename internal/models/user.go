package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User statuses. Blocked and banned users are rejected at the middleware
// boundary before any business logic runs.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
	UserStatusBanned  = "banned"
)

type User struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Handle             string         `gorm:"size:20;not null;uniqueIndex" json:"handle"`
	MessageLink        string         `gorm:"size:64;not null;uniqueIndex" json:"message_link"`
	DisplayName        string         `gorm:"size:100" json:"display_name"`
	Bio                string         `gorm:"size:500" json:"bio"`
	AvatarKey          string         `gorm:"size:255" json:"avatar_key"`
	Email              string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password           string         `gorm:"not null" json:"-"`
	Status             string         `gorm:"size:20;not null;default:'active'" json:"status"`
	IsAdmin            bool           `gorm:"default:false" json:"is_admin"`
	AcceptsAnonymous   bool           `gorm:"default:true" json:"accepts_anonymous"`
	EmailNotifications bool           `gorm:"default:true" json:"email_notifications"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusBlocked || s == UserStatusBanned
}
