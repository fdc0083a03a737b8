package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directed message to a recipient. SenderID is nil for anonymous
// or unauthenticated senders; IsAnonymous is the authoritative flag for every
// recipient-facing projection, so a non-nil sender never leaks through it.
// The reply columns form a write-once sub-record: RepliedAt non-nil means the
// reply exists and can never be edited.
type Message struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID      *uuid.UUID `gorm:"type:uuid;index" json:"sender_id,omitempty"`
	Content       string     `gorm:"size:500;not null" json:"content"`
	ImageKey      string     `gorm:"size:255" json:"image_key,omitempty"`
	IsAnonymous   bool       `gorm:"default:false" json:"is_anonymous"`
	IsRead        bool       `gorm:"default:false" json:"is_read"`
	ReplyContent  *string    `gorm:"size:500" json:"reply_content,omitempty"`
	ReplyIsPublic bool       `gorm:"default:false" json:"reply_is_public"`
	RepliedAt     *time.Time `json:"replied_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Recipient     User       `gorm:"foreignKey:RecipientID" json:"-"`
	Sender        *User      `gorm:"foreignKey:SenderID" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Message) HasReply() bool {
	return m.RepliedAt != nil
}
