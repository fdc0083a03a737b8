package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Content     string    `json:"content"`
	ImageKey    string    `json:"image_key"`
	Anonymous   bool      `json:"anonymous"`
}

type ReplyRequest struct {
	Content  string `json:"content"`
	IsPublic bool   `json:"is_public"`
}

// MessageView is the recipient-facing projection. Sender is nil whenever the
// message is anonymous, regardless of what is stored internally.
type MessageView struct {
	ID          uuid.UUID      `json:"id"`
	Sender      *PublicProfile `json:"sender"`
	Content     string         `json:"content"`
	ImageKey    string         `json:"image_key,omitempty"`
	IsAnonymous bool           `json:"is_anonymous"`
	IsRead      bool           `json:"is_read"`
	Reply       *ReplyView     `json:"reply,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ReplyView struct {
	Content   string    `json:"content"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedItem is one public reply in the feed.
type FeedItem struct {
	MessageID uuid.UUID     `json:"message_id"`
	Recipient PublicProfile `json:"recipient"`
	Content   string        `json:"content"`
	Reply     ReplyView     `json:"reply"`
}
