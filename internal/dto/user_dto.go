package dto

import (
	"time"

	"github.com/google/uuid"
)

// PublicProfile is the only projection of a user exposed to other users.
// Credentials, status, and preference fields never appear here.
type PublicProfile struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	AvatarKey   string    `json:"avatar_key,omitempty"`
	MessageLink string    `json:"message_link"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName        *string `json:"display_name"`
	Bio                *string `json:"bio"`
	AvatarKey          *string `json:"avatar_key"`
	AcceptsAnonymous   *bool   `json:"accepts_anonymous"`
	EmailNotifications *bool   `json:"email_notifications"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// StatusChange is the audit record returned by the admin status endpoint.
type StatusChange struct {
	UserID         uuid.UUID `json:"user_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Reason         string    `json:"reason,omitempty"`
}
