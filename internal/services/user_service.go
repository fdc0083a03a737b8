package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db            *gorm.DB
	relationships *RelationshipService
}

func NewUserService(db *gorm.DB, relationships *RelationshipService) *UserService {
	return &UserService{db: db, relationships: relationships}
}

// GetPublicProfile resolves a handle or message link to the public projection.
// Inactive users are indistinguishable from missing ones, and a block in
// either direction hides the profile from the viewer.
func (s *UserService) GetPublicProfile(viewerID *uuid.UUID, handle string) (*dto.PublicProfile, error) {
	var user models.User
	if err := s.db.Where("handle = ? OR message_link = ?", handle, handle).First(&user).Error; err != nil {
		return nil, apperr.NotFound("user not found")
	}
	if !user.IsActive() {
		return nil, apperr.NotFound("user not found")
	}

	if viewerID != nil && *viewerID != user.ID {
		blocked, err := s.relationships.IsBlockedEitherWay(*viewerID, user.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if blocked {
			return nil, apperr.Forbidden("profile not available")
		}
	}

	profile := PublicProfileOf(&user)
	return &profile, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperr.NotFound("user not found")
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		if len(*req.DisplayName) > 100 {
			return nil, apperr.Validation("display name must be at most 100 characters")
		}
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		if len(*req.Bio) > 500 {
			return nil, apperr.Validation("bio must be at most 500 characters")
		}
		updates["bio"] = *req.Bio
	}
	if req.AvatarKey != nil {
		updates["avatar_key"] = *req.AvatarKey
	}
	if req.AcceptsAnonymous != nil {
		updates["accepts_anonymous"] = *req.AcceptsAnonymous
	}
	if req.EmailNotifications != nil {
		updates["email_notifications"] = *req.EmailNotifications
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, apperr.Internal(fmt.Errorf("failed to update profile: %w", err))
		}
	}
	return &user, nil
}

// SetStatus is the admin status transition. Admin targets are protected from
// status changes by any actor; there is no role hierarchy above admin.
func (s *UserService) SetStatus(actor *models.User, targetID uuid.UUID, req *dto.SetStatusRequest) (*dto.StatusChange, error) {
	if !models.ValidUserStatus(req.Status) {
		return nil, apperr.Validation("status must be active, blocked, or banned")
	}
	if actor.ID == targetID {
		return nil, apperr.Validation("cannot change your own status")
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return nil, apperr.NotFound("user not found")
	}
	if target.IsAdmin {
		return nil, apperr.Forbidden("admin accounts cannot be moderated")
	}

	previous := target.Status
	if err := s.db.Model(&target).Update("status", req.Status).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to update status: %w", err))
	}

	return &dto.StatusChange{
		UserID:         target.ID,
		PreviousStatus: previous,
		NewStatus:      req.Status,
		Reason:         req.Reason,
	}, nil
}

// PublicProfileOf projects a user onto the fields other users may see.
func PublicProfileOf(u *models.User) dto.PublicProfile {
	return dto.PublicProfile{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarKey:   u.AvatarKey,
		MessageLink: u.MessageLink,
		CreatedAt:   u.CreatedAt,
	}
}
