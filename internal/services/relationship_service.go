package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/models"
	"gorm.io/gorm"
)

// RelationshipService owns the follow and block edges. IsBlockedEitherWay is
// the single policy primitive messaging, following, and profile lookup consult.
type RelationshipService struct {
	db *gorm.DB
}

func NewRelationshipService(db *gorm.DB) *RelationshipService {
	return &RelationshipService{db: db}
}

func (s *RelationshipService) Follow(actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return apperr.Validation("cannot follow yourself")
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil || !target.IsActive() {
		return apperr.NotFound("user not found")
	}

	blocked, err := s.IsBlockedEitherWay(actorID, targetID)
	if err != nil {
		return apperr.Internal(err)
	}
	if blocked {
		return apperr.Forbidden("cannot follow this user")
	}

	var existing models.Follow
	if err := s.db.Where("follower_id = ? AND following_id = ?", actorID, targetID).First(&existing).Error; err == nil {
		return apperr.Conflict("already following")
	}

	follow := models.Follow{
		ID:          uuid.New(),
		FollowerID:  actorID,
		FollowingID: targetID,
	}
	if err := s.db.Create(&follow).Error; err != nil {
		// The unique pair index resolves a concurrent duplicate to the same
		// Conflict the pre-check would have returned.
		return apperr.Conflict("already following")
	}
	return nil
}

func (s *RelationshipService) Unfollow(actorID, targetID uuid.UUID) error {
	result := s.db.Where("follower_id = ? AND following_id = ?", actorID, targetID).Delete(&models.Follow{})
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("not following this user")
	}
	return nil
}

// Block creates the block edge and atomically severs follow edges in both
// directions. Unblocking later does not restore them.
func (s *RelationshipService) Block(actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return apperr.Validation("cannot block yourself")
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return apperr.NotFound("user not found")
	}

	var existing models.Block
	if err := s.db.Where("blocker_id = ? AND blocked_id = ?", actorID, targetID).First(&existing).Error; err == nil {
		return apperr.Conflict("already blocked")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		block := models.Block{
			ID:        uuid.New(),
			BlockerID: actorID,
			BlockedID: targetID,
		}
		if err := tx.Create(&block).Error; err != nil {
			return err
		}
		return tx.Where(
			"(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			actorID, targetID, targetID, actorID,
		).Delete(&models.Follow{}).Error
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to block user: %w", err))
	}
	return nil
}

func (s *RelationshipService) Unblock(actorID, targetID uuid.UUID) error {
	result := s.db.Where("blocker_id = ? AND blocked_id = ?", actorID, targetID).Delete(&models.Block{})
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("no block exists for this user")
	}
	return nil
}

// IsBlockedEitherWay reports whether a block edge exists in either direction
// between the two users.
func (s *RelationshipService) IsBlockedEitherWay(a, b uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowingIDs returns the ids of everyone the user follows (feed fan-out).
func (s *RelationshipService) FollowingIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var follows []models.Follow
	if err := s.db.Where("follower_id = ?", userID).Find(&follows).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(follows))
	for i, f := range follows {
		ids[i] = f.FollowingID
	}
	return ids, nil
}

func (s *RelationshipService) Followers(userID uuid.UUID, page, limit int) ([]models.User, int64, error) {
	return s.edgeUsers(userID, "following_id", "follower_id", page, limit)
}

func (s *RelationshipService) Following(userID uuid.UUID, page, limit int) ([]models.User, int64, error) {
	return s.edgeUsers(userID, "follower_id", "following_id", page, limit)
}

func (s *RelationshipService) edgeUsers(userID uuid.UUID, matchCol, selectCol string, page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.Model(&models.Follow{}).Where(matchCol+" = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sub := s.db.Model(&models.Follow{}).Select(selectCol).Where(matchCol+" = ?", userID)

	var users []models.User
	err := s.db.Where("id IN (?)", sub).
		Where("status = ?", models.UserStatusActive).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}
