package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/whisperbox/backend/internal/apperr"
	"github.com/whisperbox/backend/internal/dto"
	"github.com/whisperbox/backend/internal/models"
	"github.com/whisperbox/backend/internal/notifier"
	"gorm.io/gorm"
)

type MessageService struct {
	db            *gorm.DB
	relationships *RelationshipService
	filter        *ContentFilter
	notifier      notifier.Notifier
}

func NewMessageService(db *gorm.DB, relationships *RelationshipService, filter *ContentFilter, n notifier.Notifier) *MessageService {
	return &MessageService{db: db, relationships: relationships, filter: filter, notifier: n}
}

// Send delivers a message to a recipient. sender is nil for unauthenticated
// callers. The stored sender is nil whenever the message is anonymous — the
// is_anonymous flag is the authoritative signal for every projection, and the
// nil pointer keeps raw rows from leaking an identity alongside it.
func (s *MessageService) Send(sender *models.User, req *dto.SendMessageRequest) (*models.Message, error) {
	if len(req.Content) == 0 || len(req.Content) > 500 {
		return nil, apperr.Validation("content must be 1-500 characters")
	}
	if ok, reason := s.filter.Check(req.Content); !ok {
		return nil, apperr.Validation(s.filter.RejectionMessage(reason))
	}

	var recipient models.User
	if err := s.db.First(&recipient, "id = ?", req.RecipientID).Error; err != nil || !recipient.IsActive() {
		return nil, apperr.NotFound("recipient not found")
	}

	anonymous := req.Anonymous || sender == nil
	if anonymous && !recipient.AcceptsAnonymous {
		return nil, apperr.Forbidden("recipient does not accept anonymous messages")
	}

	if sender != nil {
		if sender.ID == recipient.ID {
			return nil, apperr.Validation("cannot send a message to yourself")
		}
		blocked, err := s.relationships.IsBlockedEitherWay(sender.ID, recipient.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if blocked {
			return nil, apperr.Forbidden("cannot message this user")
		}
	}

	var senderID *uuid.UUID
	if sender != nil && !anonymous {
		id := sender.ID
		senderID = &id
	}

	message := models.Message{
		ID:          uuid.New(),
		RecipientID: recipient.ID,
		SenderID:    senderID,
		Content:     req.Content,
		ImageKey:    req.ImageKey,
		IsAnonymous: anonymous,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to create message: %w", err))
	}

	if recipient.EmailNotifications {
		event := notifier.NewMessageEvent{
			RecipientID:    recipient.ID,
			RecipientEmail: recipient.Email,
			SenderName:     senderDisplayName(sender, anonymous),
			Anonymous:      anonymous,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.notifier.NotifyNewMessage(ctx, event); err != nil {
				slog.Error("message notification failed", "error", err, "recipient_id", recipient.ID)
			}
		}()
	}

	return &message, nil
}

// MarkRead is idempotent; repeated calls succeed without effect.
func (s *MessageService) MarkRead(recipientID, messageID uuid.UUID) error {
	message, err := s.ownedMessage(recipientID, messageID)
	if err != nil {
		return err
	}
	if message.IsRead {
		return nil
	}
	if err := s.db.Model(message).Update("is_read", true).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Reply sets the write-once reply sub-record and marks the message read.
func (s *MessageService) Reply(recipientID, messageID uuid.UUID, req *dto.ReplyRequest) (*models.Message, error) {
	if len(req.Content) == 0 || len(req.Content) > 500 {
		return nil, apperr.Validation("reply must be 1-500 characters")
	}

	message, err := s.ownedMessage(recipientID, messageID)
	if err != nil {
		return nil, err
	}
	if message.HasReply() {
		return nil, apperr.Conflict("message already has a reply")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"reply_content":   req.Content,
		"reply_is_public": req.IsPublic,
		"replied_at":      now,
		"is_read":         true,
	}
	if err := s.db.Model(message).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to store reply: %w", err))
	}
	return message, nil
}

// Delete permanently removes a message owned by the recipient.
func (s *MessageService) Delete(recipientID, messageID uuid.UUID) error {
	result := s.db.Where("id = ? AND recipient_id = ?", messageID, recipientID).Delete(&models.Message{})
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("message not found")
	}
	return nil
}

// AdminDelete removes any message regardless of ownership.
func (s *MessageService) AdminDelete(messageID uuid.UUID) error {
	result := s.db.Where("id = ?", messageID).Delete(&models.Message{})
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("message not found")
	}
	return nil
}

// Inbox lists the recipient's messages newest-first. The sender projection is
// nil whenever the anonymity flag is set, regardless of the stored sender.
func (s *MessageService) Inbox(recipientID uuid.UUID, page, limit int) ([]dto.MessageView, int64, error) {
	var total int64
	if err := s.db.Model(&models.Message{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var messages []models.Message
	err := s.db.Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	views := make([]dto.MessageView, len(messages))
	for i := range messages {
		views[i] = messageView(&messages[i])
	}
	return views, total, nil
}

// Feed returns public replies across the recipients the viewer follows plus
// the viewer's own, newest reply first.
func (s *MessageService) Feed(viewerID uuid.UUID, page, limit int) ([]dto.FeedItem, int64, error) {
	ids, err := s.relationships.FollowingIDs(viewerID)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	ids = append(ids, viewerID)

	query := s.db.Model(&models.Message{}).
		Where("recipient_id IN ?", ids).
		Where("replied_at IS NOT NULL AND reply_is_public = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	var messages []models.Message
	err = query.Preload("Recipient").
		Order("replied_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	items := make([]dto.FeedItem, len(messages))
	for i, m := range messages {
		items[i] = dto.FeedItem{
			MessageID: m.ID,
			Recipient: PublicProfileOf(&m.Recipient),
			Content:   m.Content,
			Reply: dto.ReplyView{
				Content:   *m.ReplyContent,
				IsPublic:  m.ReplyIsPublic,
				CreatedAt: *m.RepliedAt,
			},
		}
	}
	return items, total, nil
}

func (s *MessageService) ownedMessage(recipientID, messageID uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := s.db.Where("id = ? AND recipient_id = ?", messageID, recipientID).First(&message).Error; err != nil {
		return nil, apperr.NotFound("message not found")
	}
	return &message, nil
}

func messageView(m *models.Message) dto.MessageView {
	view := dto.MessageView{
		ID:          m.ID,
		Content:     m.Content,
		ImageKey:    m.ImageKey,
		IsAnonymous: m.IsAnonymous,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
	if !m.IsAnonymous && m.Sender != nil {
		profile := PublicProfileOf(m.Sender)
		view.Sender = &profile
	}
	if m.HasReply() {
		view.Reply = &dto.ReplyView{
			Content:   *m.ReplyContent,
			IsPublic:  m.ReplyIsPublic,
			CreatedAt: *m.RepliedAt,
		}
	}
	return view
}

func senderDisplayName(sender *models.User, anonymous bool) string {
	if anonymous || sender == nil {
		return "Anonymous"
	}
	if sender.DisplayName != "" {
		return sender.DisplayName
	}
	return sender.Handle
}
