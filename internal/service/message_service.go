package service

import (
	"context"
	"time"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// MessageService manages the ordered collection of posts.
type MessageService struct {
	messageRepo repository.MessageRepository
	now         func() time.Time
}

// NewMessageService returns a MessageService over the given repository.
func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, now: time.Now}
}

// CreateMessageInput carries a new post. A nil Timestamp defaults to the
// creation time.
type CreateMessageInput struct {
	ActingUserID uint
	Text         string
	Timestamp    *time.Time
}

// CreateMessage validates and persists a post owned by the acting user.
func (s *MessageService) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	if err := requireActingUser(in.ActingUserID); err != nil {
		return nil, err
	}
	if err := validation.ValidateMessageText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	timestamp := s.now().UTC()
	if in.Timestamp != nil {
		timestamp = *in.Timestamp
	}

	message := &models.Message{
		Text:      in.Text,
		Timestamp: timestamp,
		UserID:    in.ActingUserID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// DeleteMessage removes a post. Only its owner may delete it.
func (s *MessageService) DeleteMessage(ctx context.Context, actingUserID, messageID uint) error {
	if err := requireActingUser(actingUserID); err != nil {
		return err
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != actingUserID {
		return models.NewUnauthorizedError("You can only delete your own messages")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

// GetMessage returns the message with the given id, or (nil, nil) when it
// does not exist.
func (s *MessageService) GetMessage(ctx context.Context, messageID uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if models.CodeOf(err) == models.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return message, nil
}

// MessagesByUser returns the user's posts, newest first.
func (s *MessageService) MessagesByUser(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messageRepo.GetByUserID(ctx, userID, 0, 0)
}
