package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	key := cache.MessageKey(id)

	err := cache.Aside(ctx, key, &message, cache.MessageTTL, func() error {
		if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetByUserID returns the user's messages, newest first.
func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Delete removes the message and any likes pointing at it, in one
// transaction.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Message{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Message", id)
		}
		return nil
	})
	if err != nil {
		if models.CodeOf(err) != "" {
			return err
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateMessage(ctx, id)
	return nil
}
