package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for like edges.
type LikeRepository interface {
	Create(ctx context.Context, userID, messageID uint) error
	Delete(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	MessagesLikedBy(ctx context.Context, userID uint) ([]models.Message, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the (user, message) edge if absent; the unique index makes
// a duplicate insert a no-op.
func (r *likeRepository) Create(ctx context.Context, userID, messageID uint) error {
	like := &models.Like{UserID: userID, MessageID: messageID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// MessagesLikedBy returns the messages the user has liked, newest like first.
func (r *likeRepository) MessagesLikedBy(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Table("messages").
		Joins("JOIN likes l ON messages.id = l.message_id").
		Where("l.user_id = ?", userID).
		Order("l.created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
