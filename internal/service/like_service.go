package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// LikeState is the outcome of a like toggle.
type LikeState string

const (
	// Liked means the toggle created the edge.
	Liked LikeState = "liked"
	// Unliked means the toggle removed the edge.
	Unliked LikeState = "unliked"
)

// LikeService manages the user-likes-message relation.
type LikeService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
}

// NewLikeService returns a LikeService over the given repositories.
func NewLikeService(likeRepo repository.LikeRepository, messageRepo repository.MessageRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, messageRepo: messageRepo}
}

// ToggleLike flips the acting user's like on a message and returns the
// resulting state. Users may like their own messages.
func (s *LikeService) ToggleLike(ctx context.Context, actingUserID, messageID uint) (LikeState, error) {
	if err := requireActingUser(actingUserID); err != nil {
		return "", err
	}

	if _, err := s.messageRepo.GetByID(ctx, messageID); err != nil {
		return "", err
	}

	liked, err := s.likeRepo.Exists(ctx, actingUserID, messageID)
	if err != nil {
		return "", err
	}

	if liked {
		if err := s.likeRepo.Delete(ctx, actingUserID, messageID); err != nil {
			return "", err
		}
		return Unliked, nil
	}

	if err := s.likeRepo.Create(ctx, actingUserID, messageID); err != nil {
		return "", err
	}
	return Liked, nil
}

// LikedMessages returns the messages the user has liked.
func (s *LikeService) LikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likeRepo.MessagesLikedBy(ctx, userID)
}
