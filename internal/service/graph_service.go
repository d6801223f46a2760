package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// GraphService manages the directed follow relationships between users.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewGraphService returns a GraphService over the given repositories.
func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{followRepo: followRepo, userRepo: userRepo}
}

// Follow inserts the acting user's edge to the followee. Following someone
// already followed is a no-op; following yourself is rejected.
func (s *GraphService) Follow(ctx context.Context, actingUserID, followeeID uint) error {
	if err := requireActingUser(actingUserID); err != nil {
		return err
	}
	if actingUserID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}

	// Ensure the followee exists so a bad id fails as not-found rather
	// than a dangling edge.
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	exists, err := s.followRepo.Exists(ctx, actingUserID, followeeID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.followRepo.Create(ctx, actingUserID, followeeID)
}

// Unfollow removes the edge; unfollowing someone not followed is a no-op.
func (s *GraphService) Unfollow(ctx context.Context, actingUserID, followeeID uint) error {
	if err := requireActingUser(actingUserID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, actingUserID, followeeID)
}

// IsFollowing reports whether a follows b.
func (s *GraphService) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	return s.followRepo.Exists(ctx, a, b)
}

// IsFollowedBy reports whether a is followed by b.
func (s *GraphService) IsFollowedBy(ctx context.Context, a, b uint) (bool, error) {
	return s.followRepo.Exists(ctx, b, a)
}

// Following returns the users the given user follows.
func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.Following(ctx, userID)
}

// Followers returns the users following the given user.
func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.Followers(ctx, userID)
}
