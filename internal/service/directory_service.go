// Package service implements the business rules on top of the repositories.
package service

import (
	"context"

	"warbler/internal/auth"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// DirectoryService manages accounts: signup, authentication, profile edits,
// and deletion with cascade.
type DirectoryService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewDirectoryService returns a DirectoryService over the given repository.
func NewDirectoryService(userRepo repository.UserRepository) *DirectoryService {
	return &DirectoryService{userRepo: userRepo}
}

// WithTokens enables token issuance on Login.
func (s *DirectoryService) WithTokens(tokens *auth.TokenManager) *DirectoryService {
	s.tokens = tokens
	return s
}

// SignupInput carries the fields a new account is created from.
type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// UpdateProfileInput carries a partial profile edit by the acting user.
// Empty fields are left unchanged.
type UpdateProfileInput struct {
	ActingUserID   uint
	Username       string
	Email          string
	Bio            string
	Location       string
	ImageURL       string
	HeaderImageURL string
}

// requireActingUser rejects unauthenticated calls before any write happens.
func requireActingUser(actingUserID uint) error {
	if actingUserID == 0 {
		return models.NewUnauthorizedError("Access unauthorized")
	}
	return nil
}

// Signup creates a new account with a hashed password. Field shape is
// validated eagerly; username/email uniqueness is left to the store's unique
// indexes and surfaces as a validation error when the insert commits.
func (s *DirectoryService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		Password:       hashed,
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when the username exists and the password
// matches its stored hash. Unknown username and wrong password are
// indistinguishable: both return (nil, nil).
func (s *DirectoryService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if !auth.CheckPassword(password, user.Password) {
		return nil, nil
	}
	return user, nil
}

// Login authenticates and, when a token manager is configured, issues a
// signed token carrying the user's id. Failed credentials return
// (nil, "", nil) just like Authenticate.
func (s *DirectoryService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil || user == nil {
		return nil, "", err
	}
	if s.tokens == nil {
		return user, "", nil
	}
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// UpdateProfile applies a partial edit to the acting user's own profile.
func (s *DirectoryService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := requireActingUser(in.ActingUserID); err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxLocationLen = 100

	fields := map[string]interface{}{}
	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["username"] = in.Username
	}
	if in.Email != "" {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["email"] = in.Email
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		fields["bio"] = in.Bio
	}
	if in.Location != "" {
		if len(in.Location) > maxLocationLen {
			return nil, models.NewValidationError("Location too long (max 100 characters)")
		}
		fields["location"] = in.Location
	}
	if in.ImageURL != "" {
		fields["image_url"] = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		fields["header_image_url"] = in.HeaderImageURL
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, in.ActingUserID, fields); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetByID(ctx, in.ActingUserID)
}

// DeleteUser removes the target account and cascades to its messages and to
// every follow/like edge referencing it. Only the account owner may delete
// it.
func (s *DirectoryService) DeleteUser(ctx context.Context, actingUserID, targetID uint) error {
	if err := requireActingUser(actingUserID); err != nil {
		return err
	}
	if actingUserID != targetID {
		return models.NewUnauthorizedError("You can only delete your own account")
	}
	return s.userRepo.DeleteCascade(ctx, targetID)
}

// GetUser returns the user with the given id, or a not-found error.
func (s *DirectoryService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers pages through all users.
func (s *DirectoryService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
