package service

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs let each test override exactly the calls it cares
// about; everything else is a safe no-op.

type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFieldsFn  func(ctx context.Context, id uint, fields map[string]interface{}) error
	deleteCascadeFn func(ctx context.Context, id uint) error
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFieldsFn:  func(context.Context, uint, map[string]interface{}) error { return nil },
		deleteCascadeFn: func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

type followRepoStub struct {
	createFn    func(ctx context.Context, followerID, followeeID uint) error
	deleteFn    func(ctx context.Context, followerID, followeeID uint) error
	existsFn    func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followingFn func(ctx context.Context, userID uint) ([]models.User, error)
	followersFn func(ctx context.Context, userID uint) ([]models.User, error)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:    func(context.Context, uint, uint) error { return nil },
		deleteFn:    func(context.Context, uint, uint) error { return nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) error {
	return s.createFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}

type messageRepoStub struct {
	createFn      func(ctx context.Context, message *models.Message) error
	getByIDFn     func(ctx context.Context, id uint) (*models.Message, error)
	getByUserIDFn func(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	deleteFn      func(ctx context.Context, id uint) error
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn: func(context.Context, *models.Message) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id}, nil
		},
		getByUserIDFn: func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type likeRepoStub struct {
	createFn          func(ctx context.Context, userID, messageID uint) error
	deleteFn          func(ctx context.Context, userID, messageID uint) error
	existsFn          func(ctx context.Context, userID, messageID uint) (bool, error)
	messagesLikedByFn func(ctx context.Context, userID uint) ([]models.Message, error)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:          func(context.Context, uint, uint) error { return nil },
		deleteFn:          func(context.Context, uint, uint) error { return nil },
		existsFn:          func(context.Context, uint, uint) (bool, error) { return false, nil },
		messagesLikedByFn: func(context.Context, uint) ([]models.Message, error) { return nil, nil },
	}
}

func (s *likeRepoStub) Create(ctx context.Context, userID, messageID uint) error {
	return s.createFn(ctx, userID, messageID)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, messageID uint) error {
	return s.deleteFn(ctx, userID, messageID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.existsFn(ctx, userID, messageID)
}
func (s *likeRepoStub) MessagesLikedBy(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messagesLikedByFn(ctx, userID)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, models.CodeUnauthorized, models.CodeOf(err))
}
