package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"warbler/internal/auth"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryService_Signup_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   SignupInput
	}{
		{"empty username", SignupInput{Email: "test@test.com", Password: "password"}},
		{"empty email", SignupInput{Username: "testuser", Password: "password"}},
		{"bad email", SignupInput{Username: "testuser", Email: "not-an-email", Password: "password"}},
		{"short password", SignupInput{Username: "testuser", Email: "test@test.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := noopUserRepo()
			created := 0
			repo.createFn = func(context.Context, *models.User) error {
				created++
				return nil
			}
			svc := NewDirectoryService(repo)
			_, err := svc.Signup(context.Background(), tt.in)
			assertValidationError(t, err)
			assert.Zero(t, created, "nothing is persisted on invalid input")
		})
	}
}

func TestDirectoryService_Signup_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var persisted *models.User
	repo.createFn = func(_ context.Context, u *models.User) error {
		persisted = u
		return nil
	}
	svc := NewDirectoryService(repo)

	user, err := svc.Signup(context.Background(), SignupInput{
		Username: "testuser",
		Email:    "test@test.com",
		Password: "testuser",
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.NotEqual(t, "testuser", user.Password, "plaintext must never be stored")
	assert.True(t, strings.HasPrefix(user.Password, "$2"), "password should be a bcrypt hash")
	assert.True(t, auth.CheckPassword("testuser", user.Password))
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, user.HeaderImageURL)
}

func TestDirectoryService_Signup_DuplicatePropagatesFromStore(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createFn = func(context.Context, *models.User) error {
		return models.NewValidationError("Username or email already taken")
	}
	svc := NewDirectoryService(repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "testuser",
		Email:    "test@test.com",
		Password: "password",
	})
	assertValidationError(t, err)
}

func TestDirectoryService_Authenticate(t *testing.T) {
	t.Parallel()

	hashed, err := auth.HashPassword("testuser")
	require.NoError(t, err)
	stored := &models.User{ID: 1, Username: "testuser", Password: hashed}

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "testuser" {
			return stored, nil
		}
		return nil, nil
	}
	svc := NewDirectoryService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "testuser", "testuser")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "testuser", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "testuser", "wrong")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("unknown username", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "ghost", "testuser")
		require.NoError(t, err)
		assert.Nil(t, user, "unknown user and wrong password are indistinguishable")
	})

	t.Run("repo error propagates", func(t *testing.T) {
		repoErr := errors.New("connection lost")
		failing := noopUserRepo()
		failing.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return nil, repoErr
		}
		_, err := NewDirectoryService(failing).Authenticate(context.Background(), "testuser", "testuser")
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestDirectoryService_Login(t *testing.T) {
	t.Parallel()

	hashed, err := auth.HashPassword("password")
	require.NoError(t, err)
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "testuser" {
			return &models.User{ID: 5, Username: "testuser", Password: hashed}, nil
		}
		return nil, nil
	}

	t.Run("issues a verifiable token", func(t *testing.T) {
		t.Parallel()
		tokens, err := auth.NewTokenManager("test-secret", 0)
		require.NoError(t, err)
		svc := NewDirectoryService(repo).WithTokens(tokens)

		user, token, err := svc.Login(context.Background(), "testuser", "password")
		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotEmpty(t, token)

		id, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})

	t.Run("bad credentials yield no token", func(t *testing.T) {
		t.Parallel()
		tokens, err := auth.NewTokenManager("test-secret", 0)
		require.NoError(t, err)
		svc := NewDirectoryService(repo).WithTokens(tokens)

		user, token, err := svc.Login(context.Background(), "testuser", "wrong")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Empty(t, token)
	})

	t.Run("without a token manager", func(t *testing.T) {
		t.Parallel()
		svc := NewDirectoryService(repo)
		user, token, err := svc.Login(context.Background(), "testuser", "password")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Empty(t, token)
	})
}

func TestDirectoryService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		svc := NewDirectoryService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{Username: "newname"})
		assertUnauthorizedError(t, err)
	})

	t.Run("invalid email rejected before write", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		writes := 0
		repo.updateFieldsFn = func(context.Context, uint, map[string]interface{}) error {
			writes++
			return nil
		}
		svc := NewDirectoryService(repo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			ActingUserID: 1,
			Email:        "broken",
		})
		assertValidationError(t, err)
		assert.Zero(t, writes)
	})

	t.Run("bio too long", func(t *testing.T) {
		t.Parallel()
		svc := NewDirectoryService(noopUserRepo())
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			ActingUserID: 1,
			Bio:          strings.Repeat("x", 501),
		})
		assertValidationError(t, err)
	})

	t.Run("partial update only touches provided fields", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var gotFields map[string]interface{}
		repo.updateFieldsFn = func(_ context.Context, _ uint, fields map[string]interface{}) error {
			gotFields = fields
			return nil
		}
		svc := NewDirectoryService(repo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			ActingUserID: 1,
			Bio:          "warbling away",
			Location:     "Treetop",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{
			"bio":      "warbling away",
			"location": "Treetop",
		}, gotFields)
	})

	t.Run("duplicate username surfaces from store", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.updateFieldsFn = func(context.Context, uint, map[string]interface{}) error {
			return models.NewValidationError("Username or email already taken")
		}
		svc := NewDirectoryService(repo)
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			ActingUserID: 1,
			Username:     "taken",
		})
		assertValidationError(t, err)
	})
}

func TestDirectoryService_DeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		deletes := 0
		repo.deleteCascadeFn = func(context.Context, uint) error {
			deletes++
			return nil
		}
		svc := NewDirectoryService(repo)
		err := svc.DeleteUser(context.Background(), 0, 1)
		assertUnauthorizedError(t, err)
		assert.Zero(t, deletes, "no writes on the unauthenticated path")
	})

	t.Run("cannot delete another account", func(t *testing.T) {
		t.Parallel()
		svc := NewDirectoryService(noopUserRepo())
		err := svc.DeleteUser(context.Background(), 1, 2)
		assertUnauthorizedError(t, err)
	})

	t.Run("owner deletes own account", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var deletedID uint
		repo.deleteCascadeFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}
		svc := NewDirectoryService(repo)
		require.NoError(t, svc.DeleteUser(context.Background(), 7, 7))
		assert.Equal(t, uint(7), deletedID)
	})
}
