// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"warbler/internal/auth"
	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with generated profile data. All seeded users
// share the given password so seeded accounts are easy to log into.
func (f *Factory) CreateUser(password string, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), f.rng.Intn(10000)))
	if len(username) > 30 {
		username = username[:30]
	}

	user := &models.User{
		Username:       username,
		Email:          fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password:       hashed,
		Bio:            gofakeit.Sentence(8),
		Location:       gofakeit.City(),
		ImageURL:       fmt.Sprintf("https://picsum.photos/seed/%s/400/400", username),
		HeaderImageURL: models.DefaultHeaderImageURL,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage persists a message for the user with a timestamp spread over
// the past maxDays days.
func (f *Factory) CreateMessage(user *models.User, maxDays int, overrides ...func(*models.Message)) (*models.Message, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	text := gofakeit.Sentence(10)
	if len(text) > models.MaxMessageLength {
		text = text[:models.MaxMessageLength]
	}

	back := time.Duration(f.rng.Intn(maxDays*24*60)) * time.Minute
	message := &models.Message{
		Text:      text,
		Timestamp: time.Now().UTC().Add(-back),
		UserID:    user.ID,
	}

	for _, override := range overrides {
		override(message)
	}

	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// FollowMesh wires follow edges between the users, creating each directed
// pair with the given probability.
func (f *Factory) FollowMesh(users []*models.User, probability float64) error {
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || f.rng.Float64() >= probability {
				continue
			}
			edge := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			if err := f.db.Create(edge).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// SprinkleLikes adds like edges between users and messages with the given
// probability, skipping nothing: users may like their own messages.
func (f *Factory) SprinkleLikes(users []*models.User, messages []*models.Message, probability float64) error {
	for _, user := range users {
		for _, message := range messages {
			if f.rng.Float64() >= probability {
				continue
			}
			like := &models.Like{UserID: user.ID, MessageID: message.ID}
			if err := f.db.Create(like).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
