package seed

import (
	"fmt"
	"os"

	"warbler/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Profile describes how much data a seeding run creates. Profiles are
// loaded from YAML files checked in next to the seeder.
type Profile struct {
	Users             int     `yaml:"users"`
	MessagesPerUser   int     `yaml:"messages_per_user"`
	FollowProbability float64 `yaml:"follow_probability"`
	LikeProbability   float64 `yaml:"like_probability"`
	Password          string  `yaml:"password"`
	MaxDays           int     `yaml:"max_days"`
	Clean             bool    `yaml:"clean"`
}

// DefaultProfile is a small mesh suitable for local development.
func DefaultProfile() Profile {
	return Profile{
		Users:             25,
		MessagesPerUser:   8,
		FollowProbability: 0.15,
		LikeProbability:   0.05,
		Password:          "password",
		MaxDays:           90,
		Clean:             true,
	}
}

// LoadProfile reads a seeding profile from a YAML file, filling gaps with
// the defaults.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parse seed profile: %w", err)
	}
	if profile.Users <= 0 {
		return profile, fmt.Errorf("seed profile must create at least one user")
	}
	return profile, nil
}

// Seeder populates the database according to a profile.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seedable rows, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Like{},
		&models.Follow{},
		&models.Message{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run executes a full seeding pass: users, their messages, a follow mesh,
// and sprinkled likes.
func (s *Seeder) Run(profile Profile) error {
	if profile.Clean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("clean before seed: %w", err)
		}
	}

	users := make([]*models.User, 0, profile.Users)
	for i := 0; i < profile.Users; i++ {
		user, err := s.factory.CreateUser(profile.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	messages := make([]*models.Message, 0, profile.Users*profile.MessagesPerUser)
	for _, user := range users {
		for i := 0; i < profile.MessagesPerUser; i++ {
			message, err := s.factory.CreateMessage(user, profile.MaxDays)
			if err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
			messages = append(messages, message)
		}
	}

	if err := s.factory.FollowMesh(users, profile.FollowProbability); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}
	if err := s.factory.SprinkleLikes(users, messages, profile.LikeProbability); err != nil {
		return fmt.Errorf("seed likes: %w", err)
	}
	return nil
}
