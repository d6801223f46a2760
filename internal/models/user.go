// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"
)

// Default profile images applied when a signup omits them.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents an account in Warbler. Password always holds a bcrypt
// hash; the plaintext is never persisted.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}

func (u *User) String() string {
	return fmt.Sprintf("<User #%d: %s, %s>", u.ID, u.Username, u.Email)
}
