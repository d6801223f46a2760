package models

import "time"

// MaxMessageLength is the upper bound on message text, in bytes.
const MaxMessageLength = 140

// Message is a short text post owned by exactly one user.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
