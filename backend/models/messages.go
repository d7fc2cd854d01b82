package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is an append-only group chat entry, ordered by SentAt.
type Message struct {
	gorm.Model
	GroupID uint   `gorm:"not null;index"`
	UserID  uint   `gorm:"not null"`
	Text    string `gorm:"not null"`
	SentAt  time.Time
}
