package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string `gorm:"not null"`
}

type Profile struct {
	gorm.Model
	UserID       uint `gorm:"uniqueIndex;not null"`
	Bio          string
	Location     string
	Availability string
}

type UserSubject struct {
	gorm.Model
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_subject"`
	SubjectID uint   `gorm:"not null;uniqueIndex:idx_user_subject"`
	Level     string `gorm:"not null"` // beginner, intermediate, advanced
}
