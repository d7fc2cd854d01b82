package models

import "gorm.io/gorm"

// Subject is reference data: seeded at startup, read-only afterwards.
type Subject struct {
	gorm.Model
	Name string `gorm:"unique;not null"`
}
