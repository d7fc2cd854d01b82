package models

import "gorm.io/gorm"

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelMixed        = "mixed"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

const DefaultMaxMembers = 10

type Group struct {
	gorm.Model
	Title       string `gorm:"not null"`
	SubjectID   uint   `gorm:"not null;index"`
	Description string
	OwnerID     uint   `gorm:"not null;index"`
	Level       string `gorm:"default:mixed"` // beginner, intermediate, advanced, mixed
	MaxMembers  int    `gorm:"default:10"`
}

type GroupMembership struct {
	gorm.Model
	GroupID uint   `gorm:"not null;uniqueIndex:idx_group_user"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_group_user"`
	Role    string `gorm:"default:member"` // owner, member
}

// ValidLevel reports whether s is one of the group level values.
func ValidLevel(s string) bool {
	switch s {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelMixed:
		return true
	}
	return false
}
