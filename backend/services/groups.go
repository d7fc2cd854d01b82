package services

import (
	"project/backend/models"

	"gorm.io/gorm"
)

type GroupService struct {
	DB *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{DB: db}
}

// Create inserts the group row and the owner's membership as one unit of
// work. A group is never observable without its owner row.
func (s *GroupService) Create(group *models.Group) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMembership{
			GroupID: group.ID,
			UserID:  group.OwnerID,
			Role:    models.RoleOwner,
		}).Error
	})
}
