package services

import (
	"errors"
	"project/backend/models"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrAlreadyMember = errors.New("already a member of this group")
	ErrGroupFull     = errors.New("group is full")
)

// groupLocks hands out one mutex per group id, so concurrent join attempts
// on the same group block each other while joins on other groups proceed.
type groupLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func (g *groupLocks) forGroup(id uint) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.locks == nil {
		g.locks = make(map[uint]*sync.Mutex)
	}
	m, ok := g.locks[id]
	if !ok {
		m = &sync.Mutex{}
		g.locks[id] = m
	}
	return m
}

// AdmissionService guards group capacity. Every membership insert goes
// through Join so the capacity check and the insert are one atomic unit.
type AdmissionService struct {
	DB    *gorm.DB
	locks groupLocks
}

func NewAdmissionService(db *gorm.DB) *AdmissionService {
	return &AdmissionService{DB: db}
}

// Join admits userID into groupID, or returns ErrGroupNotFound,
// ErrAlreadyMember or ErrGroupFull. The group row is locked for the
// duration of the transaction, so the member count cannot change between
// the capacity check and the insert. Any other error means the
// transaction rolled back with no side effect and the caller may retry.
func (s *AdmissionService) Join(groupID, userID uint) error {
	lock := s.locks.forGroup(groupID)
	lock.Lock()
	defer lock.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		q := tx
		// sqlite has no FOR UPDATE; its single writer serializes the
		// transaction anyway.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.GroupMembership{}).
			Where("group_id = ? AND user_id = ?", groupID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}

		var members int64
		if err := tx.Model(&models.GroupMembership{}).
			Where("group_id = ?", groupID).
			Count(&members).Error; err != nil {
			return err
		}
		if members >= int64(group.MaxMembers) {
			return ErrGroupFull
		}

		return tx.Create(&models.GroupMembership{
			GroupID: groupID,
			UserID:  userID,
			Role:    models.RoleMember,
		}).Error
	})
}

// IsMember reports whether userID currently holds a membership row for
// groupID.
func (s *AdmissionService) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
