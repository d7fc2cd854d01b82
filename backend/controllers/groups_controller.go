package controllers

import (
	"errors"
	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GroupsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Groups    *services.GroupService
	Admission *services.AdmissionService
}

func NewGroupsController(db *gorm.DB, cfg *config.Config) *GroupsController {
	return &GroupsController{
		DB:        db,
		Cfg:       cfg,
		Groups:    services.NewGroupService(db),
		Admission: services.NewAdmissionService(db),
	}
}

type CreateGroupInput struct {
	Title       string `json:"title"`
	SubjectID   uint   `json:"subject_id"`
	Description string `json:"description"`
	Level       string `json:"level"`
	MaxMembers  int    `json:"max_members"`
}

// CreateGroup godoc
// @Summary Create a study group
// @Description Creates a group and adds the caller as its owner
// @Tags groups
// @Accept json
// @Produce json
// @Param group body CreateGroupInput true "Group data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /groups [post]
func (gc *GroupsController) CreateGroup(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var input CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title == "" || input.SubjectID == 0 {
		return utils.BadRequest(c, "title and subject_id are required")
	}
	if input.Level == "" {
		input.Level = models.LevelMixed
	}
	if !models.ValidLevel(input.Level) {
		return utils.BadRequest(c, "level must be beginner, intermediate, advanced or mixed")
	}
	if input.MaxMembers == 0 {
		input.MaxMembers = models.DefaultMaxMembers
	}
	if input.MaxMembers < 1 {
		return utils.BadRequest(c, "max_members must be positive")
	}

	group := models.Group{
		Title:       input.Title,
		SubjectID:   input.SubjectID,
		Description: input.Description,
		OwnerID:     claims.UserID,
		Level:       input.Level,
		MaxMembers:  input.MaxMembers,
	}

	if err := gc.Groups.Create(&group); err != nil {
		return utils.InternalServerError(c, "Could not create group")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"groupId": group.ID,
	})
}

type groupRow struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	SubjectID   uint      `json:"subject_id"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id"`
	Level       string    `json:"level"`
	MaxMembers  int       `json:"max_members"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerName   string    `json:"owner_name"`
	SubjectName string    `json:"subject_name"`
}

func (gc *GroupsController) ListGroups(c *fiber.Ctx) error {
	rows := []groupRow{}
	err := gc.DB.Model(&models.Group{}).
		Select("groups.id, groups.title, groups.subject_id, groups.description, groups.owner_id, groups.level, groups.max_members, groups.created_at, users.display_name AS owner_name, subjects.name AS subject_name").
		Joins("JOIN users ON users.id = groups.owner_id").
		Joins("JOIN subjects ON subjects.id = groups.subject_id").
		Order("groups.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(rows)
}

// JoinGroup runs the admission protocol for the caller against the group
// in the path. Rejections are terminal; a 500 means nothing was written
// and the caller may retry.
func (gc *GroupsController) JoinGroup(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil || groupID < 1 {
		return utils.BadRequest(c, "Invalid group id")
	}

	if err := gc.Admission.Join(uint(groupID), claims.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrGroupNotFound):
			return utils.NotFound(c, "Group not found")
		case errors.Is(err, services.ErrAlreadyMember):
			return utils.BadRequest(c, "Already a member of this group")
		case errors.Is(err, services.ErrGroupFull):
			return utils.BadRequest(c, "Group is full")
		default:
			return utils.InternalServerError(c, "Could not join group")
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}

type memberRow struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (gc *GroupsController) GetGroupMembers(c *fiber.Ctx) error {
	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil || groupID < 1 {
		return utils.BadRequest(c, "Invalid group id")
	}

	members := []memberRow{}
	qerr := gc.DB.Model(&models.GroupMembership{}).
		Select("group_memberships.user_id, users.display_name, group_memberships.role").
		Joins("JOIN users ON users.id = group_memberships.user_id").
		Where("group_memberships.group_id = ?", groupID).
		Order("group_memberships.created_at ASC").
		Scan(&members).Error
	if qerr != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(members)
}
