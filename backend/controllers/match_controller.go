package controllers

import (
	"errors"
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// matchLimit caps both match modes. No pagination beyond it.
const matchLimit = 50

type MatchController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMatchController(db *gorm.DB, cfg *config.Config) *MatchController {
	return &MatchController{DB: db, Cfg: cfg}
}

// FindMatches godoc
// @Summary Find study partners or groups
// @Description Filtered search over groups or user subject registrations
// @Tags match
// @Produce json
// @Param subject_id query int true "Subject ID"
// @Param level query string false "Level filter"
// @Param type query string false "group for group mode, anything else for user mode"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /match [get]
func (mc *MatchController) FindMatches(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Query("subject_id"))
	if err != nil || subjectID < 1 {
		return utils.BadRequest(c, "subject_id is required")
	}
	level := c.Query("level")
	matchType := c.Query("type")

	if matchType == "group" {
		return mc.matchGroups(c, uint(subjectID), level)
	}
	return mc.matchUsers(c, uint(subjectID), level)
}

func (mc *MatchController) matchGroups(c *fiber.Ctx, subjectID uint, level string) error {
	query := mc.DB.Where("subject_id = ?", subjectID)
	if level != "" {
		// Mixed groups match any requested level
		query = query.Where("(level = ? OR level = ?)", level, models.LevelMixed)
	}

	var groups []models.Group
	if err := query.Order("created_at DESC").Limit(matchLimit).Find(&groups).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	results := make([]fiber.Map, 0, len(groups))
	for _, group := range groups {
		var memberCount int64
		mc.DB.Model(&models.GroupMembership{}).Where("group_id = ?", group.ID).Count(&memberCount)

		results = append(results, fiber.Map{
			"id":           group.ID,
			"title":        group.Title,
			"subject_id":   group.SubjectID,
			"description":  group.Description,
			"level":        group.Level,
			"max_members":  group.MaxMembers,
			"member_count": memberCount,
			"created_at":   group.CreatedAt,
		})
	}
	return c.JSON(results)
}

func (mc *MatchController) matchUsers(c *fiber.Ctx, subjectID uint, level string) error {
	type userMatch struct {
		UserID      uint   `json:"user_id"`
		DisplayName string `json:"display_name"`
		Level       string `json:"level"`
	}

	query := mc.DB.Model(&models.UserSubject{}).
		Select("user_subjects.user_id, users.display_name, user_subjects.level").
		Joins("JOIN users ON users.id = user_subjects.user_id").
		Where("user_subjects.subject_id = ?", subjectID)
	if level != "" {
		query = query.Where("user_subjects.level = ?", level)
	}

	matches := []userMatch{}
	if err := query.Limit(matchLimit).Scan(&matches).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	results := make([]fiber.Map, 0, len(matches))
	for _, match := range matches {
		bio := ""
		var profile models.Profile
		if err := mc.DB.Where("user_id = ?", match.UserID).First(&profile).Error; err == nil {
			bio = profile.Bio
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}

		results = append(results, fiber.Map{
			"user_id":      match.UserID,
			"display_name": match.DisplayName,
			"level":        match.Level,
			"bio":          bio,
		})
	}
	return c.JSON(results)
}
