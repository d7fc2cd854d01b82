package controllers

import (
	"errors"
	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProfileController(db *gorm.DB, cfg *config.Config) *ProfileController {
	return &ProfileController{DB: db, Cfg: cfg}
}

type UpsertProfileInput struct {
	Bio          string `json:"bio"`
	Location     string `json:"location"`
	Availability string `json:"availability"`
}

type UpsertUserSubjectInput struct {
	SubjectID uint   `json:"subject_id"`
	Level     string `json:"level"`
}

// UpsertProfile stores the caller's profile. The write replaces the whole
// row: fields omitted from the request clear previously set values.
func (pc *ProfileController) UpsertProfile(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var input UpsertProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	profile := models.Profile{
		UserID:       claims.UserID,
		Bio:          input.Bio,
		Location:     input.Location,
		Availability: input.Availability,
	}

	err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"bio", "location", "availability", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not save profile")
	}

	return c.JSON(fiber.Map{"ok": true})
}

// GetProfile returns the caller's profile and registered subjects.
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var profile models.Profile
	if err := pc.DB.Where("user_id = ?", claims.UserID).First(&profile).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "Could not query database")
		}
	}

	var subjects []struct {
		SubjectID uint   `json:"subject_id"`
		Name      string `json:"name"`
		Level     string `json:"level"`
	}
	pc.DB.Model(&models.UserSubject{}).
		Select("user_subjects.subject_id, subjects.name, user_subjects.level").
		Joins("JOIN subjects ON subjects.id = user_subjects.subject_id").
		Where("user_subjects.user_id = ?", claims.UserID).
		Scan(&subjects)

	return c.JSON(fiber.Map{
		"user_id":      claims.UserID,
		"display_name": claims.DisplayName,
		"bio":          profile.Bio,
		"location":     profile.Location,
		"availability": profile.Availability,
		"subjects":     subjects,
	})
}

// UpsertUserSubject registers a subject/level pair for the caller,
// overwriting the level on repeat.
func (pc *ProfileController) UpsertUserSubject(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	var input UpsertUserSubjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.SubjectID == 0 || input.Level == "" {
		return utils.BadRequest(c, "subject_id and level are required")
	}

	userSubject := models.UserSubject{
		UserID:    claims.UserID,
		SubjectID: input.SubjectID,
		Level:     input.Level,
	}

	err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "subject_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
	}).Create(&userSubject).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not save subject")
	}

	return c.JSON(fiber.Map{"ok": true})
}
