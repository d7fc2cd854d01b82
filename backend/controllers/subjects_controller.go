package controllers

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubjectsController(db *gorm.DB, cfg *config.Config) *SubjectsController {
	return &SubjectsController{DB: db, Cfg: cfg}
}

func (sc *SubjectsController) ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := sc.DB.Order("name ASC").Find(&subjects).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	list := make([]fiber.Map, 0, len(subjects))
	for _, s := range subjects {
		list = append(list, fiber.Map{
			"id":   s.ID,
			"name": s.Name,
		})
	}
	return c.JSON(list)
}
