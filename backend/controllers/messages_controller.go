package controllers

import (
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

// messageWindow caps a listing to the first messages chronologically.
const messageWindow = 200

type MessagesController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Admission *services.AdmissionService
}

func NewMessagesController(db *gorm.DB, cfg *config.Config) *MessagesController {
	return &MessagesController{
		DB:        db,
		Cfg:       cfg,
		Admission: services.NewAdmissionService(db),
	}
}

type PostMessageInput struct {
	Message string `json:"message"`
}

// PostMessage appends a chat message to the group's log. Only current
// members may post.
func (mc *MessagesController) PostMessage(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)

	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil || groupID < 1 {
		return utils.BadRequest(c, "Invalid group id")
	}

	var input PostMessageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Message == "" {
		return utils.BadRequest(c, "message is required")
	}

	member, err := mc.Admission.IsMember(uint(groupID), claims.UserID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !member {
		return utils.Forbidden(c, "Not a member of this group")
	}

	message := models.Message{
		GroupID: uint(groupID),
		UserID:  claims.UserID,
		Text:    input.Message,
		SentAt:  time.Now(),
	}
	if err := mc.DB.Create(&message).Error; err != nil {
		return utils.InternalServerError(c, "Could not save message")
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (mc *MessagesController) ListMessages(c *fiber.Ctx) error {
	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil || groupID < 1 {
		return utils.BadRequest(c, "Invalid group id")
	}

	var messages []models.Message
	if err := mc.DB.Where("group_id = ?", groupID).
		Order("sent_at ASC").
		Limit(messageWindow).
		Find(&messages).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	results := make([]fiber.Map, 0, len(messages))
	for _, message := range messages {
		results = append(results, fiber.Map{
			"id":      message.ID,
			"user_id": message.UserID,
			"message": message.Text,
			"sent_at": message.SentAt,
		})
	}
	return c.JSON(results)
}
