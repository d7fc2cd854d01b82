package routes

import (
	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/register", authController.Register)
	app.Post("/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Profile routes
	profileController := controllers.NewProfileController(db, cfg)
	app.Get("/profile", authMiddleware, profileController.GetProfile)
	app.Post("/profile", authMiddleware, profileController.UpsertProfile)
	app.Post("/user/subject", authMiddleware, profileController.UpsertUserSubject)

	// Subject routes
	subjectsController := controllers.NewSubjectsController(db, cfg)
	app.Get("/subjects", subjectsController.ListSubjects)

	// Group routes
	groupsController := controllers.NewGroupsController(db, cfg)
	app.Post("/groups", authMiddleware, groupsController.CreateGroup)
	app.Get("/groups", groupsController.ListGroups)
	app.Post("/groups/:id/join", authMiddleware, groupsController.JoinGroup)
	app.Get("/groups/:id/members", groupsController.GetGroupMembers)

	// Match routes
	matchController := controllers.NewMatchController(db, cfg)
	app.Get("/match", authMiddleware, matchController.FindMatches)

	// Message routes
	messagesController := controllers.NewMessagesController(db, cfg)
	app.Get("/groups/:id/messages", authMiddleware, messagesController.ListMessages)
	app.Post("/groups/:id/messages", authMiddleware, messagesController.PostMessage)
}
