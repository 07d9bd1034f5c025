package api

import (
	"github.com/ShiKuZena/ChatBot-APP/docs"
	"github.com/ShiKuZena/ChatBot-APP/internal/api/handlers"
	"github.com/ShiKuZena/ChatBot-APP/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	cfg *config.ServerConfig,
	chatHandler *handlers.ChatHandler,
	adminHandler *handlers.AdminHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger documentation via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Post("/chat", chatHandler.Chat)

	// Admin routes keep the wire paths of the original frontend
	admin := api.Group("/admin")
	admin.Get("/faq", adminHandler.ListFaqs)
	admin.Post("/add_faq", adminHandler.AddFaq)
	admin.Put("/update_faq/:id", adminHandler.UpdateFaq)
	admin.Delete("/delete_faq/:id", adminHandler.DeleteFaq)
	admin.Get("/history", adminHandler.History)

	return app
}
