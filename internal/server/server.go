package server

import (
	"github.com/amacedo/users-api/internal/auth"
	"github.com/amacedo/users-api/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func New(db *gorm.DB, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	auth.Init(cfg)
	SetupRoutes(app)

	return app
}
