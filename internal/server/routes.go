package server

import (
	"github.com/amacedo/users-api/internal/auth"
	"github.com/amacedo/users-api/internal/models"
	"github.com/amacedo/users-api/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Users API is running",
		})
	})

	// ==========================================
	// AUTH ROUTES
	// ==========================================
	authGroup := app.Group("/auth")
	authGroup.Post("/register", auth.RegisterHandler)
	authGroup.Post("/login", auth.LoginHandler)
	authGroup.Get("/me", auth.JWTProtected(), auth.MeHandler)
	authGroup.Get("/google", auth.GoogleLogin)
	authGroup.Get("/google/callback", auth.GoogleCallback)
	authGroup.Post("/forgot-password", auth.ForgotPasswordHandler)
	authGroup.Post("/reset-password", auth.ResetPasswordHandler)

	// ==========================================
	// USER MANAGEMENT
	// ==========================================
	userGroup := app.Group("/users")
	userGroup.Use(auth.JWTProtected())
	userGroup.Get("/", auth.RoleProtected(models.RoleAdmin), user.ListUsersHandler)
	userGroup.Get("/inactive", auth.RoleProtected(models.RoleAdmin), user.ListInactiveUsersHandler)
	userGroup.Get("/:id", auth.RoleProtected(models.RoleAdmin), user.GetUserHandler)
	// Ownership is checked in the service: a user may PATCH itself.
	userGroup.Patch("/:id", user.UpdateUserHandler)
	userGroup.Delete("/:id", auth.RoleProtected(models.RoleAdmin), user.DeleteUserHandler)
}
