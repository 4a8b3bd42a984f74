package main

import (
	"log"
	"time"

	"github.com/amacedo/users-api/internal/config"
	"github.com/amacedo/users-api/internal/database"
	"github.com/amacedo/users-api/internal/models"
	"github.com/amacedo/users-api/internal/server"
	"github.com/amacedo/users-api/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration Error: ", err)
	}
	log.Println("✅ Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== BACKGROUND JOBS ==========
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			result := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.ResetToken{})
			if result.RowsAffected > 0 {
				log.Printf("🧹 Cleaned up %d expired reset tokens", result.RowsAffected)
			}
		}
	}()

	// ========== START SERVER ==========
	app := server.New(db, cfg)

	log.Printf("🚀 Users API starting on %s", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled (expiration %s)", cfg.JWTExpiration)

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
