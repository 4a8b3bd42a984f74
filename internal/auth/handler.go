package auth

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/amacedo/users-api/internal/database"
	"github.com/amacedo/users-api/internal/models"
	"github.com/amacedo/users-api/internal/response"
	"github.com/amacedo/users-api/internal/store"
	"github.com/amacedo/users-api/internal/utils"
	"github.com/amacedo/users-api/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func RegisterHandler(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if details := validation.Struct(&body); details != nil {
		return response.ValidationError(c, details)
	}

	u, appErr := RegisterUser(validation.Sanitize(body.Name), body.Email, body.Password, body.Role)
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.Created(c, u, "Registration successful")
}

func LoginHandler(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if details := validation.Struct(&body); details != nil {
		return response.ValidationError(c, details)
	}

	token, appErr := LoginUser(body.Email, body.Password)
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.Created(c, fiber.Map{"token": token}, "Login successful")
}

func MeHandler(c *fiber.Ctx) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	user, appErr := Me(claims.UserID)
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.Success(c, user, "User retrieved successfully")
}

func ForgotPasswordHandler(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if details := validation.Struct(&body); details != nil {
		return response.ValidationError(c, details)
	}

	user, err := store.FindByEmail(body.Email, false)
	if err != nil {
		// Same answer whether or not the account exists.
		return response.Success(c, nil, "If account exists, reset link has been sent")
	}

	plainToken := utils.RandomString(64)

	reset := models.ResetToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(plainToken),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}

	if err := database.DB.Create(&reset).Error; err != nil {
		return response.InternalError(c, "Failed to save reset token")
	}

	if cfg != nil && cfg.SMTPHost != "" {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", cfg.FrontendURL, plainToken)
		msg := fmt.Sprintf("Subject: Password Reset\n\nClick here to reset: %s", resetURL)
		addr := cfg.SMTPHost + ":" + cfg.SMTPPort
		_ = smtp.SendMail(addr,
			smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
			cfg.SMTPFrom, []string{user.Email}, []byte(msg))
	}

	return response.Success(c, nil, "If account exists, reset link has been sent")
}

func ResetPasswordHandler(c *fiber.Ctx) error {
	var body struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if details := validation.Struct(&body); details != nil {
		return response.ValidationError(c, details)
	}

	var reset models.ResetToken
	if err := database.DB.Where("token_hash = ?", utils.HashToken(body.Token)).First(&reset).Error; err != nil {
		return response.BadRequest(c, "Invalid or expired token", nil)
	}

	if reset.ExpiresAt.Before(time.Now()) {
		database.DB.Delete(&reset)
		return response.BadRequest(c, "Token expired", nil)
	}

	user, err := store.FindByID(reset.UserID)
	if err != nil {
		return response.NotFound(c, "User")
	}

	hashedPassword, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}
	user.Password = hashedPassword
	if err := store.SaveUser(user); err != nil {
		return response.InternalError(c, "Failed to update password")
	}

	database.DB.Delete(&reset)

	return response.Success(c, nil, "Password reset successful")
}
