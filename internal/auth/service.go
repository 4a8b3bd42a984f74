package auth

import (
	"errors"
	"time"

	"github.com/amacedo/users-api/internal/apperr"
	"github.com/amacedo/users-api/internal/models"
	"github.com/amacedo/users-api/internal/store"
	"github.com/amacedo/users-api/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	msgEmailExists      = "E-mail already registered"
	msgUserNotFound     = "User not found"
	msgWrongCredentials = "Incorrect e-mail or password"
)

// RegisterUser persists a new account. Email uniqueness rides on the
// unique index: the insert either lands or comes back as a duplicate key,
// so concurrent registrations with the same email cannot both succeed.
func RegisterUser(name, email, password, role string) (*models.User, *apperr.Error) {
	u := models.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
		Status:   models.StatusActive,
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	if err := store.CreateUser(&u); err != nil {
		if store.IsDuplicateKey(err) {
			return nil, apperr.Conflict(msgEmailExists)
		}
		return nil, apperr.BadRequest("Failed to create user")
	}

	return &u, nil
}

func LoginUser(email, password string) (string, *apperr.Error) {
	user, err := store.FindByEmail(email, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound(msgUserNotFound)
		}
		return "", apperr.Internal("Failed to look up user")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", apperr.Unauthorized(msgWrongCredentials)
	}

	now := time.Now()
	if err := store.UpdateLastLogin(user.ID, now); err != nil {
		return "", apperr.Internal("Failed to update last login")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return "", apperr.Internal("Failed to generate token")
	}

	return token, nil
}

func Me(id uint) (*models.User, *apperr.Error) {
	user, err := store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(msgUserNotFound)
		}
		return nil, apperr.Internal("Failed to look up user")
	}
	return user, nil
}

// FindOrCreateOAuthUser maps an OAuth identity onto a local account.
// New accounts get a random placeholder password that never works for
// password login.
func FindOrCreateOAuthUser(email, name string) (*models.User, *apperr.Error) {
	user, err := store.FindByEmail(email, false)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("Failed to look up user")
	}

	u := models.User{
		Name:     name,
		Email:    email,
		Password: uuid.NewString(),
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	if err := store.CreateUser(&u); err != nil {
		if store.IsDuplicateKey(err) {
			// Lost the race against a concurrent signup; the account exists now.
			existing, ferr := store.FindByEmail(email, false)
			if ferr != nil {
				return nil, apperr.Internal("Failed to look up user")
			}
			return existing, nil
		}
		return nil, apperr.Internal("Failed to create user")
	}

	return &u, nil
}
