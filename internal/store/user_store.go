package store

import (
	"errors"
	"strings"
	"time"

	"github.com/amacedo/users-api/internal/database"
	"github.com/amacedo/users-api/internal/models"
	"gorm.io/gorm"
)

// Lookup helpers exclude soft-deleted rows; gorm's DeletedAt filter
// applies on every default query.

func ExistsByEmail(email string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByEmail loads a user by email. The password column is only selected
// when withPassword is set; read paths never carry the hash by accident.
func FindByEmail(email string, withPassword bool) (*models.User, error) {
	var user models.User
	q := database.DB.Where("email = ?", email)
	if !withPassword {
		q = q.Omit("password")
	}
	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.Omit("password").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(u *models.User) error {
	return database.DB.Create(u).Error
}

func SaveUser(u *models.User) error {
	return database.DB.Save(u).Error
}

// UpdateUser persists only the provided fields.
func UpdateUser(id uint, fields map[string]interface{}) error {
	return database.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func UpdateLastLogin(id uint, at time.Time) error {
	return database.DB.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
}

func SoftDeleteUser(id uint) error {
	return database.DB.Delete(&models.User{}, id).Error
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
// Postgres arrives translated as gorm.ErrDuplicatedKey; the sqlite test
// driver reports the raw constraint error.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
