package models

import (
	"strings"
	"time"

	"github.com/amacedo/users-api/internal/utils"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:64;not null" json:"name"`
	Email       string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        string         `gorm:"size:20;default:'USER'" json:"role"`
	Status      string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hashes the password before the row is inserted. Values that
// already carry a bcrypt prefix are written as-is, so a pre-hashed password
// is never hashed twice.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Password == "" || strings.HasPrefix(u.Password, "$2a$") || strings.HasPrefix(u.Password, "$2b$") {
		return nil
	}

	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}
