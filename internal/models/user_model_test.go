package models

import (
	"strings"
	"testing"

	"github.com/amacedo/users-api/internal/utils"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func TestBeforeCreateHashesPassword(t *testing.T) {
	db := testDB(t)

	u := User{Name: "Hook User", Email: "hook@test.com", Password: "plaintext"}
	assert.NoError(t, db.Create(&u).Error)

	assert.NotEqual(t, "plaintext", u.Password)
	assert.True(t, strings.HasPrefix(u.Password, "$2a$"))
	assert.True(t, utils.CheckPasswordHash("plaintext", u.Password))
}

func TestBeforeCreateSkipsHashedPassword(t *testing.T) {
	db := testDB(t)

	hashed, err := utils.HashPassword("plaintext")
	assert.NoError(t, err)

	u := User{Name: "Prehashed", Email: "prehashed@test.com", Password: hashed}
	assert.NoError(t, db.Create(&u).Error)

	assert.Equal(t, hashed, u.Password, "A bcrypt value must never be hashed twice")
	assert.True(t, utils.CheckPasswordHash("plaintext", u.Password))
}

func TestDefaults(t *testing.T) {
	db := testDB(t)

	u := User{Name: "Defaults", Email: "defaults@test.com", Password: "plaintext"}
	assert.NoError(t, db.Create(&u).Error)

	var reloaded User
	assert.NoError(t, db.First(&reloaded, u.ID).Error)
	assert.Equal(t, RoleUser, reloaded.Role)
	assert.Equal(t, StatusActive, reloaded.Status)
	assert.Nil(t, reloaded.LastLoginAt)
}
