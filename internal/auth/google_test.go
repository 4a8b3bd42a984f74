package auth

import (
	"testing"

	"github.com/amacedo/users-api/internal/database"
	"github.com/amacedo/users-api/internal/models"
	"github.com/amacedo/users-api/internal/utils"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.ResetToken{}))
	database.DB = db
}

func TestOAuthStateStore(t *testing.T) {
	t.Run("Stored state validates exactly once", func(t *testing.T) {
		state := generateState()
		storeState(state)

		assert.True(t, validateState(state))
		assert.False(t, validateState(state), "State must be single-use")
	})

	t.Run("Unknown state is rejected", func(t *testing.T) {
		assert.False(t, validateState("never-stored"))
	})
}

func TestFindOrCreateOAuthUser(t *testing.T) {
	setupAuthTestDB(t)

	t.Run("Creates a new account with placeholder password", func(t *testing.T) {
		u, appErr := FindOrCreateOAuthUser("oauth@example.com", "OAuth User")
		assert.Nil(t, appErr)
		assert.NotZero(t, u.ID)
		assert.Equal(t, models.RoleUser, u.Role)

		var stored models.User
		database.DB.First(&stored, u.ID)
		assert.NotEmpty(t, stored.Password)
		assert.False(t, utils.CheckPasswordHash("", stored.Password))
	})

	t.Run("Returns the existing account on a second login", func(t *testing.T) {
		first, appErr := FindOrCreateOAuthUser("repeat@example.com", "Repeat")
		assert.Nil(t, appErr)

		second, appErr := FindOrCreateOAuthUser("repeat@example.com", "Repeat Again")
		assert.Nil(t, appErr)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Repeat", second.Name, "Existing record wins over the OAuth profile")
	})
}
