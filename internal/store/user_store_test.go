package store

import (
	"testing"
	"time"

	"github.com/amacedo/users-api/internal/database"
	"github.com/amacedo/users-api/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	database.DB = db
}

func TestCreateAndFind(t *testing.T) {
	setupStoreTestDB(t)

	u := &models.User{Name: "Store User", Email: "store@test.com", Password: "plaintext", Role: models.RoleUser}
	assert.NoError(t, CreateUser(u))
	assert.NotZero(t, u.ID)

	t.Run("FindByEmail omits the password by default", func(t *testing.T) {
		found, err := FindByEmail("store@test.com", false)
		assert.NoError(t, err)
		assert.Empty(t, found.Password)
	})

	t.Run("FindByEmail selects the password when asked", func(t *testing.T) {
		found, err := FindByEmail("store@test.com", true)
		assert.NoError(t, err)
		assert.NotEmpty(t, found.Password)
	})

	t.Run("FindByID omits the password", func(t *testing.T) {
		found, err := FindByID(u.ID)
		assert.NoError(t, err)
		assert.Empty(t, found.Password)
		assert.Equal(t, "Store User", found.Name)
	})

	t.Run("ExistsByEmail", func(t *testing.T) {
		exists, err := ExistsByEmail("store@test.com")
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = ExistsByEmail("nobody@test.com")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestDuplicateEmailInsert(t *testing.T) {
	setupStoreTestDB(t)

	first := &models.User{Name: "First", Email: "dup@test.com", Password: "pw1234"}
	assert.NoError(t, CreateUser(first))

	second := &models.User{Name: "Second", Email: "dup@test.com", Password: "pw5678"}
	err := CreateUser(second)
	assert.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
}

func TestSoftDeleteExcludesFromLookups(t *testing.T) {
	setupStoreTestDB(t)

	u := &models.User{Name: "Short Lived", Email: "gone@test.com", Password: "pw1234"}
	assert.NoError(t, CreateUser(u))

	assert.NoError(t, SoftDeleteUser(u.ID))

	_, err := FindByID(u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = FindByEmail("gone@test.com", false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := ExistsByEmail("gone@test.com")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateLastLogin(t *testing.T) {
	setupStoreTestDB(t)

	u := &models.User{Name: "Login User", Email: "login@test.com", Password: "pw1234"}
	assert.NoError(t, CreateUser(u))
	assert.Nil(t, u.LastLoginAt)

	now := time.Now()
	assert.NoError(t, UpdateLastLogin(u.ID, now))

	reloaded, err := FindByID(u.ID)
	assert.NoError(t, err)
	assert.NotNil(t, reloaded.LastLoginAt)
	assert.WithinDuration(t, now, *reloaded.LastLoginAt, time.Second)
}
