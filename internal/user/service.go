package user

import (
	"errors"
	"time"

	"github.com/amacedo/users-api/internal/apperr"
	"github.com/amacedo/users-api/internal/database"
	"github.com/amacedo/users-api/internal/models"
	"github.com/amacedo/users-api/internal/response"
	"github.com/amacedo/users-api/internal/store"
	"github.com/amacedo/users-api/internal/utils"
	"gorm.io/gorm"
)

const inactivityWindow = 30 * 24 * time.Hour

type ListFilters struct {
	Role   string
	SortBy string
	Order  string
}

var sortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

// GetAll returns a filtered, sorted page of users.
func GetAll(filters ListFilters, page, limit int) ([]models.User, *response.Meta, *apperr.Error) {
	q := database.DB.Model(&models.User{})

	if filters.Role != "" {
		q = q.Where("role = ?", filters.Role)
	}

	if filters.SortBy != "" {
		column, ok := sortColumns[filters.SortBy]
		if !ok {
			return nil, nil, apperr.BadRequest("Invalid sort column")
		}
		order := "ASC"
		if filters.Order == "DESC" {
			order = "DESC"
		}
		q = q.Order(column + " " + order)
	}

	return paginate(q, page, limit)
}

// GetInactive returns users whose last login (or signup, when they never
// logged in) is older than 30 days.
func GetInactive(page, limit int) ([]models.User, *response.Meta, *apperr.Error) {
	cutoff := time.Now().Add(-inactivityWindow)

	q := database.DB.Model(&models.User{}).
		Where("last_login_at < ? OR (last_login_at IS NULL AND created_at < ?)", cutoff, cutoff).
		Order("last_login_at DESC")

	return paginate(q, page, limit)
}

func paginate(q *gorm.DB, page, limit int) ([]models.User, *response.Meta, *apperr.Error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, apperr.Internal("Failed to count users")
	}

	var users []models.User
	err := q.Omit("password").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, nil, apperr.Internal("Failed to fetch users")
	}

	return users, response.CalculateMeta(page, limit, len(users), total), nil
}

func GetByID(id uint) (*models.User, *apperr.Error) {
	u, err := store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to look up user")
	}
	return u, nil
}

type UpdateFields struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Status   *string
}

// Update applies the provided fields to the target user. A user may only
// update itself unless the requester is an admin.
func Update(id uint, data UpdateFields, requesterID uint, requesterRole string) (*models.User, *apperr.Error) {
	target, appErr := GetByID(id)
	if appErr != nil {
		return nil, appErr
	}

	if requesterID != target.ID && requesterRole != models.RoleAdmin {
		return nil, apperr.Forbidden("Access denied to this resource")
	}

	fields := map[string]interface{}{}
	if data.Name != nil {
		fields["name"] = *data.Name
	}
	if data.Email != nil {
		fields["email"] = *data.Email
	}
	if data.Role != nil {
		fields["role"] = *data.Role
	}
	if data.Status != nil {
		fields["status"] = *data.Status
	}
	if data.Password != nil {
		// Updates bypass the model hook, so hash here.
		hashed, err := utils.HashPassword(*data.Password)
		if err != nil {
			return nil, apperr.BadRequest("Error with password hash")
		}
		fields["password"] = hashed
	}

	if len(fields) > 0 {
		if err := store.UpdateUser(id, fields); err != nil {
			if store.IsDuplicateKey(err) {
				return nil, apperr.Conflict("E-mail already registered")
			}
			return nil, apperr.Internal("Failed to update user")
		}
	}

	return GetByID(id)
}

// Delete soft-deletes the user; the row stays behind its deleted_at mark.
func Delete(id uint) *apperr.Error {
	if _, appErr := GetByID(id); appErr != nil {
		return appErr
	}

	if err := store.SoftDeleteUser(id); err != nil {
		return apperr.Internal("Failed to delete user")
	}

	return nil
}
