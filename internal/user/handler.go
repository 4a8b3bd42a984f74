package user

import (
	"github.com/amacedo/users-api/internal/auth"
	"github.com/amacedo/users-api/internal/response"
	"github.com/amacedo/users-api/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type listQuery struct {
	Role   string `query:"role" json:"role" validate:"omitempty,oneof=USER ADMIN"`
	SortBy string `query:"sortBy" json:"sortBy" validate:"omitempty,oneof=name createdAt"`
	Order  string `query:"order" json:"order" validate:"omitempty,oneof=ASC DESC"`
	Page   int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit  int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

type updateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=64"`
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	Status   *string `json:"status" validate:"omitempty,oneof=ACTIVE SUSPENDED"`
}

func ListUsersHandler(c *fiber.Ctx) error {
	var q listQuery
	if err := c.QueryParser(&q); err != nil {
		return response.BadRequest(c, "Invalid query parameters", err.Error())
	}

	if details := validation.Struct(&q); details != nil {
		return response.ValidationError(c, details)
	}

	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 10
	}

	users, meta, appErr := GetAll(ListFilters{Role: q.Role, SortBy: q.SortBy, Order: q.Order}, q.Page, q.Limit)
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.SuccessWithMeta(c, users, meta, "Users retrieved successfully")
}

func ListInactiveUsersHandler(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	users, meta, appErr := GetInactive(page, limit)
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.SuccessWithMeta(c, users, meta, "Inactive users retrieved successfully")
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	u, appErr := GetByID(uint(id))
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.Success(c, u, "User retrieved successfully")
}

func UpdateUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var body updateRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if details := validation.Struct(&body); details != nil {
		return response.ValidationError(c, details)
	}

	if body.Name != nil {
		sanitized := validation.Sanitize(*body.Name)
		body.Name = &sanitized
	}

	u, appErr := Update(uint(id), UpdateFields{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
		Status:   body.Status,
	}, claims.UserID, claims.Role)
	if appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.Success(c, u, "User updated successfully")
}

func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	if appErr := Delete(uint(id)); appErr != nil {
		return response.FromAppError(c, appErr)
	}

	return response.Success(c, fiber.Map{"response": "User deleted successfully"}, "User deleted successfully")
}
