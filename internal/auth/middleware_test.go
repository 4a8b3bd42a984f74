package auth_test

import (
	"net/http/httptest"
	"testing"

	"github.com/amacedo/users-api/internal/auth"
	"github.com/amacedo/users-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func guardTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append(handlers, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/protected", chain...)
	return app
}

func TestJWTProtected(t *testing.T) {
	t.Run("Rejects a missing header", func(t *testing.T) {
		app := guardTestApp(auth.JWTProtected())

		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Rejects a non-bearer scheme", func(t *testing.T) {
		app := guardTestApp(auth.JWTProtected())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Accepts a valid bearer token", func(t *testing.T) {
		app := guardTestApp(auth.JWTProtected())

		token, err := utils.GenerateJWT(1, "guard@test.com", "USER")
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Passes through an already attached identity", func(t *testing.T) {
		attach := func(c *fiber.Ctx) error {
			c.Locals("claims", &utils.Claims{UserID: 1, Role: "USER"})
			return c.Next()
		}
		app := guardTestApp(attach, auth.JWTProtected())

		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestRoleProtected(t *testing.T) {
	token, _ := utils.GenerateJWT(1, "role@test.com", "USER")

	t.Run("Empty role set allows any authenticated request", func(t *testing.T) {
		app := guardTestApp(auth.JWTProtected(), auth.RoleProtected())

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Role outside the set is forbidden", func(t *testing.T) {
		app := guardTestApp(auth.JWTProtected(), auth.RoleProtected("ADMIN"))

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Role inside the set proceeds", func(t *testing.T) {
		adminToken, _ := utils.GenerateJWT(2, "admin@test.com", "ADMIN")
		app := guardTestApp(auth.JWTProtected(), auth.RoleProtected("ADMIN"))

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
