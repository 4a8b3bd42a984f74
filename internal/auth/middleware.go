package auth

import (
	"strings"

	"github.com/amacedo/users-api/internal/response"
	"github.com/amacedo/users-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// JWTProtected authenticates the request. It passes through when an
// earlier stage already attached an identity, otherwise it requires a
// `Bearer <token>` Authorization header and attaches the decoded claims.
func JWTProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("claims") != nil {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid token format")
		}

		claims, err := utils.ParseJWT(tokenParts[1])
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}

// RoleProtected authorizes against a declared role set. Must run after
// JWTProtected; with no declared roles every authenticated request passes.
func RoleProtected(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(allowedRoles) == 0 {
			return c.Next()
		}

		claims, ok := c.Locals("claims").(*utils.Claims)
		if !ok {
			return response.Unauthorized(c, "Missing authenticated identity")
		}

		for _, role := range allowedRoles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// CurrentClaims reads the identity attached by JWTProtected.
func CurrentClaims(c *fiber.Ctx) (*utils.Claims, bool) {
	claims, ok := c.Locals("claims").(*utils.Claims)
	return claims, ok
}
