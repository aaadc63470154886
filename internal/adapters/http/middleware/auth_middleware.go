package middleware

import (
	"errors"
	"strings"

	"shiftdesk/internal/adapters/persistence/models"
	"shiftdesk/internal/config"
	"shiftdesk/internal/pkg/jwt"
	"shiftdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware authenticates requests via the Authorization header.
// A missing or malformed header is a 403 (no credentials presented);
// a bad or expired token is a 401.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Forbidden(c, "You are not authorized to access the route. Missing credentials.")
		}

		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired. Please login again.")
			}
			return response.Unauthorized(c, "Access denied. Invalid token")
		}

		c.Locals("employeeID", claims.EmployeeID)
		c.Locals("email", claims.Email)
		c.Locals("role", models.Role(claims.Role))

		return c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return response.Unauthorized(c, "You are not authorized to access the route.")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Unauthorized(c, "You are not authorized to access the route.")
	}
}

// HROnly allows only the hr role
func HROnly() fiber.Handler {
	return RoleMiddleware(models.RoleHR)
}

// HROrManager allows the hr and manager roles
func HROrManager() fiber.Handler {
	return RoleMiddleware(models.RoleHR, models.RoleManager)
}
