package access

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// LocalsUserKey is the fiber locals key the authentication middleware
// stores the caller's user id under.
const LocalsUserKey = "userID"

// RequirePermission returns a middleware that denies the request unless
// the authenticated user holds the permission. The scope is taken from the
// query string, so list endpoints can be narrowed per project or
// environment by the caller.
func RequirePermission(svc *Service, permissionCode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalsUserKey).(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		scope := Scope{
			ProjectID:     c.Query("projectId"),
			EnvironmentID: c.Query("environmentId"),
			SchemaID:      c.Query("schemaId"),
			ContentStatus: c.Query("contentStatus"),
		}

		allowed, err := svc.CheckAccess(userID, permissionCode, scope)
		if err != nil {
			log.Error().Err(err).Str("user", userID).Str("permission", permissionCode).
				Msg("permission check failed")

			return fiber.NewError(fiber.StatusInternalServerError, "permission check failed")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "permission denied")
		}

		return c.Next()
	}
}

// RequireSetup returns a middleware guarding management endpoints. It
// admits the caller when the rule store is still empty (initial setup) or
// when the caller holds platform management rights.
func RequireSetup(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalsUserKey).(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		allowed, err := svc.AllowSetup(userID)
		if err != nil {
			log.Error().Err(err).Str("user", userID).Msg("setup check failed")

			return fiber.NewError(fiber.StatusInternalServerError, "setup check failed")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "permission denied")
		}

		return c.Next()
	}
}
