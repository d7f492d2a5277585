package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/token"
)

const (
	// LocalsClaimsKey is the fiber locals key the validated token claims
	// are stored under.
	LocalsClaimsKey = "claims"

	bearerPrefix = "Bearer "
)

// publicPaths are reachable without credentials.
var publicPaths = []string{
	"/auth/token",
	"/checkalive",
	"/metrics",
}

// New returns the bearer-token middleware. Requests outside the public
// paths must carry a valid token; its subject and claims end up in
// fiber.Locals.
func New(cfg config.Token) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, public := range publicPaths {
			if strings.HasPrefix(path, public) {
				return c.Next()
			}
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := token.Validate(cfg, strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}

		c.Locals(access.LocalsUserKey, claims.Subject)
		c.Locals(LocalsClaimsKey, claims)

		return c.Next()
	}
}
