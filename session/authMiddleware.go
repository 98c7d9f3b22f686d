package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/volunteermatch/volunteer-server-go/utils"
)

type AuthConfig struct {
	// OpenAccess lists the paths that can be used without logging in.
	OpenAccess []string
}

// DefaultOpenAccess is the allow-list used by the server.
var DefaultOpenAccess = []string{
	utils.ROUTE_SIGNUP,
	utils.ROUTE_LOGIN,
	utils.ROUTE_CHECK_SESSION,
}

// NewAuthMiddleware rejects any request outside the allow-list that doesn't carry a logged-in session.  This runs
// before routing, so unknown paths are rejected in the same way.
func NewAuthMiddleware(config AuthConfig) fiber.Handler {
	open := make(map[string]bool, len(config.OpenAccess))

	for _, p := range config.OpenAccess {
		open[utils.NormalisePath(p)] = true
	}

	return func(c *fiber.Ctx) error {
		if open[utils.NormalisePath(c.Path())] {
			return c.Next()
		}

		id := WhoAmI(c)

		if id == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "401 Unauthorized")
		}

		c.Locals(utils.LOCALS_VOLUNTEER_ID, id)

		return c.Next()
	}
}
