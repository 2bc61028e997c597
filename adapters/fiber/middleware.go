package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lajom/gatekeep/core"
)

// requireSession resolves the session cookie and stores the user in the
// request locals for downstream handlers. Requests without a live
// session are rejected with 403, matching the cookie-session
// convention of answering "forbidden" rather than "unauthorized" for a
// missing or stale cookie.
func (a *Adapter) requireSession(c fiber.Ctx) error {
	sessionID := c.Cookies(sessionCookie)
	if sessionID == "" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "no active session",
		})
	}

	user, ok := a.service.ResolveSession(c.Context(), sessionID)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "no active session",
		})
	}

	c.Locals("user", user)
	return c.Next()
}

// sessionUser returns the user stored by requireSession.
func sessionUser(c fiber.Ctx) *core.User {
	user, _ := c.Locals("user").(*core.User)
	return user
}
