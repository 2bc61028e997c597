// Package fiber mounts the auth service onto a Fiber application. The
// route surface follows the classic cookie-session shape: registration,
// login/logout, a profile endpoint, and the two-step password reset.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lajom/gatekeep/services"
)

const sessionCookie = "session_id"

type Adapter struct {
	app     *fiber.App
	service *services.AuthService
}

func New(app *fiber.App, service *services.AuthService) *Adapter {
	return &Adapter{app: app, service: service}
}

func (a *Adapter) RegisterRoutes() {
	// Public routes
	a.app.Post("/users", a.register)
	a.app.Post("/sessions", a.login)
	a.app.Post("/reset_password", a.issueResetToken)
	a.app.Put("/reset_password", a.updatePassword)

	// Protected routes
	a.app.Delete("/sessions", a.requireSession, a.logout)
	a.app.Get("/profile", a.requireSession, a.profile)
}
