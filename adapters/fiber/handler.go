package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lajom/gatekeep/core"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type resetInput struct {
	Email       string `json:"email" form:"email"`
	ResetToken  string `json:"reset_token" form:"reset_token"`
	NewPassword string `json:"new_password" form:"new_password"`
}

// register creates a new user account.
func (a *Adapter) register(c fiber.Ctx) error {
	var input credentialsInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := a.service.Register(c.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, core.ErrUserExists) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "email already registered",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "registration failed",
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"email":   user.Email,
		"message": "user created",
	})
}

// login validates credentials and sets the session cookie.
func (a *Adapter) login(c fiber.Ctx) error {
	var input credentialsInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if !a.service.ValidLogin(c.Context(), input.Email, input.Password) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid credentials",
		})
	}

	sessionID, ok := a.service.CreateSession(c.Context(), input.Email)
	if !ok {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not create session",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		HTTPOnly: true,
		Path:     "/",
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email":   input.Email,
		"message": "logged in",
	})
}

// logout destroys the current session and clears the cookie.
func (a *Adapter) logout(c fiber.Ctx) error {
	user := sessionUser(c)

	a.service.DestroySession(c.Context(), user.ID)
	c.ClearCookie(sessionCookie)

	return c.Redirect().To("/")
}

// profile reports the logged-in user's email.
func (a *Adapter) profile(c fiber.Ctx) error {
	user := sessionUser(c)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email": user.Email,
	})
}

// issueResetToken mints a password-reset token for a registered email.
func (a *Adapter) issueResetToken(c fiber.Ctx) error {
	var input resetInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	token, err := a.service.IssueResetToken(c.Context(), input.Email)
	if err != nil {
		// An unknown email and a store failure answer alike so the
		// endpoint does not confirm which addresses are registered.
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"error": "forbidden",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email":       input.Email,
		"reset_token": token,
	})
}

// updatePassword consumes a reset token and installs a new password.
func (a *Adapter) updatePassword(c fiber.Ctx) error {
	var input resetInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := a.service.UpdatePassword(c.Context(), input.ResetToken, input.NewPassword); err != nil {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{
			"error": "forbidden",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"email":   input.Email,
		"message": "Password updated",
	})
}
