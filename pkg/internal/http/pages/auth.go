package pages

import (
	"errors"
	"strings"

	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func showLogin(c *fiber.Ctx) error {
	if _, ok := exts.CurrentAccount(c); ok {
		return c.Redirect("/admin")
	}

	return exts.RenderPage(c, "admin/login", fiber.Map{"Title": "Login"})
}

func doLogin(c *fiber.Ctx) error {
	if _, ok := exts.CurrentAccount(c); ok {
		return c.Redirect("/admin")
	}

	var data struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		exts.Flash(c, "danger", "Invalid username or password.")
		return exts.RenderPage(c, "admin/login", fiber.Map{"Title": "Login"})
	}

	account, err := services.Authenticate(data.Username, data.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			exts.Flash(c, "danger", "Invalid username or password.")
			return exts.RenderPage(c, "admin/login", fiber.Map{"Title": "Login"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := exts.SignIn(c, account); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	exts.Flash(c, "success", "Login successful!")

	// Only follow relative next targets.
	if next := c.Query("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return c.Redirect(next)
	}
	return c.Redirect("/admin")
}

func doLogout(c *fiber.Ctx) error {
	if err := exts.SignOut(c); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	exts.Flash(c, "success", "You have been logged out.")
	return c.Redirect("/")
}
