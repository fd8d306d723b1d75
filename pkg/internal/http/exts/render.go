package exts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

// RenderPage renders a template with the bindings every page shares:
// site name, queued flashes, CSRF token, and the signed-in account.
func RenderPage(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}

	if _, ok := bind["Title"]; !ok {
		bind["Title"] = viper.GetString("site.name")
	}
	bind["SiteName"] = viper.GetString("site.name")
	bind["Flashes"] = TakeFlashes(c)
	if token, ok := c.Locals("csrf").(string); ok {
		bind["CSRFToken"] = token
	}
	if account, ok := CurrentAccount(c); ok {
		bind["CurrentAccount"] = account
	}

	return c.Render(name, bind)
}
