package pages

import (
	"os"
	"strings"

	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func showSitemap(c *fiber.Ctx) error {
	path := viper.GetString("sitemap.path")

	if _, err := os.Stat(path); err != nil {
		if err := services.GenerateSitemap(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Type("xml")
	return c.Send(content)
}

func showRobots(c *fiber.Ctx) error {
	content, err := os.ReadFile(viper.GetString("robots.path"))
	if err != nil {
		return fiber.ErrNotFound
	}

	siteURL := strings.TrimSuffix(viper.GetString("site.url"), "/")
	c.Type("txt")
	return c.SendString(strings.ReplaceAll(string(content), "{{site_url}}", siteURL))
}
