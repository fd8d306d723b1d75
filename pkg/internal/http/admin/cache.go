package admin

import (
	localCache "github.com/amberglow/quill/pkg/internal/cache"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func clearCache(c *fiber.Ctx) error {
	log.Info().Msg("Clearing response cache...")
	localCache.Flush()

	exts.Flash(c, "success", "Cache cleared successfully!")
	return c.RedirectBack("/admin")
}
