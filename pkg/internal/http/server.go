package http

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"html/template"
	"time"

	"github.com/amberglow/quill/pkg/internal/http/admin"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/http/pages"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func NewServer() *fiber.App {
	templates := html.New(viper.GetString("templates.path"), ".html")
	templates.AddFunc("raw", func(value string) template.HTML {
		return template.HTML(value)
	})

	app := fiber.New(fiber.Config{
		AppName:               "Quill",
		ServerHeader:          "Quill",
		DisableStartupMessage: true,
		Views:                 templates,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          renderError,
	})

	app.Use(recover.New())
	app.Use(logRequest)
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key:    deriveCookieKey(viper.GetString("security.session_secret")),
		Except: []string{csrf.ConfigDefault.CookieName},
	}))

	exts.Sessions = session.New(session.Config{
		KeyLookup:      "cookie:quill_session",
		Expiration:     7 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf_token",
		ContextKey:     "csrf",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			exts.Flash(c, "danger", "CSRF token validation failed. Please try again.")
			return c.RedirectBack("/")
		},
	}))

	app.Use(exts.LoadAccount)

	app.Static("/static", viper.GetString("static.path"))

	pages.MapPages(app)
	admin.MapControllers(app, "/admin")

	return app
}

func renderError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var cause *fiber.Error
	if errors.As(err, &cause) {
		code = cause.Code
	}

	c.Status(code)
	if code == fiber.StatusNotFound {
		return exts.RenderPage(c, "404", fiber.Map{"Title": "Page Not Found"})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when processing request.")
	return exts.RenderPage(c, "500", fiber.Map{"Title": "Server Error"})
}

func logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("Request handled.")

	return err
}

// deriveCookieKey stretches the configured session secret into the
// 32-byte key the cookie encryptor expects.
func deriveCookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
