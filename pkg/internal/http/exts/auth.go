package exts

import (
	"net/url"

	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Sessions is assigned once during server construction.
var Sessions *session.Store

const sessionAccountKey = "account_id"

func SignIn(c *fiber.Ctx, account models.Account) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}

	sess.Set(sessionAccountKey, account.ID)
	return sess.Save()
}

func SignOut(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// LoadAccount resolves the session's account once per request and parks
// it in locals for guards and templates.
func LoadAccount(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return c.Next()
	}

	if id, ok := sess.Get(sessionAccountKey).(uint); ok {
		if account, err := services.GetAccount(id); err == nil {
			c.Locals("account", account)
		}
	}

	return c.Next()
}

func CurrentAccount(c *fiber.Ctx) (models.Account, bool) {
	account, ok := c.Locals("account").(models.Account)
	return account, ok
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := CurrentAccount(c); !ok {
		Flash(c, "danger", "Please log in to access this page.")
		return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
	}

	return c.Next()
}

// EnsureAdmin guards the admin area; anonymous and non-admin callers are
// bounced to the home page with a notice rather than an error page.
func EnsureAdmin(c *fiber.Ctx) error {
	account, ok := CurrentAccount(c)
	if !ok || !account.IsAdmin {
		Flash(c, "danger", "You do not have permission to access this page.")
		return c.Redirect("/")
	}

	return c.Next()
}
