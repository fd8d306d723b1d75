package exts

import (
	"time"

	localCache "github.com/amberglow/quill/pkg/internal/cache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// CachedPage is the envelope stored for a memoized public page.
type CachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CachePage memoizes successful GET responses by path and query for the
// given window. Mutation routes invalidate by flushing the whole store.
func CachePage(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || localCache.S == nil {
			return c.Next()
		}

		key := PageCacheKey(c.Path(), string(c.Request().URI().QueryString()))
		marshal := marshaler.New(cache.New[any](localCache.S))
		ctx := c.UserContext()

		if found, err := marshal.Get(ctx, key, new(CachedPage)); err == nil {
			page := found.(*CachedPage)
			c.Set(fiber.HeaderContentType, page.ContentType)
			return c.Status(page.Status).Send(page.Body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			page := CachedPage{
				Status:      c.Response().StatusCode(),
				ContentType: string(c.Response().Header.ContentType()),
				Body:        utils.CopyBytes(c.Response().Body()),
			}
			_ = marshal.Set(ctx, key, page, store.WithExpiration(ttl))
		}

		return nil
	}
}

func PageCacheKey(path, query string) string {
	key := "page#" + path
	if len(query) > 0 {
		key += "?" + query
	}
	return key
}
