package pages

import (
	"time"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

const articlesPerPage = 5

const pageCacheTTL = 60 * time.Second

type breadcrumb struct {
	Label string
	Href  string
}

type pagination struct {
	Page    int
	Pages   int
	Total   int64
	PerPage int
}

func (p pagination) Offset() int   { return (p.Page - 1) * p.PerPage }
func (p pagination) HasPrev() bool { return p.Page > 1 }
func (p pagination) HasNext() bool { return p.Page < p.Pages }
func (p pagination) PrevPage() int { return p.Page - 1 }
func (p pagination) NextPage() int { return p.Page + 1 }

func paginate(c *fiber.Ctx, total int64) pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pages := int((total + articlesPerPage - 1) / articlesPerPage)
	return pagination{
		Page:    page,
		Pages:   pages,
		Total:   total,
		PerPage: articlesPerPage,
	}
}

func MapPages(app *fiber.App) {
	pages := app.Group("")
	{
		pages.Get("/", exts.CachePage(pageCacheTTL), showIndex)
		pages.Get("/blog/:alias", exts.CachePage(pageCacheTTL), showArticle)
		pages.Get("/category/:alias", exts.CachePage(pageCacheTTL), showCategory)
		pages.Get("/tag/:alias", exts.CachePage(pageCacheTTL), showTag)
		pages.Get("/search", searchArticles)
		pages.Get("/sitemap.xml", showSitemap)
		pages.Get("/robots.txt", showRobots)

		pages.Get("/login", showLogin)
		pages.Post("/login", doLogin)
		pages.Get("/logout", exts.EnsureAuthenticated, doLogout)
	}
}

func showIndex(c *fiber.Ctx) error {
	total, err := services.CountArticle(services.FilterArticlePublished(database.C))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	pager := paginate(c, total)
	items, err := services.ListArticle(
		services.FilterArticlePublished(database.C),
		pager.PerPage, pager.Offset(),
		"created_at DESC",
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	categories, err := services.ListCategory()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.RenderPage(c, "index", fiber.Map{
		"Articles":   items,
		"Categories": categories,
		"Pagination": pager,
	})
}
