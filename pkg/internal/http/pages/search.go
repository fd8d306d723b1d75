package pages

import (
	"fmt"
	"strings"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Search results render through the index template and are never cached.
func searchArticles(c *fiber.Ctx) error {
	probe := strings.TrimSpace(c.Query("q"))
	if len(probe) == 0 {
		return c.Redirect("/")
	}

	total, err := services.CountArticle(
		services.FilterArticleWithFuzzySearch(services.FilterArticlePublished(database.C), probe),
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	pager := paginate(c, total)
	items, err := services.ListArticle(
		services.FilterArticleWithFuzzySearch(services.FilterArticlePublished(database.C), probe),
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
		"Articles":    items,
		"Categories":  categories,
		"Pagination":  pager,
		"SearchQuery": probe,
		"Breadcrumbs": []breadcrumb{
			{Label: "Home", Href: "/"},
			{Label: "Search: " + probe},
		},
		"Title":       "Search: " + probe,
		"Description": fmt.Sprintf("Search results for %q.", probe),
	})
}
