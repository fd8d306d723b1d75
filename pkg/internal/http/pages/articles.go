package pages

import (
	"errors"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func showArticle(c *fiber.Ctx) error {
	alias := c.Params("alias")

	item, err := services.GetArticleByAlias(services.FilterArticlePublished(database.C), alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	breadcrumbs := []breadcrumb{{Label: "Home", Href: "/"}}
	if item.Category != nil {
		breadcrumbs = append(breadcrumbs, breadcrumb{
			Label: item.Category.Name,
			Href:  "/category/" + item.Category.Alias,
		})
	}
	breadcrumbs = append(breadcrumbs, breadcrumb{Label: item.Title})

	title := item.MetaTitle
	if len(title) == 0 {
		title = item.Title
	}
	description := item.MetaDescription
	if len(description) == 0 {
		description = item.Summary
	}

	return exts.RenderPage(c, "article", fiber.Map{
		"Article":     item,
		"Breadcrumbs": breadcrumbs,
		"Title":       title,
		"Description": description,
	})
}
