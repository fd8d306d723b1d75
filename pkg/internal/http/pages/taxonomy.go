package pages

import (
	"errors"
	"fmt"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func showCategory(c *fiber.Ctx) error {
	alias := c.Params("alias")

	category, err := services.GetCategory(alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	total, err := services.CountArticle(
		services.FilterArticlePublished(database.C).Where("category_id = ?", category.ID),
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	pager := paginate(c, total)
	items, err := services.ListArticle(
		services.FilterArticlePublished(database.C).Where("category_id = ?", category.ID),
		pager.PerPage, pager.Offset(),
		"created_at DESC",
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	description := category.Description
	if len(description) == 0 {
		description = fmt.Sprintf("Articles in the %s category.", category.Name)
	}

	return exts.RenderPage(c, "category", fiber.Map{
		"Category":   category,
		"Articles":   items,
		"Pagination": pager,
		"Breadcrumbs": []breadcrumb{
			{Label: "Home", Href: "/"},
			{Label: "Category: " + category.Name},
		},
		"Title":       "Category: " + category.Name,
		"Description": description,
	})
}

func showTag(c *fiber.Ctx) error {
	alias := c.Params("alias")

	tag, err := services.GetTag(alias)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	total, err := services.CountArticle(
		services.FilterArticleWithTag(services.FilterArticlePublished(database.C), tag.Alias),
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	pager := paginate(c, total)
	// The tag join carries a created_at column of its own, so the
	// ordering column must be qualified.
	items, err := services.ListArticle(
		services.FilterArticleWithTag(services.FilterArticlePublished(database.C), tag.Alias),
		pager.PerPage, pager.Offset(),
		"articles.created_at DESC",
	)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.RenderPage(c, "tag", fiber.Map{
		"Tag":        tag,
		"Articles":   items,
		"Pagination": pager,
		"Breadcrumbs": []breadcrumb{
			{Label: "Home", Href: "/"},
			{Label: "Tag: " + tag.Name},
		},
		"Title":       "Tag: " + tag.Name,
		"Description": fmt.Sprintf("Articles tagged with %s.", tag.Name),
	})
}
