package admin

import (
	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func MapControllers(app *fiber.App, baseURL string) {
	admin := app.Group(baseURL, exts.EnsureAdmin)
	{
		admin.Get("/", showDashboard)
		admin.Get("/articles", listArticles)

		admin.Get("/article/new", showNewArticle)
		admin.Post("/article/new", createArticle)
		admin.Get("/article/edit/:articleId", showEditArticle)
		admin.Post("/article/edit/:articleId", updateArticle)
		admin.Post("/article/delete/:articleId", deleteArticle)

		admin.Get("/categories", manageCategories)
		admin.Post("/categories", mutateCategories)
		admin.Get("/tags", manageTags)
		admin.Post("/tags", mutateTags)

		admin.Get("/clear-cache", clearCache)
	}
}

func showDashboard(c *fiber.Ctx) error {
	articlesCount, err := services.CountArticle(database.C)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	publishedCount, err := services.CountArticle(services.FilterArticlePublished(database.C))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	categoriesCount, err := services.CountCategory()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	tagsCount, err := services.CountTag()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	recent, err := services.ListArticle(database.C, 5, 0, "created_at DESC")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.RenderPage(c, "admin/dashboard", fiber.Map{
		"ArticlesCount":   articlesCount,
		"PublishedCount":  publishedCount,
		"DraftCount":      articlesCount - publishedCount,
		"CategoriesCount": categoriesCount,
		"TagsCount":       tagsCount,
		"RecentArticles":  recent,
		"Title":           "Admin Dashboard",
	})
}

func listArticles(c *fiber.Ctx) error {
	var items []models.Article
	if err := services.PreloadGeneral(database.C).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.RenderPage(c, "admin/articles", fiber.Map{
		"Articles": items,
		"Title":    "Manage Articles",
	})
}
