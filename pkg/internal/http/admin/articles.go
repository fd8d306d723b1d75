package admin

import (
	"errors"
	"strconv"
	"strings"

	localCache "github.com/amberglow/quill/pkg/internal/cache"
	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type articleForm struct {
	Title           string   `form:"title"`
	Alias           string   `form:"slug"`
	Content         string   `form:"content"`
	Summary         string   `form:"summary"`
	Published       string   `form:"published"`
	CategoryID      string   `form:"category_id"`
	Tags            []string `form:"tags"`
	NewTags         string   `form:"new_tags"`
	MetaTitle       string   `form:"meta_title"`
	MetaDescription string   `form:"meta_description"`
	MetaKeywords    string   `form:"meta_keywords"`
}

func (f articleForm) draft() services.ArticleDraft {
	var categoryID *uint
	if id, err := strconv.ParseUint(f.CategoryID, 10, 32); err == nil && id > 0 {
		value := uint(id)
		categoryID = &value
	}

	tagIDs := lo.FilterMap(f.Tags, func(raw string, index int) (uint, bool) {
		id, err := strconv.ParseUint(raw, 10, 32)
		return uint(id), err == nil && id > 0
	})

	return services.ArticleDraft{
		Title:           strings.TrimSpace(f.Title),
		Alias:           strings.TrimSpace(f.Alias),
		Content:         strings.TrimSpace(f.Content),
		Summary:         strings.TrimSpace(f.Summary),
		Published:       f.Published == "on",
		CategoryID:      categoryID,
		TagIDs:          tagIDs,
		NewTags:         f.NewTags,
		MetaTitle:       f.MetaTitle,
		MetaDescription: f.MetaDescription,
		MetaKeywords:    f.MetaKeywords,
	}
}

func renderArticleForm(c *fiber.Ctx, item *models.Article) error {
	categories, err := services.ListCategory()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	tags, err := services.ListTag()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	bind := fiber.Map{
		"Categories":         categories,
		"AllTags":            tags,
		"IsEdit":             item != nil,
		"Title":              "New Article",
		"SelectedCategoryID": uint(0),
		"SelectedTagIDs":     map[uint]bool{},
	}
	if item != nil {
		bind["Article"] = item
		bind["Title"] = "Edit: " + item.Title
		if item.CategoryID != nil {
			bind["SelectedCategoryID"] = *item.CategoryID
		}
		bind["SelectedTagIDs"] = lo.SliceToMap(item.Tags, func(tag models.Tag) (uint, bool) {
			return tag.ID, true
		})
	}

	return exts.RenderPage(c, "admin/edit_article", bind)
}

// refreshPublicContent runs after every successful content mutation:
// whole-cache invalidation plus a synchronous sitemap rebuild.
func refreshPublicContent() {
	localCache.Flush()
	if err := services.GenerateSitemap(); err != nil {
		log.Error().Err(err).Msg("An error occurred when regenerating sitemap.")
	}
}

func showNewArticle(c *fiber.Ctx) error {
	return renderArticleForm(c, nil)
}

func createArticle(c *fiber.Ctx) error {
	var form articleForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	draft := form.draft()
	if len(draft.Title) == 0 {
		exts.Flash(c, "danger", "Title is required!")
		return renderArticleForm(c, nil)
	}

	account, _ := exts.CurrentAccount(c)
	item, err := services.NewArticle(account, draft)
	if err != nil {
		exts.Flash(c, "danger", "Error creating article: "+err.Error())
		return renderArticleForm(c, nil)
	}

	refreshPublicContent()

	exts.Flash(c, "success", "Article created successfully!")
	return c.Redirect("/blog/" + item.Alias)
}

func showEditArticle(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("articleId", 0)

	item, err := services.GetArticle(database.C, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return renderArticleForm(c, &item)
}

func updateArticle(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("articleId", 0)

	item, err := services.GetArticle(database.C, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var form articleForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	draft := form.draft()
	if len(draft.Title) == 0 {
		exts.Flash(c, "danger", "Title is required!")
		return renderArticleForm(c, &item)
	}

	item, err = services.EditArticle(item, draft)
	if err != nil {
		exts.Flash(c, "danger", "Error updating article: "+err.Error())
		return renderArticleForm(c, &item)
	}

	refreshPublicContent()

	exts.Flash(c, "success", "Article updated successfully!")
	return c.Redirect("/blog/" + item.Alias)
}

func deleteArticle(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("articleId", 0)

	item, err := services.GetArticle(database.C, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := services.DeleteArticle(item); err != nil {
		exts.Flash(c, "danger", "Error deleting article: "+err.Error())
		return c.Redirect("/admin/articles")
	}

	refreshPublicContent()

	exts.Flash(c, "success", "Article deleted successfully!")
	return c.Redirect("/admin/articles")
}
