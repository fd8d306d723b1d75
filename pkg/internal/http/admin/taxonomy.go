package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/amberglow/quill/pkg/internal/http/exts"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func manageCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategory()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.RenderPage(c, "admin/manage_categories", fiber.Map{
		"Categories": categories,
		"Title":      "Manage Categories",
	})
}

func mutateCategories(c *fiber.Ctx) error {
	var form struct {
		Action      string `form:"action"`
		CategoryID  string `form:"category_id"`
		Name        string `form:"name"`
		Description string `form:"description"`
	}
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	name := strings.TrimSpace(form.Name)

	switch form.Action {
	case "create":
		if len(name) == 0 {
			exts.Flash(c, "danger", "Category name is required.")
			break
		}
		if _, err := services.NewCategory(name, form.Description); err != nil {
			exts.Flash(c, "danger", "Error creating category: "+err.Error())
			break
		}
		refreshPublicContent()
		exts.Flash(c, "success", "Category created successfully!")

	case "update":
		if len(name) == 0 {
			exts.Flash(c, "danger", "Category name is required.")
			break
		}
		id, _ := strconv.ParseUint(form.CategoryID, 10, 32)
		category, err := services.GetCategoryWithID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrNotFound
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if _, err := services.EditCategory(category, name, form.Description); err != nil {
			exts.Flash(c, "danger", "Error updating category: "+err.Error())
			break
		}
		refreshPublicContent()
		exts.Flash(c, "success", "Category updated successfully!")

	case "delete":
		id, _ := strconv.ParseUint(form.CategoryID, 10, 32)
		category, err := services.GetCategoryWithID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrNotFound
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := services.DeleteCategory(category); err != nil {
			if errors.Is(err, services.ErrCategoryInUse) {
				exts.Flash(c, "danger", "Cannot delete category with associated articles.")
			} else {
				exts.Flash(c, "danger", "Error deleting category: "+err.Error())
			}
			break
		}
		refreshPublicContent()
		exts.Flash(c, "success", "Category deleted successfully!")
	}

	return c.Redirect("/admin/categories")
}

func manageTags(c *fiber.Ctx) error {
	tags, err := services.ListTag()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return exts.RenderPage(c, "admin/manage_tags", fiber.Map{
		"Tags":  tags,
		"Title": "Manage Tags",
	})
}

func mutateTags(c *fiber.Ctx) error {
	var form struct {
		Action string `form:"action"`
		TagID  string `form:"tag_id"`
		Name   string `form:"name"`
	}
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	name := strings.TrimSpace(form.Name)

	switch form.Action {
	case "create":
		if len(name) == 0 {
			exts.Flash(c, "danger", "Tag name is required.")
			break
		}
		if _, err := services.NewTag(name); err != nil {
			exts.Flash(c, "danger", "Error creating tag: "+err.Error())
			break
		}
		refreshPublicContent()
		exts.Flash(c, "success", "Tag created successfully!")

	case "update":
		if len(name) == 0 {
			exts.Flash(c, "danger", "Tag name is required.")
			break
		}
		id, _ := strconv.ParseUint(form.TagID, 10, 32)
		tag, err := services.GetTagWithID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrNotFound
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if _, err := services.EditTag(tag, name); err != nil {
			exts.Flash(c, "danger", "Error updating tag: "+err.Error())
			break
		}
		refreshPublicContent()
		exts.Flash(c, "success", "Tag updated successfully!")

	case "delete":
		id, _ := strconv.ParseUint(form.TagID, 10, 32)
		tag, err := services.GetTagWithID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.ErrNotFound
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := services.DeleteTag(tag); err != nil {
			exts.Flash(c, "danger", "Error deleting tag: "+err.Error())
			break
		}
		refreshPublicContent()
		exts.Flash(c, "success", "Tag deleted successfully!")
	}

	return c.Redirect("/admin/tags")
}
