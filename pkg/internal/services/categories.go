package services

import (
	"errors"
	"strings"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"gorm.io/gorm"
)

var ErrCategoryInUse = errors.New("cannot delete category with associated articles")

func ListCategory() ([]models.Category, error) {
	var categories []models.Category
	err := database.C.Order("name").Find(&categories).Error

	return categories, err
}

func GetCategory(alias string) (models.Category, error) {
	var category models.Category
	if err := database.C.Where(models.Category{Alias: alias}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func GetCategoryWithID(id uint) (models.Category, error) {
	var category models.Category
	if err := database.C.Where(models.Category{
		BaseModel: models.BaseModel{ID: id},
	}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func NewCategory(name, description string) (models.Category, error) {
	category := models.Category{
		Alias:       MakeSlug(name),
		Name:        name,
		Description: description,
	}

	err := database.C.Create(&category).Error

	return category, err
}

// EditCategory recomputes the alias from the new name; a collision with
// another category surfaces as the unique-index violation.
func EditCategory(category models.Category, name, description string) (models.Category, error) {
	category.Alias = MakeSlug(name)
	category.Name = name
	category.Description = description

	err := database.C.Save(&category).Error

	return category, err
}

func DeleteCategory(category models.Category) error {
	var count int64
	if err := database.C.Model(&models.Article{}).
		Where("category_id = ?", category.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return database.C.Delete(&category).Error
}

func CountCategory() (int64, error) {
	var count int64
	err := database.C.Model(&models.Category{}).Count(&count).Error
	return count, err
}

func ListTag() ([]models.Tag, error) {
	var tags []models.Tag
	err := database.C.Order("name").Find(&tags).Error

	return tags, err
}

func GetTag(alias string) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where(models.Tag{Alias: alias}).First(&tag).Error; err != nil {
		return tag, err
	}
	return tag, nil
}

func GetTagWithID(id uint) (models.Tag, error) {
	var tag models.Tag
	if err := database.C.Where(models.Tag{
		BaseModel: models.BaseModel{ID: id},
	}).First(&tag).Error; err != nil {
		return tag, err
	}
	return tag, nil
}

func NewTag(name string) (models.Tag, error) {
	tag := models.Tag{
		Alias: MakeSlug(name),
		Name:  name,
	}

	err := database.C.Create(&tag).Error

	return tag, err
}

func EditTag(tag models.Tag, name string) (models.Tag, error) {
	tag.Alias = MakeSlug(name)
	tag.Name = name

	err := database.C.Save(&tag).Error

	return tag, err
}

// DeleteTag is unconditional; association rows are cleared first.
func DeleteTag(tag models.Tag) error {
	if err := database.C.Model(&tag).Association("Articles").Clear(); err != nil {
		return err
	}
	return database.C.Delete(&tag).Error
}

func CountTag() (int64, error) {
	var count int64
	err := database.C.Model(&models.Tag{}).Count(&count).Error
	return count, err
}

// GetTagOrCreate resolves a free-text tag name, creating the tag when it
// does not exist yet.
func GetTagOrCreate(tx *gorm.DB, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)

	var tag models.Tag
	if err := tx.Where(models.Tag{Name: name}).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{
				Alias: MakeSlug(name),
				Name:  name,
			}
			err := tx.Create(&tag).Error
			return tag, err
		}
		return tag, err
	}
	return tag, nil
}
