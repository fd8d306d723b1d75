package services

import (
	"strings"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"gorm.io/gorm"
)

// ArticleDraft carries the submitted fields of an article form. Blank
// meta fields are backfilled from the article itself on save.
type ArticleDraft struct {
	Title           string
	Alias           string
	Content         string
	Summary         string
	Published       bool
	CategoryID      *uint
	TagIDs          []uint
	NewTags         string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
}

func FilterArticlePublished(tx *gorm.DB) *gorm.DB {
	return tx.Where("published = ?", true)
}

func FilterArticleWithCategory(tx *gorm.DB, alias string) *gorm.DB {
	return tx.Joins("JOIN categories ON categories.id = articles.category_id").
		Where("categories.alias = ?", alias)
}

func FilterArticleWithTag(tx *gorm.DB, alias string) *gorm.DB {
	return tx.Joins("JOIN article_tags ON articles.id = article_tags.article_id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("tags.alias = ?", alias)
}

func FilterArticleWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + probe + "%"
	return tx.Where(
		database.C.Where("title ILIKE ?", probe).
			Or("content ILIKE ?", probe).
			Or("summary ILIKE ?", probe),
	)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Tags").
		Preload("Category").
		Preload("Author")
}

func GetArticle(tx *gorm.DB, id uint) (models.Article, error) {
	var item models.Article
	if err := PreloadGeneral(tx).
		Where("articles.id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func GetArticleByAlias(tx *gorm.DB, alias string) (models.Article, error) {
	var item models.Article
	if err := PreloadGeneral(tx).
		Where("alias = ?", alias).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func CountArticle(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Article{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListArticle(tx *gorm.DB, take int, offset int, order any) ([]models.Article, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Article
	if err := PreloadGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func NewArticle(author models.Account, draft ArticleDraft) (models.Article, error) {
	var item models.Article
	err := database.C.Transaction(func(tx *gorm.DB) error {
		base := strings.TrimSpace(draft.Alias)
		if len(base) == 0 {
			base = MakeSlug(draft.Title)
		}

		alias, err := UniqueArticleSlug(tx, base, 0)
		if err != nil {
			return err
		}

		tags, err := resolveTagSet(tx, draft)
		if err != nil {
			return err
		}

		item = models.Article{
			Title:      draft.Title,
			Alias:      alias,
			Content:    draft.Content,
			Summary:    draft.Summary,
			Language:   DetectLanguage(draft.Content),
			Published:  draft.Published,
			CategoryID: draft.CategoryID,
			AuthorID:   author.ID,
			Tags:       tags,
		}
		applyArticleMeta(&item, draft)

		return tx.Create(&item).Error
	})

	return item, err
}

// EditArticle replaces the article's scalar fields and its entire tag
// set. The alias only changes when the form submitted a different one.
func EditArticle(item models.Article, draft ArticleDraft) (models.Article, error) {
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if alias := strings.TrimSpace(draft.Alias); len(alias) > 0 && alias != item.Alias {
			alias, err := UniqueArticleSlug(tx, alias, item.ID)
			if err != nil {
				return err
			}
			item.Alias = alias
		}

		tags, err := resolveTagSet(tx, draft)
		if err != nil {
			return err
		}

		item.Title = draft.Title
		item.Content = draft.Content
		item.Summary = draft.Summary
		item.Language = DetectLanguage(draft.Content)
		item.Published = draft.Published
		item.CategoryID = draft.CategoryID
		applyArticleMeta(&item, draft)

		if err := tx.Model(&item).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		item.Tags = tags

		return tx.Omit("Tags").Save(&item).Error
	})

	return item, err
}

func DeleteArticle(item models.Article) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func applyArticleMeta(item *models.Article, draft ArticleDraft) {
	metaTitle := strings.TrimSpace(draft.MetaTitle)
	if len(metaTitle) == 0 {
		metaTitle = draft.Title
	}
	item.MetaTitle = clampRunes(metaTitle, 200)

	metaDescription := strings.TrimSpace(draft.MetaDescription)
	if len(metaDescription) == 0 {
		metaDescription = strings.TrimSpace(draft.Summary)
	}
	if len(metaDescription) == 0 {
		metaDescription = ExtractExcerpt(draft.Content, 150)
	}
	item.MetaDescription = metaDescription

	metaKeywords := strings.TrimSpace(draft.MetaKeywords)
	if len(metaKeywords) == 0 {
		metaKeywords = ExtractMetaKeywords(draft.Content, 10)
	}
	item.MetaKeywords = clampRunes(metaKeywords, 200)
}

func resolveTagSet(tx *gorm.DB, draft ArticleDraft) ([]models.Tag, error) {
	var tags []models.Tag
	for _, id := range draft.TagIDs {
		var tag models.Tag
		if err := tx.Where(models.Tag{
			BaseModel: models.BaseModel{ID: id},
		}).First(&tag).Error; err != nil {
			continue
		}
		tags = append(tags, tag)
	}

	for _, name := range strings.Split(draft.NewTags, ",") {
		name = strings.TrimSpace(name)
		if len(name) == 0 {
			continue
		}
		tag, err := GetTagOrCreate(tx, name)
		if err != nil {
			return tags, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

func clampRunes(in string, max int) string {
	runes := []rune(in)
	if len(runes) <= max {
		return in
	}
	return string(runes[:max])
}
