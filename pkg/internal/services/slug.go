package services

import (
	"fmt"
	"time"

	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func MakeSlug(in string) string {
	return slug.Make(in)
}

// SyntheticSlug is the fallback when slugification yields nothing usable
// (empty source or a bare hyphen placeholder).
func SyntheticSlug() string {
	return "post-" + time.Now().Format("2006-01-02-15-04-05")
}

// UniqueArticleSlug appends -1, -2, ... to base until no other article
// holds the alias. excludeID skips the row being edited. The check runs
// inside the caller's transaction; a concurrent create with the same
// title can still collide, which surfaces as the unique-index violation
// on commit.
func UniqueArticleSlug(tx *gorm.DB, base string, excludeID uint) (string, error) {
	if len(base) == 0 || base == "-" {
		base = SyntheticSlug()
	}

	alias := base
	for counter := 1; ; counter++ {
		probe := tx.Model(&models.Article{}).Where("alias = ?", alias)
		if excludeID > 0 {
			probe = probe.Where("id != ?", excludeID)
		}

		var count int64
		if err := probe.Count(&count).Error; err != nil {
			return alias, err
		}
		if count == 0 {
			return alias, nil
		}

		alias = fmt.Sprintf("%s-%d", base, counter)
	}
}
