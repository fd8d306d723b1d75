package services

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type sitemapNewsPublication struct {
	Name     string `xml:"news:name"`
	Language string `xml:"news:language"`
}

type sitemapNews struct {
	Publication     sitemapNewsPublication `xml:"news:publication"`
	PublicationDate string                 `xml:"news:publication_date"`
	Title           string                 `xml:"news:title"`
}

type sitemapURL struct {
	Loc        string       `xml:"loc"`
	LastMod    string       `xml:"lastmod,omitempty"`
	ChangeFreq string       `xml:"changefreq"`
	Priority   string       `xml:"priority"`
	News       *sitemapNews `xml:"news:news,omitempty"`
}

type sitemapURLSet struct {
	XMLName    xml.Name     `xml:"urlset"`
	Xmlns      string       `xml:"xmlns,attr"`
	XmlnsImage string       `xml:"xmlns:image,attr"`
	XmlnsNews  string       `xml:"xmlns:news,attr"`
	URLs       []sitemapURL `xml:"url"`
}

const (
	sitemapXmlns      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapXmlnsImage = "http://www.google.com/schemas/sitemap-image/1.1"
	sitemapXmlnsNews  = "http://www.google.com/schemas/sitemap-news/0.9"
)

// How long after publication an article still counts as news for the
// news-sitemap extension.
const sitemapNewsWindow = 48 * time.Hour

// GenerateSitemap rebuilds the sitemap file from the current database
// state. It runs after every content mutation and on an hourly schedule,
// and is idempotent for a given database state. Query failures degrade to
// a minimal single-entry document; only a file-write failure is returned.
func GenerateSitemap() error {
	baseURL := strings.TrimSuffix(viper.GetString("site.url"), "/")
	path := viper.GetString("sitemap.path")

	urls, err := collectSitemapURLs(baseURL)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when collecting sitemap entries, writing fallback document...")
		return writeSitemapFile(path, sitemapURLSet{
			Xmlns: sitemapXmlns,
			URLs: []sitemapURL{{
				Loc:        baseURL + "/",
				ChangeFreq: "daily",
				Priority:   "1.0",
			}},
		})
	}

	return writeSitemapFile(path, sitemapURLSet{
		Xmlns:      sitemapXmlns,
		XmlnsImage: sitemapXmlnsImage,
		XmlnsNews:  sitemapXmlnsNews,
		URLs:       urls,
	})
}

func collectSitemapURLs(baseURL string) ([]sitemapURL, error) {
	now := time.Now()
	today := now.Format("2006-01-02")

	urls := []sitemapURL{{
		Loc:        baseURL + "/",
		LastMod:    today,
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}

	var articles []models.Article
	if err := FilterArticlePublished(database.C).Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("unable to list published articles: %w", err)
	}

	articles = lo.Filter(articles, func(item models.Article, index int) bool {
		return len(item.Alias) > 0 && item.Alias != "-"
	})

	urls = append(urls, lo.Map(articles, func(item models.Article, index int) sitemapURL {
		entry := sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/%s", baseURL, item.Alias),
			LastMod:    item.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}

		if now.Sub(item.CreatedAt) < sitemapNewsWindow {
			language := item.Language
			if len(language) == 0 {
				language = "en"
			}
			entry.News = &sitemapNews{
				Publication: sitemapNewsPublication{
					Name:     viper.GetString("site.name"),
					Language: language,
				},
				PublicationDate: item.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
				Title:           item.Title,
			}
		}

		return entry
	})...)

	var categories []models.Category
	if err := database.C.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("unable to list categories: %w", err)
	}

	for _, category := range categories {
		lastmod := today
		var latest models.Article
		if err := FilterArticlePublished(database.C).
			Where("category_id = ?", category.ID).
			Order("updated_at DESC").
			First(&latest).Error; err == nil {
			lastmod = latest.UpdatedAt.Format("2006-01-02")
		}

		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/category/%s", baseURL, category.Alias),
			LastMod:    lastmod,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	var tags []models.Tag
	if err := database.C.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("unable to list tags: %w", err)
	}

	for _, tag := range tags {
		lastmod := today
		var latest models.Article
		if err := FilterArticleWithTag(FilterArticlePublished(database.C), tag.Alias).
			Order("articles.updated_at DESC").
			First(&latest).Error; err == nil {
			lastmod = latest.UpdatedAt.Format("2006-01-02")
		}

		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/tag/%s", baseURL, tag.Alias),
			LastMod:    lastmod,
			ChangeFreq: "weekly",
			Priority:   "0.4",
		})
	}

	return urls, nil
}

// writeSitemapFile replaces the sitemap atomically so readers never see a
// partially written document.
func writeSitemapFile(path string, set sitemapURLSet) error {
	payload, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	temp := path + ".tmp"
	if err := os.WriteFile(temp, append([]byte(xml.Header), payload...), 0o644); err != nil {
		return err
	}

	return os.Rename(temp, path)
}
