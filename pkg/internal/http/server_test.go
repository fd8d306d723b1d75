package http

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/amberglow/quill/pkg/internal/cache"
	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/amberglow/quill/pkg/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	viper.Set("site.url", "https://blog.example.com")
	viper.Set("site.name", "Quill")
	viper.Set("security.session_secret", "test-secret")
	viper.Set("templates.path", "../../../templates")
	viper.Set("static.path", "../../../static")
	viper.Set("robots.path", "../../../static/robots.txt")
	viper.Set("sitemap.path", t.TempDir()+"/sitemap.xml")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	raw, err := db.DB()
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(db))
	database.C = db

	return NewServer()
}

func makeAccount(t *testing.T) models.Account {
	t.Helper()

	hash, err := services.HashPassword("secret")
	require.NoError(t, err)

	author := models.Account{
		Name:     "erin",
		Email:    "erin@example.com",
		Password: hash,
		IsAdmin:  true,
	}
	require.NoError(t, database.C.Create(&author).Error)

	return author
}

func publishArticle(t *testing.T, author models.Account, draft services.ArticleDraft) models.Article {
	t.Helper()

	draft.Published = true
	if len(draft.Content) == 0 {
		draft.Content = "<p>Body text for " + draft.Title + ".</p>"
	}

	item, err := services.NewArticle(author, draft)
	require.NoError(t, err)

	return item
}

func makePublishedArticle(t *testing.T, title string) string {
	t.Helper()

	author := makeAccount(t)
	return publishArticle(t, author, services.ArticleDraft{Title: title}).Alias
}

func TestIndexRenders(t *testing.T) {
	app := setupApp(t)
	makePublishedArticle(t, "First Post")

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "First Post")
}

func TestArticlePage(t *testing.T) {
	app := setupApp(t)
	alias := makePublishedArticle(t, "Deep Dive")

	resp, err := app.Test(httptest.NewRequest("GET", "/blog/"+alias, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Deep Dive")

	resp, err = app.Test(httptest.NewRequest("GET", "/blog/no-such-post", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategoryAndTagPages(t *testing.T) {
	app := setupApp(t)
	author := makeAccount(t)

	category, err := services.NewCategory("Engineering", "")
	require.NoError(t, err)

	publishArticle(t, author, services.ArticleDraft{
		Title:      "Join Story",
		CategoryID: &category.ID,
		NewTags:    "go",
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/category/engineering", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Join Story")

	resp, err = app.Test(httptest.NewRequest("GET", "/tag/go", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Join Story")

	resp, err = app.Test(httptest.NewRequest("GET", "/tag/no-such-tag", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCachedPageServedUntilFlush(t *testing.T) {
	app := setupApp(t)
	author := makeAccount(t)

	require.NoError(t, cache.NewStore())
	t.Cleanup(func() {
		cache.Flush()
		cache.R = nil
		cache.S = nil
	})

	publishArticle(t, author, services.ArticleDraft{Title: "First Post"})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	first, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(first), "First Post")

	// The middleware stores the page after responding; ristretto applies
	// the write asynchronously.
	cache.R.Wait()

	publishArticle(t, author, services.ArticleDraft{Title: "Second Post"})

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cached, _ := io.ReadAll(resp.Body)
	assert.Equal(t, first, cached)
	assert.NotContains(t, string(cached), "Second Post")

	cache.Flush()

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	fresh, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(fresh), "Second Post")
}

func TestSearchRedirectsWithoutQuery(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=%20%20", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestAdminAreaRequiresAdmin(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/articles", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginPageRenders(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "csrf_token")
}

func TestLoginRejectedWithoutCsrfToken(t *testing.T) {
	app := setupApp(t)

	form := url.Values{"username": {"admin"}, "password": {"adminpassword"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestRobotsSubstitutesSiteURL(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/robots.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "https://blog.example.com/sitemap.xml")
	assert.NotContains(t, string(body), "{{site_url}}")
}

func TestSitemapServedAndRegenerated(t *testing.T) {
	app := setupApp(t)
	alias := makePublishedArticle(t, "Mapped Post")

	resp, err := app.Test(httptest.NewRequest("GET", "/sitemap.xml", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "/blog/"+alias)
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/definitely-missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Page Not Found")
}
