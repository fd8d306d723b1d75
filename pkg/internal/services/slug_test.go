package services

import (
	"strings"
	"testing"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/amberglow/quill/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "hello-world-again", MakeSlug("Hello World, Again!"))
	assert.Equal(t, "go-1-23-released", MakeSlug("Go 1.23 Released"))
	assert.Empty(t, MakeSlug(""))
}

func TestUniqueArticleSlugAppendsCounter(t *testing.T) {
	setupDatabase(t)
	author := makeAuthor(t, "erin")

	require.NoError(t, database.C.Create(&models.Article{
		Title:    "Hello",
		Alias:    "hello-world-again",
		AuthorID: author.ID,
	}).Error)
	require.NoError(t, database.C.Create(&models.Article{
		Title:    "Hello",
		Alias:    "hello-world-again-1",
		AuthorID: author.ID,
	}).Error)

	alias, err := UniqueArticleSlug(database.C, "hello-world-again", 0)
	require.NoError(t, err)
	assert.Equal(t, "hello-world-again-2", alias)
}

func TestUniqueArticleSlugExcludesOwnRow(t *testing.T) {
	setupDatabase(t)
	author := makeAuthor(t, "erin")

	item := models.Article{Title: "Hello", Alias: "hello", AuthorID: author.ID}
	require.NoError(t, database.C.Create(&item).Error)

	alias, err := UniqueArticleSlug(database.C, "hello", item.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", alias)
}

func TestUniqueArticleSlugFallsBackToSynthetic(t *testing.T) {
	setupDatabase(t)

	for _, base := range []string{"", "-"} {
		alias, err := UniqueArticleSlug(database.C, base, 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(alias, "post-"), "got %q", alias)
	}
}
