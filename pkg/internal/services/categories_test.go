package services

import (
	"testing"

	"github.com/amberglow/quill/pkg/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategoryGuardsAssociatedArticles(t *testing.T) {
	setupDatabase(t)
	author := makeAuthor(t, "erin")

	category, err := NewCategory("Engineering", "Posts about engineering.")
	require.NoError(t, err)
	assert.Equal(t, "engineering", category.Alias)

	_, err = NewArticle(author, ArticleDraft{
		Title:      "Inside",
		Content:    "Body.",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	err = DeleteCategory(category)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	count, err := CountCategory()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCategoryWhenEmpty(t *testing.T) {
	setupDatabase(t)

	category, err := NewCategory("Scratch", "")
	require.NoError(t, err)

	require.NoError(t, DeleteCategory(category))

	count, err := CountCategory()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestEditCategoryRegeneratesAlias(t *testing.T) {
	setupDatabase(t)

	category, err := NewCategory("Old Name", "")
	require.NoError(t, err)

	category, err = EditCategory(category, "Brand New Name", "Updated.")
	require.NoError(t, err)
	assert.Equal(t, "brand-new-name", category.Alias)

	fresh, err := GetCategory("brand-new-name")
	require.NoError(t, err)
	assert.Equal(t, "Brand New Name", fresh.Name)
}

func TestDeleteTagClearsAssociations(t *testing.T) {
	setupDatabase(t)
	author := makeAuthor(t, "erin")

	item, err := NewArticle(author, ArticleDraft{Title: "Tagged", Content: "Body.", NewTags: "go"})
	require.NoError(t, err)

	tag, err := GetTag("go")
	require.NoError(t, err)
	require.NoError(t, DeleteTag(tag))

	fresh, err := GetArticle(database.C, item.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh.Tags)
}

func TestGetTagOrCreateReusesExisting(t *testing.T) {
	setupDatabase(t)

	first, err := GetTagOrCreate(database.C, "golang")
	require.NoError(t, err)

	second, err := GetTagOrCreate(database.C, " golang ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := CountTag()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
