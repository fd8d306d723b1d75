package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExcerptStripsMarkup(t *testing.T) {
	excerpt := ExtractExcerpt("<p>Hello   <b>world</b></p>", 150)
	assert.Equal(t, "Hello world", excerpt)
}

func TestExtractExcerptTruncatesOnWordBoundary(t *testing.T) {
	excerpt := ExtractExcerpt("alpha beta gamma delta", 12)

	assert.True(t, strings.HasSuffix(excerpt, "..."))
	assert.Equal(t, "alpha beta...", excerpt)
}

func TestExtractMetaKeywordsDropsStopWords(t *testing.T) {
	keywords := ExtractMetaKeywords(
		"The cache is the heart of the cache layer. Cache invalidation is hard.", 10)

	assert.Contains(t, keywords, "cache")
	assert.Contains(t, keywords, "invalidation")
	assert.NotContains(t, strings.Split(keywords, ", "), "the")
	assert.NotContains(t, strings.Split(keywords, ", "), "is")
}

func TestExtractMetaKeywordsRanksByFrequency(t *testing.T) {
	keywords := ExtractMetaKeywords("gorm gorm gorm fiber fiber zerolog", 2)
	assert.Equal(t, "gorm, fiber", keywords)
}

func TestExtractMetaKeywordsSkipsCodeBlocks(t *testing.T) {
	keywords := ExtractMetaKeywords("```\nxyzzyvariable\n```\ndatabase migrations", 10)
	assert.NotContains(t, keywords, "xyzzyvariable")
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage("This article walks through building a small web service."))
	assert.Equal(t, "en", DetectLanguage(""))
}
