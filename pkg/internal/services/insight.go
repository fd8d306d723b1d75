package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"
)

var languageDetector = lingua.NewLanguageDetectorBuilder().
	FromLanguages(
		lingua.English,
		lingua.Russian,
		lingua.Chinese,
		lingua.Japanese,
		lingua.German,
		lingua.French,
		lingua.Spanish,
	).
	Build()

// DetectLanguage returns the ISO 639-1 code of the content's language,
// falling back to English when detection is inconclusive.
func DetectLanguage(content string) string {
	if lang, ok := languageDetector.DetectLanguageOf(content); ok {
		return strings.ToLower(lang.IsoCode639_1().String())
	}
	return "en"
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^<]+?>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	codeBlockPattern  = regexp.MustCompile("(?s)```.*?```")
	markdownPattern   = regexp.MustCompile("[#*_~`]")
	wordPattern       = regexp.MustCompile(`\b[a-zA-Z][a-zA-Z0-9]{2,}\b`)
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "in": {}, "to": {}, "of": {}, "that": {},
	"this": {}, "with": {}, "for": {}, "are": {}, "on": {}, "not": {},
	"be": {}, "have": {}, "has": {}, "from": {}, "by": {}, "as": {}, "at": {},
}

// ExtractExcerpt strips markup from HTML content and truncates the plain
// text on a word boundary.
func ExtractExcerpt(content string, length int) string {
	text := htmlTagPattern.ReplaceAllString(content, "")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	if len(text) <= length {
		return text
	}

	cut := text[:length]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// ExtractMetaKeywords pulls the most frequent non-trivial words out of
// markdown content as a comma-separated keyword list.
func ExtractMetaKeywords(content string, maxKeywords int) string {
	content = codeBlockPattern.ReplaceAllString(content, "")
	content = markdownPattern.ReplaceAllString(content, " ")

	var order []string
	counts := make(map[string]int)
	for _, token := range wordPattern.FindAllString(strings.ToLower(content), -1) {
		if _, ok := stopWords[token]; ok {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	// Stable sort keeps first-seen order between equally frequent words.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	return strings.Join(order, ", ")
}
