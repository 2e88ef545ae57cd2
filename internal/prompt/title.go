package prompt

import (
	"regexp"
	"strings"

	"github.com/padraigk/florin/internal/models"
)

const (
	titleMaxLen     = 30
	titleTruncateAt = 27
	titleMaxWords   = 4
	minTokenLen     = 3
)

var nonWord = regexp.MustCompile(`[^a-z0-9_]+`)

// stopWords are common English function words excluded when deriving a
// thread title from the first user message.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "any",
		"can", "had", "has", "have", "her", "him", "his", "how", "its",
		"may", "our", "out", "she", "their", "them", "then", "there",
		"these", "they", "this", "that", "was", "were", "what", "when",
		"where", "which", "while", "who", "whom", "why", "will", "with",
		"would", "could", "should", "about", "above", "after", "again",
		"against", "before", "being", "below", "between", "both", "does",
		"doing", "down", "during", "each", "from", "further", "here",
		"into", "just", "more", "most", "once", "only", "other", "over",
		"same", "some", "such", "than", "too", "under", "until", "very",
		"your", "yours", "please", "want", "need", "tell",
	} {
		stopWords[w] = struct{}{}
	}
}

// DeriveTitle builds a short thread title from the first user message.
// Stop words and tokens shorter than three characters are dropped, the
// first four surviving tokens are capitalized and joined, and the result
// is truncated with an ellipsis when it runs long. If nothing survives the
// filter the placeholder title is returned unchanged.
func DeriveTitle(message string) string {
	normalized := nonWord.ReplaceAllString(strings.ToLower(message), " ")

	words := make([]string, 0, titleMaxWords)
	for _, token := range strings.Fields(normalized) {
		if len(token) < minTokenLen {
			continue
		}
		if _, skip := stopWords[token]; skip {
			continue
		}
		words = append(words, capitalize(token))
		if len(words) == titleMaxWords {
			break
		}
	}

	if len(words) == 0 {
		return models.DefaultThreadTitle
	}

	title := strings.Join(words, " ")
	if len(title) > titleMaxLen {
		title = title[:titleTruncateAt] + "..."
	}
	return title
}

func capitalize(word string) string {
	return strings.ToUpper(word[:1]) + word[1:]
}
