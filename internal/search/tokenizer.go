package search

import (
	"strings"
	"unicode"
)

// minTokenLength filters out very short noise words
const minTokenLength = 3

// Tokenize splits text into normalized tokens: lowercase words with
// punctuation stripped, short tokens and stop words dropped. The same
// pipeline runs at index build and at query time; retrieval quality depends
// on the two never diverging.
func Tokenize(text string) []string {
	f := func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	}
	fields := strings.FieldsFunc(text, f)
	var tokens []string
	for _, field := range fields {
		if len(field) < minTokenLength {
			continue
		}
		token := strings.ToLower(field)
		if _, isStop := stopwords[token]; isStop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	words := []string{
		"the", "and", "but", "for", "with", "are", "was", "were", "been",
		"being", "this", "that", "these", "those", "from", "over", "under",
		"again", "further", "than", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now", "not", "you", "your", "they", "their", "what",
		"which", "who", "how", "has", "have", "had", "its", "all", "each",
		"more", "most", "other", "some", "any", "only", "when", "where",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
