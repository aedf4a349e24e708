package storage

import "strings"

// Stop words excluded from the lexical index and from query terms
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// Tokenize splits text into index terms: words are lowercased, edge
// punctuation is trimmed, and stop words are removed. This is the derived
// lexical representation of chunk text; the same function is applied to
// query text so index and query terms always agree.
func Tokenize(text string) []string {
	words := strings.Fields(text)
	terms := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}|"))

		if cleaned != "" && !stopWords[cleaned] {
			terms = append(terms, cleaned)
		}
	}

	return terms
}

// TermFrequencies returns the occurrence count of each term in the text.
func TermFrequencies(text string) map[string]int {
	terms := Tokenize(text)
	if len(terms) == 0 {
		return nil
	}

	frequencies := make(map[string]int, len(terms))
	for _, term := range terms {
		frequencies[term]++
	}
	return frequencies
}
