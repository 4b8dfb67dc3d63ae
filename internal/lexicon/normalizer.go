// Package lexicon turns raw prompt text into canonical terms.
//
// Every token goes through the same fixed pipeline:
//
//	lowercase -> trim -> stem -> synonym -> stop-word/empty filter
//
// The order is significant. Stemming before case folding would miss
// uppercase suffixes, and synonyms are looked up on the stemmed form, so a
// dictionary key that only exists in an inflected form ("movies") never
// matches during tokenization. It still matters for AugmentWithSynonyms,
// which works on raw words.
package lexicon

import "strings"

// TermCounts maps a normalized term to its number of occurrences.
type TermCounts map[string]int

// Normalizer holds the stop-word and synonym tables used to canonicalize text.
type Normalizer struct {
	stopWords map[string]bool
	synonyms  map[string]string
}

// Default is the normalizer built from DefaultStopWords and DefaultSynonyms.
var Default = NewNormalizer(DefaultStopWords, DefaultSynonyms)

// NewNormalizer creates a normalizer from a stop-word list and a synonym
// table. Both are copied.
func NewNormalizer(stopWords []string, synonyms map[string]string) *Normalizer {
	n := &Normalizer{
		stopWords: make(map[string]bool, len(stopWords)),
		synonyms:  make(map[string]string, len(synonyms)),
	}
	for _, w := range stopWords {
		n.stopWords[w] = true
	}
	for k, v := range synonyms {
		n.synonyms[k] = v
	}
	return n
}

// IsStopWord reports whether word is a stop word.
func (n *Normalizer) IsStopWord(word string) bool {
	return n.stopWords[word]
}

// EquivalentWord returns the synonym of word, or word when there is none.
func (n *Normalizer) EquivalentWord(word string) string {
	if eq, ok := n.synonyms[word]; ok {
		return eq
	}
	return word
}

// Term normalizes a single token. It returns "" when the token is dropped.
func (n *Normalizer) Term(token string) string {
	term := strings.ToLower(token)
	term = strings.TrimSpace(term)
	term = Stem(term)
	term = n.EquivalentWord(term)
	if term == "" || n.IsStopWord(term) {
		return ""
	}
	return term
}

// TokenizeAndStem splits text on single spaces and counts the normalized
// terms. Runs of spaces yield empty tokens, which are skipped. Punctuation
// is not stripped; see InsertSpacesAroundPunctuation.
func (n *Normalizer) TokenizeAndStem(text string) TermCounts {
	freq := make(TermCounts)
	for _, token := range splitWords(text) {
		if term := n.Term(token); term != "" {
			freq[term]++
		}
	}
	return freq
}

// TokenizeAndStem normalizes text with the default normalizer.
func TokenizeAndStem(text string) TermCounts {
	return Default.TokenizeAndStem(text)
}

// splitWords splits on the space character only, dropping empty pieces.
func splitWords(text string) []string {
	parts := strings.Split(text, " ")
	words := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, p)
	}
	return words
}
