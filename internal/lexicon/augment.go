package lexicon

import "strings"

// AugmentWithSynonyms returns alternate phrasings of sentence, each with
// exactly one word swapped for its synonym. Words are used raw: no case
// folding, stemming or stop-word filtering. The result has one entry per
// substitutable word, in sentence order, and is empty when nothing can be
// substituted.
func (n *Normalizer) AugmentWithSynonyms(sentence string) []string {
	words := splitWords(sentence)
	for i, w := range words {
		words[i] = strings.TrimSpace(w)
	}

	var rewrites []string
	for i, word := range words {
		eq := n.EquivalentWord(word)
		if eq == word {
			continue
		}
		alt := make([]string, len(words))
		copy(alt, words)
		alt[i] = eq
		rewrites = append(rewrites, strings.Join(alt, " "))
	}
	return rewrites
}

// AugmentWithSynonyms rewrites sentence using the default dictionary.
func AugmentWithSynonyms(sentence string) []string {
	return Default.AugmentWithSynonyms(sentence)
}
