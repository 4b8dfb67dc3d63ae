package lexicon

// DefaultStopWords lists the function words dropped during tokenization.
// Articles, pronouns, prepositions and auxiliaries carry little signal for
// matching short conversational prompts.
var DefaultStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any", "as", "at", "be", "because",
	"been", "before", "being", "below", "between", "both", "but", "by", "can", "cannot", "could", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had", "has", "have", "having", "he", "her", "here", "hers",
	"him", "his", "i", "if", "in", "into", "is", "it", "its", "it's", "me", "more", "most", "my", "no", "nor", "not",
	"of", "off", "on", "once", "only", "or", "other", "our", "out", "over", "own", "same", "she", "so", "some", "such", "than",
	"that", "the", "their", "theirs", "them", "then", "there", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "us", "very", "was", "we", "were", "when", "which", "while", "whom", "why", "with",
	"you", "your",
}

// IsStopWord reports whether word is in the default stop-word set.
// The check is exact: callers lowercase first.
func IsStopWord(word string) bool {
	return Default.IsStopWord(word)
}
