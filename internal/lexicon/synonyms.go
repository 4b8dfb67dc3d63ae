package lexicon

// DefaultSynonyms maps a word to its canonical form. Lookups are one hop:
// "howdy" maps to "hello" but is not followed on to "hi".
//
// Canonical forms may contain spaces ("good morning"); they are kept as a
// single term.
var DefaultSynonyms = map[string]string{
	"favorite":  "favourite",
	"hello":     "hi",
	"hi":        "hey",
	"howdy":     "hello",
	"morning":   "good morning",
	"afternoon": "good afternoon",
	"evening":   "good evening",
	"music":     "tunes",
	"movies":    "films",
	"books":     "literature",
	"pet":       "animal",
	"weather":   "climate",
	"weekend":   "saturday sunday",
	"happy":     "joyful",
	"great":     "fine",
	"sad":       "unhappy",
	"eat":       "consume",
	"drink":     "sip",
	"travel":    "journey",
	"fun":       "entertainment",
	"exercise":  "workout",
	"sport":     "athletics",
	"run":       "jog",
	"walk":      "stroll",
	"chat":      "talk",
	"speak":     "converse",
	"help":      "assist",
}

// EquivalentWord returns the canonical synonym of word, or word itself when
// the default dictionary has no entry for it.
func EquivalentWord(word string) string {
	return Default.EquivalentWord(word)
}
