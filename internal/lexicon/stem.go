package lexicon

import "strings"

// suffixRule strips a fixed suffix. minLen guards rules that must not fire
// on very short words.
type suffixRule struct {
	suffix string
	minLen int
}

// stemRules is evaluated in order; the first matching rule wins and no
// further rules are tried. Order matters: "ness" and "ions" words end in
// "s" and are caught by the "s" rule first.
var stemRules = []suffixRule{
	{suffix: "ing"},
	{suffix: "ed"},
	{suffix: "es"},
	{suffix: "s", minLen: 2},
	{suffix: "ly"},
	{suffix: "ment"},
	{suffix: "ness"},
	{suffix: "tion"},
	{suffix: "ions"},
	{suffix: "al"},
	{suffix: "er"},
	{suffix: "est"},
	{suffix: "ful"},
}

// Stem removes the first matching suffix from word.
//
// This is blind suffix stripping, not a linguistic stemmer: "sing" becomes
// "s" and "ing" becomes "". Words with no matching suffix are returned as is.
func Stem(word string) string {
	for _, rule := range stemRules {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		if len(word) < rule.minLen {
			continue
		}
		return word[:len(word)-len(rule.suffix)]
	}
	return word
}
