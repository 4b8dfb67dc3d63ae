package lexicon

import (
	"strings"
	"unicode"
)

// InsertSpacesAroundPunctuation pads punctuation with spaces so that the
// space-only tokenizer sees "hi!" as "hi" and "!". Apostrophes between two
// letters are left alone to keep contractions like "it's" whole.
func InsertSpacesAroundPunctuation(text string) string {
	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text) + 8)
	for i, r := range runes {
		if !unicode.IsPunct(r) || isInnerApostrophe(runes, i) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte(' ')
		sb.WriteRune(r)
		sb.WriteByte(' ')
	}
	return sb.String()
}

func isInnerApostrophe(runes []rune, i int) bool {
	if runes[i] != '\'' && runes[i] != '’' {
		return false
	}
	return i > 0 && i < len(runes)-1 &&
		unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}
