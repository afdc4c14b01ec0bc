package components

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToCamelCase turns a space separated phrase into camelCase.
// "Save the file" becomes "saveTheFile".
func ToCamelCase(phrase string) string {
	words := strings.Split(phrase, " ")
	for i, word := range words {
		lower := strings.ToLower(word)
		if i == 0 || lower == "" {
			words[i] = lower
			continue
		}
		first, size := utf8.DecodeRuneInString(lower)
		words[i] = string(unicode.ToUpper(first)) + lower[size:]
	}
	return strings.Join(words, "")
}

var upper = regexp.MustCompile(`([A-Z])`)

// ToPhrase inserts a space before every upper-case letter.
// "saveTheFile" becomes "save The File".
func ToPhrase(camelCase string) string {
	return upper.ReplaceAllString(camelCase, " $1")
}
