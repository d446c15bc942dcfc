// Package normalize cleans up free-text descriptions coming out of the
// extraction collaborator.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Connective words kept lowercase unless they open the phrase.
var smallWords = map[string]struct{}{
	"a": {}, "o": {}, "e": {}, "de": {}, "do": {}, "da": {},
	"dos": {}, "das": {}, "em": {}, "no": {}, "na": {},
	"por": {}, "para": {}, "com": {}, "s/": {},
}

// TitleCase title-cases a pt-BR description, keeping connective words
// lowercase. Hyphenated compounds have each part capitalized.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	caser := cases.Title(language.BrazilianPortuguese)
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if strings.Contains(w, "-") {
			parts := strings.Split(w, "-")
			for j, p := range parts {
				parts[j] = caser.String(p)
			}
			words[i] = strings.Join(parts, "-")
			continue
		}
		if _, small := smallWords[w]; small && i > 0 {
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
