package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold reduces s to a comparison key: Turkish-aware lower casing, diacritics
// removed, punctuation turned into spaces and runs of spaces collapsed.
// "Güven_Yüzdesi", "GUVEN YUZDESI" and "güven-yüzdesi" all fold to
// "guven yuzdesi".
func Fold(s string) string {
	// Casers and transformers keep state, so they are built per call.
	lower := cases.Lower(language.Turkish).String(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lower)
	if err != nil {
		stripped = lower
	}

	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == 'ı':
			return 'i'
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		default:
			return ' '
		}
	}, stripped)

	return strings.Join(strings.Fields(mapped), " ")
}

// foldAll folds every entry of list, skipping those that fold to "".
func foldAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if f := Fold(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}
