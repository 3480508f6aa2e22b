package orghierarchy

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var upper = cases.Upper(language.Und)

// NormalizeName folds case, accents and inner whitespace so that
// "Administración" and "ADMINISTRACION " compare equal.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return upper.String(strings.Join(strings.Fields(folded), " "))
}

func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
