// Package textnorm folds text into the canonical form used for matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, removes diacritics and punctuation, and collapses
// whitespace. Apostrophes join their neighbours ("don't" -> "dont") and a
// minus sign that starts a number is kept. Fold(Fold(s)) == Fold(s).
func Fold(s string) string {
	// Transformers and casers are stateful; build them per call.
	strip := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(strip, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)

	rs := []rune(folded)
	var b strings.Builder
	b.Grow(len(folded))
	for i, r := range rs {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case isApostrophe(r):
		case r == '-' && startsNumber(rs, i):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// startsNumber reports whether the minus at rs[i] begins a token and is
// followed by a digit. Apostrophes are dropped from the output, so the
// token boundary is judged against the rune before them.
func startsNumber(rs []rune, i int) bool {
	if i+1 >= len(rs) || !unicode.IsDigit(rs[i+1]) {
		return false
	}
	j := i - 1
	for j >= 0 && isApostrophe(rs[j]) {
		j--
	}
	if j < 0 {
		return true
	}
	prev := rs[j]
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
