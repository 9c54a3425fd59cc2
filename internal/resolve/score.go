package resolve

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer measures the similarity of two folded strings in [0,1].
// Identical strings must score 1.
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(a, b string) float64

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b string) float64 { return f(a, b) }

// EditDistance scores 1 - levenshtein(a, b) / max(len(a), len(b)),
// counting runes.
type EditDistance struct{}

// Score implements Scorer.
func (EditDistance) Score(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}
