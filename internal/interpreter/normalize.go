package interpreter

import (
	"strings"

	"github.com/nadzzz/playcue/internal/textnorm"
)

// DefaultFillerWords are stripped from the edges of every command.
var DefaultFillerWords = []string{"please", "spotify", "hey", "ok", "okay"}

// Normalizer canonicalizes raw command text.
type Normalizer struct {
	fillers map[string]struct{}
}

// NewNormalizer creates a Normalizer that strips the given single-word
// fillers. A nil slice selects DefaultFillerWords.
func NewNormalizer(fillers []string) *Normalizer {
	if fillers == nil {
		fillers = DefaultFillerWords
	}
	set := make(map[string]struct{}, len(fillers))
	for _, w := range fillers {
		if w = textnorm.Fold(w); w != "" {
			set[w] = struct{}{}
		}
	}
	return &Normalizer{fillers: set}
}

// Normalize folds text and strips filler words from its leading and
// trailing edges, so "Hey Spotify, play Hey Jude please" becomes
// "play hey jude". It never fails and is a fixed point on its own output.
func (n *Normalizer) Normalize(text string) string {
	words := strings.Fields(textnorm.Fold(text))
	for len(words) > 0 && n.isFiller(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && n.isFiller(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func (n *Normalizer) isFiller(word string) bool {
	_, ok := n.fillers[word]
	return ok
}
