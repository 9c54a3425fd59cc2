package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Play HAPPY", "play happy"},
		{"collapses whitespace", "  play \t happy\n ", "play happy"},
		{"punctuation becomes space", "play: happy, now!", "play happy now"},
		{"apostrophes join", "Don't Stop Me Now", "dont stop me now"},
		{"curly apostrophe", "Don’t Stop", "dont stop"},
		{"diacritics removed", "Beyoncé – Déjà Vu", "beyonce deja vu"},
		{"percent stripped", "volume 50%", "volume 50"},
		{"leading minus kept", "volume -5", "volume -5"},
		{"hyphen between words", "hip-hop", "hip hop"},
		{"hyphen after digit", "2-5", "2 5"},
		{"hyphen after apostrophe", "rock'-5", "rock 5"},
		{"curly apostrophe before minus", "x’-5", "x 5"},
		{"leading apostrophe minus", "'-5", "-5"},
		{"parentheses", "Yesterday (Remastered)", "yesterday remastered"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestFold_FixedPoint(t *testing.T) {
	inputs := []string{
		"Hey Spotify, PLAY Don't Stop Me Now!!",
		"--5 volume",
		"Beyoncé – Déjà Vu (Live) [2006]",
		"add  Nightfall to playlist\tWorkout",
		"ﬁne ﬁnal",
		"play rock'-5",
		"volume x’-5",
		"it's -5 ''-3",
	}
	for _, in := range inputs {
		once := Fold(in)
		assert.Equal(t, once, Fold(once), "input %q", in)
	}
}
