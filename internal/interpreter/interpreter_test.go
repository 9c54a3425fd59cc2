package interpreter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/playback"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"Play Happy", "play happy"},
		{"  play   happy  ", "play happy"},
		{"Hey Spotify, play Hey Jude please", "play hey jude"},
		{"please pause", "pause"},
		{"OK skip", "skip"},
		{"Spotify", ""},
		{"", ""},
		{"Volume 50%!", "volume 50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalize_FixedPoint(t *testing.T) {
	n := NewNormalizer(nil)
	inputs := []string{
		"Hey Spotify, PLAY Don't Stop Me Now please",
		"add Nightfall to playlist Workout",
		"okay okay volume -5",
		"please",
		"Beyoncé – Déjà Vu",
		"play rock'-5",
		"volume x’-5",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), in)
	}
}

func TestNormalize_CustomFillers(t *testing.T) {
	n := NewNormalizer([]string{"Yo", "Computer"})
	assert.Equal(t, "play please", n.Normalize("computer play please yo"))
}

func TestMatcher(t *testing.T) {
	m := NewMatcher(DefaultRules())

	tests := []struct {
		text   string
		intent playback.Intent
		span   string
	}{
		{"play happy", playback.IntentPlay, "happy"},
		{"play", playback.IntentPlay, ""},
		{"pause", playback.IntentPause, ""},
		{"stop", playback.IntentPause, ""},
		{"resume", playback.IntentResume, ""},
		{"continue", playback.IntentResume, ""},
		{"skip", playback.IntentSkip, ""},
		{"next song", playback.IntentSkip, ""},
		{"previous", playback.IntentPrevious, ""},
		{"go back", playback.IntentPrevious, ""},
		{"volume 50", playback.IntentSetVolume, "50"},
		{"set the volume to 30", playback.IntentSetVolume, "30"},
		{"shuffle on", playback.IntentSetShuffle, "on"},
		{"turn on shuffle", playback.IntentSetShuffle, "on"},
		{"turn shuffle off", playback.IntentSetShuffle, "off"},
		{"repeat track", playback.IntentSetRepeat, "track"},
		{"create playlist road trip", playback.IntentCreatePlaylist, "road trip"},
		{"make a playlist chill", playback.IntentCreatePlaylist, "chill"},
		{"add nightfall to playlist workout", playback.IntentAddToPlaylist, "nightfall to playlist workout"},
		{"add nightfall to my playlist workout", playback.IntentAddToPlaylist, "nightfall to my playlist workout"},
		{"add nightfall", playback.IntentAddToPlaylist, "nightfall"},
		{"add happy to the queue", playback.IntentAddToQueue, "happy"},
		{"queue up bohemian rhapsody", playback.IntentAddToQueue, "bohemian rhapsody"},
		{"sing me a song", playback.IntentUnknown, "sing me a song"},
		{"player one", playback.IntentUnknown, "player one"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			intent, span := m.Match(tt.text)
			assert.Equal(t, tt.intent, intent)
			assert.Equal(t, tt.span, span)
		})
	}
}

func TestMatcher_FirstRuleWins(t *testing.T) {
	m := NewMatcher([]Rule{
		pattern(playback.IntentPause, `^stop(?:\s+(?P<span>.*))?$`),
		leading(playback.IntentSkip, "stop"),
	})
	intent, span := m.Match("stop now")
	assert.Equal(t, playback.IntentPause, intent)
	assert.Equal(t, "now", span)
}

func TestMatcher_SpecificBeforeGeneric(t *testing.T) {
	rules := DefaultRules()

	index := func(intent playback.Intent, sample string) int {
		for i, r := range rules {
			if r.Intent == intent && r.Pattern.MatchString(sample) {
				return i
			}
		}
		return -1
	}

	// "add ... to playlist" must be tried before the bare "add" rule.
	specific := index(playback.IntentAddToPlaylist, "add x to playlist y")
	generic := index(playback.IntentAddToPlaylist, "add x")
	require.GreaterOrEqual(t, specific, 0)
	assert.Less(t, specific, generic)

	queue := index(playback.IntentAddToQueue, "add x to queue")
	assert.Less(t, queue, generic)
}

func TestUsage(t *testing.T) {
	assert.Contains(t, Usage(), "add [song] to playlist [name]")
	assert.NotEmpty(t, Usage())
}

func TestInterpret(t *testing.T) {
	i := New(config.InterpreterConfig{})

	got, err := i.Interpret("Hey Spotify, play the artist Daft Punk please")
	require.NoError(t, err)
	assert.Equal(t, "play the artist daft punk", got.Normalized)
	assert.Equal(t, playback.IntentPlay, got.Intent)
	assert.Equal(t, playback.KindArtist, got.Args.Kind)
	assert.Equal(t, "daft punk", got.Args.Name)
}

func TestInterpret_Failures(t *testing.T) {
	i := New(config.InterpreterConfig{})

	tests := []struct {
		text string
		kind playback.FailureKind
	}{
		{"", playback.FailureUnrecognizedCommand},
		{"please", playback.FailureUnrecognizedCommand},
		{"what is the weather", playback.FailureUnrecognizedCommand},
		{"volume loud", playback.FailureNotANumber},
		{"shuffle maybe", playback.FailureInvalidEnumValue},
		{"add nightfall", playback.FailureMissingSeparator},
		{"create playlist", playback.FailureEmptyName},
		{"play", playback.FailureEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := i.Interpret(tt.text)
			require.NotNil(t, got)

			var f *playback.Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.kind, f.Kind)
		})
	}
}
