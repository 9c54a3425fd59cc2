package interpreter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/playcue/internal/playback"
)

func TestExtract_Play(t *testing.T) {
	tests := []struct {
		span string
		kind playback.TargetKind
		name string
	}{
		{"happy", playback.KindSong, "happy"},
		{"artist daft punk", playback.KindArtist, "daft punk"},
		{"the artist daft punk", playback.KindArtist, "daft punk"},
		{"playlist workout", playback.KindPlaylist, "workout"},
		{"my playlist workout", playback.KindPlaylist, "workout"},
		{"song yesterday", playback.KindSong, "yesterday"},
		{"track happy", playback.KindSong, "happy"},
		{"the beatles", playback.KindSong, "the beatles"},
		{"artistic license", playback.KindSong, "artistic license"},
	}

	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			args, err := Extract(playback.IntentPlay, tt.span)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, args.Kind)
			assert.Equal(t, tt.name, args.Name)
		})
	}
}

func TestExtract_Volume(t *testing.T) {
	tests := []struct {
		span  string
		level int
	}{
		{"50", 50},
		{"to 30", 30},
		{"150", 150},
		{"-5", -5},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			args, err := Extract(playback.IntentSetVolume, tt.span)
			require.NoError(t, err)
			require.NotNil(t, args.Level)
			assert.Equal(t, tt.level, *args.Level)
		})
	}
}

func TestExtract_VolumeNotANumber(t *testing.T) {
	for _, span := range []string{"", "loud", "50abc", "99999999999999999999999"} {
		t.Run(span, func(t *testing.T) {
			_, err := Extract(playback.IntentSetVolume, span)
			assertFailure(t, err, playback.FailureNotANumber)
		})
	}
}

func TestExtract_Shuffle(t *testing.T) {
	on, err := Extract(playback.IntentSetShuffle, "on")
	require.NoError(t, err)
	assert.True(t, *on.Shuffle)

	off, err := Extract(playback.IntentSetShuffle, "to off")
	require.NoError(t, err)
	assert.False(t, *off.Shuffle)

	_, err = Extract(playback.IntentSetShuffle, "maybe")
	assertFailure(t, err, playback.FailureInvalidEnumValue)

	_, err = Extract(playback.IntentSetShuffle, "")
	assertFailure(t, err, playback.FailureInvalidEnumValue)
}

func TestExtract_Repeat(t *testing.T) {
	tests := []struct {
		span string
		mode playback.RepeatMode
	}{
		{"track", playback.RepeatTrack},
		{"this song", playback.RepeatTrack},
		{"context", playback.RepeatContext},
		{"mode off", playback.RepeatOff},
	}
	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			args, err := Extract(playback.IntentSetRepeat, tt.span)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, args.Repeat)
		})
	}

	_, err := Extract(playback.IntentSetRepeat, "forever")
	assertFailure(t, err, playback.FailureInvalidEnumValue)
}

func TestExtract_AddToPlaylist(t *testing.T) {
	tests := []struct {
		span     string
		song     string
		playlist string
	}{
		{"nightfall to playlist workout", "nightfall", "workout"},
		{"nightfall to my playlist workout", "nightfall", "workout"},
		{"bohemian rhapsody to the playlist road trip", "bohemian rhapsody", "road trip"},
		{"to playlist workout song nightfall", "nightfall", "workout"},
	}
	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			args, err := Extract(playback.IntentAddToPlaylist, tt.span)
			require.NoError(t, err)
			assert.Equal(t, tt.song, args.Name)
			assert.Equal(t, tt.playlist, args.Playlist)
		})
	}
}

func TestExtract_AddToPlaylistErrors(t *testing.T) {
	_, err := Extract(playback.IntentAddToPlaylist, "nightfall workout")
	assertFailure(t, err, playback.FailureMissingSeparator)

	_, err = Extract(playback.IntentAddToPlaylist, "to playlist workout")
	assertFailure(t, err, playback.FailureEmptyName)

	_, err = Extract(playback.IntentAddToPlaylist, "nightfall to playlist")
	assertFailure(t, err, playback.FailureEmptyName)
}

func TestExtract_CreatePlaylist(t *testing.T) {
	args, err := Extract(playback.IntentCreatePlaylist, "  road trip ")
	require.NoError(t, err)
	assert.Equal(t, "road trip", args.Name)

	_, err = Extract(playback.IntentCreatePlaylist, "   ")
	assertFailure(t, err, playback.FailureEmptyName)
}

func TestExtract_NoArguments(t *testing.T) {
	for _, intent := range []playback.Intent{
		playback.IntentPause, playback.IntentResume, playback.IntentSkip, playback.IntentPrevious,
	} {
		args, err := Extract(intent, "whatever follows")
		require.NoError(t, err)
		assert.Equal(t, playback.Arguments{}, args)
	}
}

func assertFailure(t *testing.T, err error, kind playback.FailureKind) {
	t.Helper()
	var f *playback.Failure
	require.True(t, errors.As(err, &f), "expected *playback.Failure, got %v", err)
	assert.Equal(t, kind, f.Kind)
}
