package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nadzzz/playcue/internal/playback"
)

var (
	playQualifierRe = regexp.MustCompile(`^(?:(?:the|my)\s+)?(artist|playlist|song|track)(?:\s+(.*))?$`)
	integerRe       = regexp.MustCompile(`(?:^|\s)(-?\d+)(?:\s|$)`)
	playlistSepRe   = regexp.MustCompile(`\bto (?:my |the )?playlist\b`)
	songMarkerRe    = regexp.MustCompile(`^(.+?)\s+(?:song|track)\s+(.+)$`)
)

var shuffleWords = map[string]bool{
	"on":       true,
	"enable":   true,
	"enabled":  true,
	"true":     true,
	"off":      false,
	"disable":  false,
	"disabled": false,
	"false":    false,
}

var repeatWords = map[string]playback.RepeatMode{
	"track":    playback.RepeatTrack,
	"song":     playback.RepeatTrack,
	"one":      playback.RepeatTrack,
	"context":  playback.RepeatContext,
	"playlist": playback.RepeatContext,
	"album":    playback.RepeatContext,
	"all":      playback.RepeatContext,
	"off":      playback.RepeatOff,
	"none":     playback.RepeatOff,
}

// Extract pulls the typed arguments for intent out of span. Failures are
// returned as *playback.Failure.
func Extract(intent playback.Intent, span string) (playback.Arguments, error) {
	span = strings.TrimSpace(span)

	switch intent {
	case playback.IntentPlay:
		return extractPlay(span)
	case playback.IntentSetVolume:
		return extractVolume(span)
	case playback.IntentSetShuffle:
		word := trimLeadingWords(span, "to", "mode")
		on, ok := shuffleWords[word]
		if !ok {
			return playback.Arguments{}, playback.Fail(playback.FailureInvalidEnumValue, "Say 'shuffle on' or 'shuffle off'")
		}
		return playback.Arguments{Shuffle: &on}, nil
	case playback.IntentSetRepeat:
		word := trimLeadingWords(span, "to", "mode", "the", "this")
		mode, ok := repeatWords[word]
		if !ok {
			return playback.Arguments{}, playback.Fail(playback.FailureInvalidEnumValue, "Repeat mode must be 'track', 'context', or 'off'")
		}
		return playback.Arguments{Repeat: mode}, nil
	case playback.IntentAddToPlaylist:
		return extractAddToPlaylist(span)
	case playback.IntentAddToQueue:
		if span == "" {
			return playback.Arguments{}, playback.Fail(playback.FailureEmptyName, "Please specify a song to queue")
		}
		return playback.Arguments{Kind: playback.KindSong, Name: span}, nil
	case playback.IntentCreatePlaylist:
		if span == "" {
			return playback.Arguments{}, playback.Fail(playback.FailureEmptyName, "Please specify a playlist name")
		}
		return playback.Arguments{Kind: playback.KindPlaylist, Name: span}, nil
	}

	// Pause, Resume, Skip and Previous take no arguments.
	return playback.Arguments{}, nil
}

func extractPlay(span string) (playback.Arguments, error) {
	args := playback.Arguments{Kind: playback.KindSong, Name: span}
	if m := playQualifierRe.FindStringSubmatch(span); m != nil {
		args.Name = strings.TrimSpace(m[2])
		switch m[1] {
		case "artist":
			args.Kind = playback.KindArtist
		case "playlist":
			args.Kind = playback.KindPlaylist
		}
	}
	if args.Name == "" {
		return playback.Arguments{}, playback.Fail(playback.FailureEmptyName, "Please specify what to play.")
	}
	return args, nil
}

func extractVolume(span string) (playback.Arguments, error) {
	m := integerRe.FindStringSubmatch(span)
	if m == nil {
		return playback.Arguments{}, playback.Fail(playback.FailureNotANumber, "Please specify volume level (0-100)")
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return playback.Arguments{}, playback.Fail(playback.FailureNotANumber, "Please specify volume level (0-100)").WithCause(err)
	}
	return playback.Arguments{Level: &level}, nil
}

// extractAddToPlaylist splits "song to playlist name". The inverted
// "to playlist name song title" ordering is accepted as well.
func extractAddToPlaylist(span string) (playback.Arguments, error) {
	loc := playlistSepRe.FindStringIndex(span)
	if loc == nil {
		return playback.Arguments{}, playback.Fail(playback.FailureMissingSeparator, "Format: 'add [song] to playlist [name]'")
	}
	song := strings.TrimSpace(span[:loc[0]])
	list := strings.TrimSpace(span[loc[1]:])

	if song == "" {
		if m := songMarkerRe.FindStringSubmatch(list); m != nil {
			list, song = m[1], m[2]
		}
	}

	switch {
	case song == "":
		return playback.Arguments{}, playback.Fail(playback.FailureEmptyName, "Please specify a song to add")
	case list == "":
		return playback.Arguments{}, playback.Fail(playback.FailureEmptyName, "Please specify a playlist name")
	}
	return playback.Arguments{Kind: playback.KindSong, Name: song, Playlist: list}, nil
}

// trimLeadingWords drops any of words from the start of span.
func trimLeadingWords(span string, words ...string) string {
	fields := strings.Fields(span)
	for len(fields) > 1 {
		drop := false
		for _, w := range words {
			if fields[0] == w {
				drop = true
				break
			}
		}
		if !drop {
			break
		}
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}
