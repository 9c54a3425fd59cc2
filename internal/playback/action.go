package playback

import (
	"fmt"
	"strings"
)

// Volume bounds accepted by SetVolume.
const (
	MinVolume = 0
	MaxVolume = 100
)

// Action is a fully validated playback request, ready for an executor.
type Action struct {
	Intent Intent `json:"intent"`

	// ResolvedEntity is the played item (Play) or the track to add
	// (AddToPlaylist, AddToQueue).
	ResolvedEntity *ResolvedEntity `json:"resolved_entity,omitempty"`

	// Playlist is the destination of AddToPlaylist.
	Playlist *ResolvedEntity `json:"playlist,omitempty"`

	// Name is the new playlist name for CreatePlaylist.
	Name string `json:"name,omitempty"`

	NumericValue *int   `json:"numeric_value,omitempty"`
	BooleanValue *bool  `json:"boolean_value,omitempty"`
	EnumValue    string `json:"enum_value,omitempty"`
}

// Build assembles an Action from an intent, its extracted arguments and the
// resolved entities. It never clamps: out-of-domain values are rejected.
func Build(intent Intent, args Arguments, entity, playlist *ResolvedEntity) (*Action, error) {
	a := &Action{Intent: intent}

	switch intent {
	case IntentPlay, IntentAddToQueue:
		a.ResolvedEntity = entity
	case IntentAddToPlaylist:
		a.ResolvedEntity = entity
		a.Playlist = playlist
	case IntentCreatePlaylist:
		a.Name = strings.TrimSpace(args.Name)
	case IntentSetVolume:
		if args.Level != nil {
			v := *args.Level
			a.NumericValue = &v
		}
	case IntentSetShuffle:
		if args.Shuffle != nil {
			v := *args.Shuffle
			a.BooleanValue = &v
		}
	case IntentSetRepeat:
		a.EnumValue = string(args.Repeat)
	}

	if err := Validate(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that every field required by the action's intent is
// present and within its domain. Build runs it on every Action it returns.
func Validate(a *Action) error {
	switch a.Intent {
	case IntentPlay:
		if a.ResolvedEntity == nil {
			return Fail(FailureNotFound, "Nothing found to play")
		}
		switch a.ResolvedEntity.Kind {
		case KindSong, KindArtist, KindPlaylist:
		default:
			return Fail(FailureNotFound, "Nothing found to play")
		}
	case IntentPause, IntentResume, IntentSkip, IntentPrevious:
	case IntentSetVolume:
		if a.NumericValue == nil {
			return Fail(FailureNotANumber, "Please specify volume level (0-100)")
		}
		if v := *a.NumericValue; v < MinVolume || v > MaxVolume {
			return Fail(FailureOutOfRange, "Volume must be between %d and %d", MinVolume, MaxVolume)
		}
	case IntentSetShuffle:
		if a.BooleanValue == nil {
			return Fail(FailureInvalidEnumValue, "Say 'shuffle on' or 'shuffle off'")
		}
	case IntentSetRepeat:
		if !RepeatMode(a.EnumValue).Valid() {
			return Fail(FailureInvalidEnumValue, "Repeat mode must be 'track', 'context', or 'off'")
		}
	case IntentCreatePlaylist:
		if strings.TrimSpace(a.Name) == "" {
			return Fail(FailureEmptyName, "Please specify a playlist name")
		}
	case IntentAddToPlaylist:
		if a.ResolvedEntity == nil || a.ResolvedEntity.Kind != KindSong {
			return Fail(FailureNotFound, "Track not found")
		}
		if a.Playlist == nil || a.Playlist.Kind != KindPlaylist {
			return Fail(FailureNotFound, "Playlist not found")
		}
	case IntentAddToQueue:
		if a.ResolvedEntity == nil || a.ResolvedEntity.Kind != KindSong {
			return Fail(FailureNotFound, "Track not found")
		}
	default:
		return Fail(FailureUnrecognizedCommand, "Command not recognized")
	}
	return nil
}

// Summary renders the confirmation sentence reported back to the user.
func (a *Action) Summary() string {
	switch a.Intent {
	case IntentPlay:
		e := a.ResolvedEntity
		switch e.Kind {
		case KindArtist:
			return "Playing artist: " + e.DisplayName
		case KindPlaylist:
			return "Playing playlist: " + e.DisplayName
		}
		if e.Detail != "" {
			return fmt.Sprintf("Playing: %s by %s", e.DisplayName, e.Detail)
		}
		return "Playing: " + e.DisplayName
	case IntentPause:
		return "Playback paused"
	case IntentResume:
		return "Playback resumed"
	case IntentSkip:
		return "Skipped to next track"
	case IntentPrevious:
		return "Went to previous track"
	case IntentSetVolume:
		return fmt.Sprintf("Volume set to %d%%", *a.NumericValue)
	case IntentSetShuffle:
		if *a.BooleanValue {
			return "Shuffle enabled"
		}
		return "Shuffle disabled"
	case IntentSetRepeat:
		return "Repeat mode set to " + a.EnumValue
	case IntentCreatePlaylist:
		return "Created playlist: " + a.Name
	case IntentAddToPlaylist:
		return fmt.Sprintf("Added '%s' to playlist '%s'", a.ResolvedEntity.DisplayName, a.Playlist.DisplayName)
	case IntentAddToQueue:
		return fmt.Sprintf("Added '%s' to the queue", a.ResolvedEntity.DisplayName)
	}
	return string(a.Intent)
}
