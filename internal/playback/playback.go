// Package playback defines the core data types flowing through the command pipeline.
//
// A raw utterance is classified into an Intent, its arguments are extracted
// into Arguments, names are resolved to library Candidates, and the result
// is assembled into an Action. Every stage reports problems as a *Failure.
package playback

// Intent is the classified purpose of a command.
type Intent string

const (
	IntentPlay           Intent = "play"
	IntentPause          Intent = "pause"
	IntentResume         Intent = "resume"
	IntentSkip           Intent = "skip"
	IntentPrevious       Intent = "previous"
	IntentSetVolume      Intent = "set_volume"
	IntentSetShuffle     Intent = "set_shuffle"
	IntentSetRepeat      Intent = "set_repeat"
	IntentCreatePlaylist Intent = "create_playlist"
	IntentAddToPlaylist  Intent = "add_to_playlist"
	IntentAddToQueue     Intent = "add_to_queue"
	IntentUnknown        Intent = "unknown"
)

// TargetKind says what a free-text name refers to.
type TargetKind string

const (
	KindSong     TargetKind = "song"
	KindArtist   TargetKind = "artist"
	KindPlaylist TargetKind = "playlist"
	KindNone     TargetKind = "none"
)

// RepeatMode is the enum value carried by SetRepeat actions.
type RepeatMode string

const (
	RepeatTrack   RepeatMode = "track"
	RepeatContext RepeatMode = "context"
	RepeatOff     RepeatMode = "off"
)

// Valid reports whether m is one of the known repeat modes.
func (m RepeatMode) Valid() bool {
	switch m {
	case RepeatTrack, RepeatContext, RepeatOff:
		return true
	}
	return false
}

// Candidate is one library entity returned by a lookup.
type Candidate struct {
	// ID is the backend identifier (e.g. "spotify:track:6NPVjNh8Jhru9xOmyQigds").
	ID string `json:"id"`

	// DisplayName is the name shown to the user and matched against.
	DisplayName string `json:"display_name"`

	// Kind is the entity type.
	Kind TargetKind `json:"kind"`

	// Detail is an optional secondary line, such as the artists of a track.
	Detail string `json:"detail,omitempty"`
}

// ResolvedEntity is a Candidate chosen as the match for a name.
type ResolvedEntity struct {
	Candidate

	// Confidence is the similarity score in [0,1].
	Confidence float64 `json:"confidence"`
}

// Arguments holds what the extractor found in the text, before resolution.
// Which fields are set depends on the Intent.
type Arguments struct {
	// Kind is the target of a Play command.
	Kind TargetKind `json:"kind,omitempty"`

	// Name is the free-text song, artist or playlist name.
	Name string `json:"name,omitempty"`

	// Playlist is the destination playlist name for AddToPlaylist.
	Playlist string `json:"playlist,omitempty"`

	// Level is the lexically parsed volume. Range checks happen in Build.
	Level *int `json:"level,omitempty"`

	// Shuffle is the requested shuffle state.
	Shuffle *bool `json:"shuffle,omitempty"`

	// Repeat is the requested repeat mode.
	Repeat RepeatMode `json:"repeat,omitempty"`
}
