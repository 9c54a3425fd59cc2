package static

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/playcue/internal/playback"
)

const catalogYAML = `
songs:
  - id: spotify:track:happy
    name: Happy
    artist: Pharrell Williams
  - name: Nightfall
    artist: Blind Guardian
  - name: Yesterday
    artist: The Beatles
artists:
  - name: Daft Punk
playlists:
  - name: Workout
  - name: Chill Vibes
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(catalogYAML))
	require.NoError(t, err)

	require.Len(t, c.Songs, 3)
	assert.Equal(t, "spotify:track:happy", c.Songs[0].ID)
	assert.Equal(t, "static:song:1", c.Songs[1].ID)
	assert.Equal(t, "static:playlist:0", c.Playlists[0].ID)
	assert.Len(t, c.Artists, 1)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("songs: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("songs:\n  - artist: Nobody\n"))
	assert.ErrorContains(t, err, "has no name")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Songs, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLookupCandidates(t *testing.T) {
	c, err := Parse([]byte(catalogYAML))
	require.NoError(t, err)
	ctx := context.Background()

	got, err := c.LookupCandidates(ctx, playback.KindSong, "Nightfall")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Nightfall", got[0].DisplayName)
	assert.Equal(t, "Blind Guardian", got[0].Detail)
	assert.Equal(t, playback.KindSong, got[0].Kind)

	got, err = c.LookupCandidates(ctx, playback.KindPlaylist, "workout")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Workout", got[0].DisplayName)
}

func TestLookupCandidates_FallsBackToAll(t *testing.T) {
	c, err := Parse([]byte(catalogYAML))
	require.NoError(t, err)

	got, err := c.LookupCandidates(context.Background(), playback.KindSong, "zzzz")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestLookupCandidates_KeepsCloseMatches(t *testing.T) {
	c, err := Parse([]byte(`
songs:
  - name: Nightfall Lullaby
  - name: Nightfall
  - name: Happy
`))
	require.NoError(t, err)

	// "nightfalll" is only a subsequence of the lullaby, but Nightfall is the
	// closer name and must still reach the resolver.
	got, err := c.LookupCandidates(context.Background(), playback.KindSong, "nightfalll")
	require.NoError(t, err)
	names := make([]string, len(got))
	for i, g := range got {
		names[i] = g.DisplayName
	}
	assert.Equal(t, []string{"Nightfall Lullaby", "Nightfall", "Happy"}, names)

	got, err = c.LookupCandidates(context.Background(), playback.KindSong, "nightfall")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLookupCandidates_UnknownKind(t *testing.T) {
	c, err := Parse([]byte(catalogYAML))
	require.NoError(t, err)

	got, err := c.LookupCandidates(context.Background(), playback.KindNone, "happy")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLookupCandidates_Cancelled(t *testing.T) {
	c, err := Parse([]byte(catalogYAML))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.LookupCandidates(ctx, playback.KindSong, "happy")
	assert.ErrorIs(t, err, context.Canceled)
}
