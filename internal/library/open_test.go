package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzzz/playcue/internal/config"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte("songs:\n  - name: Happy\n"), 0o600))

	lookup, err := Open(config.LibraryConfig{Backend: "static", Static: config.StaticConfig{Path: path}})
	require.NoError(t, err)
	assert.NotNil(t, lookup)

	lookup, err = Open(config.LibraryConfig{Backend: "spotify"})
	require.NoError(t, err)
	_, ok := lookup.(Pinger)
	assert.True(t, ok, "spotify backend supports readiness pings")

	_, err = Open(config.LibraryConfig{Backend: "static", Static: config.StaticConfig{Path: filepath.Join(t.TempDir(), "nope.yaml")}})
	assert.Error(t, err)

	_, err = Open(config.LibraryConfig{Backend: "itunes"})
	assert.ErrorContains(t, err, "unknown library backend")
}
