package library

import (
	"fmt"
	"log/slog"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/library/spotify"
	"github.com/nadzzz/playcue/internal/library/static"
)

// Open builds the lookup selected by cfg.Backend.
func Open(cfg config.LibraryConfig) (Lookup, error) {
	switch cfg.Backend {
	case "spotify":
		if cfg.Spotify.AccessToken == "" {
			slog.Warn("spotify access token is empty; lookups will fail until one is configured")
		}
		slog.Info("using spotify library", "api_url", cfg.Spotify.APIURL, "market", cfg.Spotify.Market)
		return spotify.New(cfg.Spotify), nil
	case "static":
		catalog, err := static.Load(cfg.Static.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("using static library", "path", cfg.Static.Path,
			"songs", len(catalog.Songs), "artists", len(catalog.Artists), "playlists", len(catalog.Playlists))
		return catalog, nil
	default:
		return nil, fmt.Errorf("unknown library backend %q", cfg.Backend)
	}
}
