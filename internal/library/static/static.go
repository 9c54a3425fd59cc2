// Package static implements library.Lookup over a YAML catalog file.
//
// Example catalog:
//
//	songs:
//	  - id: spotify:track:60nZcImufyMA1MKQY3dcCH
//	    name: Happy
//	    artist: Pharrell Williams
//	artists:
//	  - name: Daft Punk
//	playlists:
//	  - name: Workout
package static

import (
	"context"
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/nadzzz/playcue/internal/playback"
	"github.com/nadzzz/playcue/internal/textnorm"
)

// Entry is one catalog item.
type Entry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Artist string `yaml:"artist,omitempty"`
}

// Catalog is an in-memory library loaded from YAML. It is read-only after
// loading and safe for concurrent use.
type Catalog struct {
	Songs     []Entry `yaml:"songs"`
	Artists   []Entry `yaml:"artists"`
	Playlists []Entry `yaml:"playlists"`
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and fills in missing IDs.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	for kind, entries := range map[playback.TargetKind][]Entry{
		playback.KindSong:     c.Songs,
		playback.KindArtist:   c.Artists,
		playback.KindPlaylist: c.Playlists,
	} {
		for i := range entries {
			if entries[i].Name == "" {
				return nil, fmt.Errorf("catalog %s entry %d has no name", kind, i)
			}
			if entries[i].ID == "" {
				entries[i].ID = fmt.Sprintf("static:%s:%d", kind, i)
			}
		}
	}
	return &c, nil
}

// LookupCandidates returns the entries of kind, in catalog order. When an
// entry's folded name equals the folded hint, only the entries whose names
// fuzzily contain hint are returned. Otherwise every entry of kind is
// returned and the resolver has the final word.
func (c *Catalog) LookupCandidates(ctx context.Context, kind playback.TargetKind, hint string) ([]playback.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []Entry
	switch kind {
	case playback.KindSong:
		entries = c.Songs
	case playback.KindArtist:
		entries = c.Artists
	case playback.KindPlaylist:
		entries = c.Playlists
	default:
		return nil, nil
	}

	keep := make([]bool, len(entries))
	exact := false
	if pattern := textnorm.Fold(hint); pattern != "" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = textnorm.Fold(e.Name)
		}
		for _, m := range fuzzy.Find(pattern, names) {
			keep[m.Index] = true
			if names[m.Index] == pattern {
				exact = true
			}
		}
	}

	out := make([]playback.Candidate, 0, len(entries))
	for i, e := range entries {
		if exact && !keep[i] {
			continue
		}
		out = append(out, playback.Candidate{
			ID:          e.ID,
			DisplayName: e.Name,
			Kind:        kind,
			Detail:      e.Artist,
		})
	}
	return out, nil
}
