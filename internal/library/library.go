// Package library defines the lookup used to fetch resolution candidates
// from the user's music library.
//
// Backends live in sub-packages: spotify (Spotify Web API) and static
// (a YAML catalog, handy offline and in tests). Results are never cached:
// library membership can change between commands.
package library

import (
	"context"

	"github.com/nadzzz/playcue/internal/playback"
)

// Lookup fetches candidates of the requested kind, loosely filtered by hint.
// It may block on network I/O and must honour ctx.
type Lookup interface {
	LookupCandidates(ctx context.Context, kind playback.TargetKind, hint string) ([]playback.Candidate, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, kind playback.TargetKind, hint string) ([]playback.Candidate, error)

// LookupCandidates calls f.
func (f LookupFunc) LookupCandidates(ctx context.Context, kind playback.TargetKind, hint string) ([]playback.Candidate, error) {
	return f(ctx, kind, hint)
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
