package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/nadzzz/playcue/internal/interpreter"
	"github.com/nadzzz/playcue/internal/library"
	"github.com/nadzzz/playcue/internal/playback"
	"github.com/nadzzz/playcue/internal/resolve"
)

const lookupUnavailableMessage = "Music library is unavailable right now. Please try again."

// Dispatcher runs one command through interpretation, resolution and
// action building. It holds no per-command state and is safe for
// concurrent use.
type Dispatcher struct {
	interpreter *interpreter.Interpreter
	resolver    *resolve.Resolver
}

// NewDispatcher creates a Dispatcher from its stages.
func NewDispatcher(interp *interpreter.Interpreter, resolver *resolve.Resolver) *Dispatcher {
	return &Dispatcher{interpreter: interp, resolver: resolver}
}

// Dispatch turns raw text into an Action or a classified Failure. The
// lookup is consulted for every name in the command and is never retried.
// Dispatch does not panic, whatever the lookup does.
func (d *Dispatcher) Dispatch(ctx context.Context, raw string, lookup library.Lookup) playback.Result {
	interp, err := d.interpreter.Interpret(raw)
	if err != nil {
		return failed(err)
	}

	var entity, playlist *playback.ResolvedEntity
	args := interp.Args

	switch interp.Intent {
	case playback.IntentPlay:
		entity, err = d.resolve(ctx, lookup, args.Kind, args.Name)
	case playback.IntentAddToQueue:
		entity, err = d.resolve(ctx, lookup, playback.KindSong, args.Name)
	case playback.IntentAddToPlaylist:
		entity, err = d.resolve(ctx, lookup, playback.KindSong, args.Name)
		if err == nil {
			playlist, err = d.resolve(ctx, lookup, playback.KindPlaylist, args.Playlist)
		}
	}
	if err != nil {
		return failed(err)
	}

	action, err := playback.Build(interp.Intent, args, entity, playlist)
	if err != nil {
		return failed(err)
	}
	return playback.Result{Action: action}
}

func (d *Dispatcher) resolve(ctx context.Context, lookup library.Lookup, kind playback.TargetKind, name string) (*playback.ResolvedEntity, error) {
	candidates, err := lookupCandidates(ctx, lookup, kind, name)
	if err != nil {
		return nil, playback.Fail(playback.FailureLookupUnavailable, lookupUnavailableMessage).WithCause(err)
	}
	return d.resolver.Resolve(name, kind, candidates)
}

// lookupCandidates shields the pipeline from a missing or panicking lookup.
func lookupCandidates(ctx context.Context, lookup library.Lookup, kind playback.TargetKind, name string) (candidates []playback.Candidate, err error) {
	if lookup == nil {
		return nil, errors.New("no library lookup configured")
	}
	defer func() {
		if r := recover(); r != nil {
			candidates, err = nil, fmt.Errorf("library lookup panicked: %v", r)
		}
	}()
	return lookup.LookupCandidates(ctx, kind, name)
}

// failed wraps a stage error into a Result. Stages only return
// *playback.Failure; anything else came from the library.
func failed(err error) playback.Result {
	var f *playback.Failure
	if errors.As(err, &f) {
		return playback.Result{Failure: f}
	}
	return playback.Result{Failure: playback.Fail(playback.FailureLookupUnavailable, lookupUnavailableMessage).WithCause(err)}
}
