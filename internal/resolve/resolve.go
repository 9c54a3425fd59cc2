// Package resolve matches free-text names against library candidates.
//
// Resolution prefers an explicit "not found" or "ambiguous" answer over a
// guess: a candidate is only chosen when it scores above the threshold and
// clearly beats the runner-up.
package resolve

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/nadzzz/playcue/internal/config"
	"github.com/nadzzz/playcue/internal/playback"
	"github.com/nadzzz/playcue/internal/textnorm"
)

// Default calibration.
const (
	DefaultThreshold       = 0.85
	DefaultMargin          = 0.05
	DefaultMaxAlternatives = 5
)

// epsilon absorbs float rounding when comparing against the margin.
const epsilon = 1e-9

var (
	bracketedRe  = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]`)
	dashSuffixRe = regexp.MustCompile(`\s+[-–—]\s+.*$`)
)

// Resolver picks the candidate a name refers to.
type Resolver struct {
	scorer          Scorer
	threshold       float64
	margin          float64
	maxAlternatives int
}

// New creates a resolver from config. A nil scorer selects EditDistance;
// zero config values select the defaults.
func New(cfg config.ResolverConfig, scorer Scorer) *Resolver {
	if scorer == nil {
		scorer = EditDistance{}
	}
	r := &Resolver{
		scorer:          scorer,
		threshold:       cfg.Threshold,
		margin:          cfg.Margin,
		maxAlternatives: cfg.MaxAlternatives,
	}
	if r.threshold <= 0 {
		r.threshold = DefaultThreshold
	}
	if r.margin <= 0 {
		r.margin = DefaultMargin
	}
	if r.maxAlternatives < 2 {
		r.maxAlternatives = DefaultMaxAlternatives
	}
	return r
}

type scored struct {
	candidate playback.Candidate
	score     float64
}

// Resolve returns the candidate of the given kind that name refers to.
// It fails with NotFound when nothing scores above the threshold and with
// Ambiguous when the best candidates are within the margin of each other.
func (r *Resolver) Resolve(name string, kind playback.TargetKind, candidates []playback.Candidate) (*playback.ResolvedEntity, error) {
	hint := textnorm.Fold(name)

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Kind != kind {
			continue
		}
		ranked = append(ranked, scored{candidate: c, score: r.score(hint, c.DisplayName)})
	}
	if len(ranked) == 0 {
		return nil, notFound(name, kind)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	top := ranked[0]
	slog.Debug("candidates ranked", "name", name, "kind", kind, "count", len(ranked), "top", top.candidate.DisplayName, "top_score", top.score)

	if top.score < r.threshold {
		return nil, notFound(name, kind)
	}

	var second float64
	if len(ranked) > 1 {
		second = ranked[1].score
	}
	if top.score-second+epsilon >= r.margin {
		return &playback.ResolvedEntity{Candidate: top.candidate, Confidence: top.score}, nil
	}

	var alternatives []playback.Candidate
	for _, s := range ranked {
		if len(alternatives) == r.maxAlternatives {
			break
		}
		if s.score < r.threshold || top.score-s.score+epsilon >= r.margin {
			break
		}
		alternatives = append(alternatives, s.candidate)
	}
	return nil, playback.Ambiguous(alternatives)
}

// score compares the folded hint with the display name as given and with
// version qualifiers such as "(Remastered)" or " - Live" removed.
func (r *Resolver) score(hint, display string) float64 {
	best := r.scorer.Score(hint, textnorm.Fold(display))
	if bare := StripQualifiers(display); bare != display {
		if s := r.scorer.Score(hint, textnorm.Fold(bare)); s > best {
			best = s
		}
	}
	return best
}

// StripQualifiers removes bracketed and dash-separated version suffixes
// from a display name. Names that would become empty are returned as is.
func StripQualifiers(display string) string {
	bare := bracketedRe.ReplaceAllString(display, "")
	bare = dashSuffixRe.ReplaceAllString(bare, "")
	if textnorm.Fold(bare) == "" {
		return display
	}
	return bare
}

func notFound(name string, kind playback.TargetKind) *playback.Failure {
	switch kind {
	case playback.KindArtist:
		return playback.Fail(playback.FailureNotFound, "Artist '%s' not found", name)
	case playback.KindPlaylist:
		return playback.Fail(playback.FailureNotFound, "Playlist '%s' not found", name)
	}
	return playback.Fail(playback.FailureNotFound, "Track '%s' not found", name)
}
