package interpreter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/nadzzz/playcue/internal/playback"
)

// Rule maps a trigger pattern to an intent. Pattern runs against
// normalized text; its "span" group, if any, is the remaining span.
type Rule struct {
	Intent  playback.Intent
	Pattern *regexp.Regexp
}

// Matcher classifies normalized text with an ordered rule table.
// The first matching rule wins.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a Matcher over rules, evaluated in order.
func NewMatcher(rules []Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Rules returns the matcher's rule table.
func (m *Matcher) Rules() []Rule { return m.rules }

// Match returns the intent of text and the span left for argument
// extraction. Unmatched text yields IntentUnknown with the full text.
func (m *Matcher) Match(text string) (playback.Intent, string) {
	for _, r := range m.rules {
		sub := r.Pattern.FindStringSubmatch(text)
		if sub == nil {
			continue
		}
		var span string
		if idx := r.Pattern.SubexpIndex("span"); idx >= 0 {
			span = strings.TrimSpace(sub[idx])
		}
		return r.Intent, span
	}
	return playback.IntentUnknown, text
}

// DefaultRules is the built-in command table. Specific multi-word
// triggers precede the shorter ones they would otherwise shadow.
func DefaultRules() []Rule {
	return []Rule{
		leading(playback.IntentCreatePlaylist, "create playlist", "create a playlist", "make playlist", "make a playlist", "new playlist"),
		pattern(playback.IntentAddToPlaylist, `^add\s+(?P<span>.*\bto (?:my |the )?playlist\b.*)$`),
		pattern(playback.IntentAddToQueue, `^(?:add|put)\s+(?P<span>.+?)\s+(?:to|in|on) (?:the |my )?queue$`),
		leading(playback.IntentAddToQueue, "queue", "queue up"),
		leading(playback.IntentAddToPlaylist, "add"),
		leading(playback.IntentPlay, "play"),
		leading(playback.IntentPause, "pause", "stop"),
		leading(playback.IntentResume, "resume", "unpause", "continue"),
		leading(playback.IntentSkip, "skip", "next", "next track", "next song"),
		leading(playback.IntentPrevious, "previous", "back", "go back", "previous track", "previous song"),
		leading(playback.IntentSetVolume, "volume", "set volume", "set volume to", "set the volume to", "turn volume to", "turn the volume to"),
		pattern(playback.IntentSetShuffle, `^(?:turn|switch) (?P<span>\S+) shuffle$`),
		leading(playback.IntentSetShuffle, "shuffle", "turn shuffle", "switch shuffle", "set shuffle"),
		leading(playback.IntentSetRepeat, "repeat", "set repeat", "set repeat to", "turn repeat"),
	}
}

// Usage lists the command forms understood by DefaultRules.
func Usage() []string {
	return []string{
		"play [song/artist/playlist name]",
		"pause",
		"resume",
		"skip / next",
		"previous / back",
		"volume [0-100]",
		"shuffle on/off",
		"repeat track/context/off",
		"create playlist [name]",
		"add [song] to playlist [name]",
		"add [song] to queue",
	}
}

// leading builds a rule that matches when text starts with one of phrases
// as whole words. Longer phrases are tried first.
func leading(intent playback.Intent, phrases ...string) Rule {
	sorted := append([]string(nil), phrases...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, p := range sorted {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return pattern(intent, `^(?:`+strings.Join(quoted, "|")+`)(?:\s+(?P<span>.*))?$`)
}

func pattern(intent playback.Intent, expr string) Rule {
	return Rule{Intent: intent, Pattern: regexp.MustCompile(expr)}
}
