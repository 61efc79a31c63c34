// Package engine implements the periodization and adaptive-training core:
// recovery analytics, weekly structure building, daily workout generation,
// session-start adjustment, and set-by-set auto-regulation. All functions
// are pure computation over in-memory inputs; persistence is the caller's
// concern.
package engine

import (
	"strings"

	"github.com/claude/liftwise/internal/models"
)

// patternKeywords maps title substrings to movement patterns, checked in
// order. This is the single keyword table for the whole engine.
var patternKeywords = []struct {
	substr  string
	pattern models.MovementPattern
}{
	{"squat", models.PatternSquat},
	{"deadlift", models.PatternHinge},
	{"rdl", models.PatternHinge},
	{"hinge", models.PatternHinge},
	{"bench", models.PatternPush},
	{"press", models.PatternPush},
	{"row", models.PatternPull},
	{"pull", models.PatternPull},
}

// ClassifyBlockTitle infers a movement pattern from a free-text block
// title. This is a legacy fallback for untagged records; blocks created
// by this engine carry an explicit pattern tag.
func ClassifyBlockTitle(title string) (models.MovementPattern, bool) {
	t := strings.ToLower(title)
	for _, kw := range patternKeywords {
		if strings.Contains(t, kw.substr) {
			return kw.pattern, true
		}
	}
	return "", false
}

// BlockPattern returns the canonical pattern for a historical block:
// the explicit tag when present, otherwise the title keyword fallback.
func BlockPattern(b models.BlockSummary) (models.MovementPattern, bool) {
	if b.Pattern != "" {
		return b.Pattern, true
	}
	return ClassifyBlockTitle(b.Title)
}
