// Package music selects background tracks for mixes. The mixer treats the
// selector as optional: any failure here degrades the mix to voice-only
// instead of failing it.
package music

import (
	"context"
	"errors"
)

// ErrNoTrack is returned when no track matches the requested mood.
var ErrNoTrack = errors.New("no matching music track")

// Track is a selected background track. AssetRef resolves through the asset
// store; DurationSec may be zero when the catalog does not know it.
type Track struct {
	ID          string
	Title       string
	MoodTag     string
	AssetRef    string
	DurationSec float64
}

// Selector picks a background track for a mood and prepares it to cover the
// target duration.
type Selector interface {
	// Select returns a track matching moodTag that can cover
	// targetDurationSec.
	Select(ctx context.Context, moodTag string, targetDurationSec float64) (Track, error)
	// PrepareLooped materializes the track in workDir, looped or trimmed to
	// targetDurationSec, and returns the local path.
	PrepareLooped(ctx context.Context, track Track, targetDurationSec float64, workDir string) (string, error)
}

// NoopSelector is the default when no music backend is configured. It reports
// no track for every mood, which keeps mixes voice-only.
type NoopSelector struct{}

// Select always reports that no track is available.
func (NoopSelector) Select(context.Context, string, float64) (Track, error) {
	return Track{}, ErrNoTrack
}

// PrepareLooped is never reached through the mixer since Select fails first;
// it mirrors Select for direct callers.
func (NoopSelector) PrepareLooped(context.Context, Track, float64, string) (string, error) {
	return "", ErrNoTrack
}
