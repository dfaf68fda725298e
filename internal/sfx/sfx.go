// Package sfx turns script annotations into scheduled sound-effect triggers
// and resolves sound identifiers against the effect library.
package sfx

import "context"

// Trigger schedules one sound effect inside the mix timeline.
type Trigger struct {
	SoundID  string
	TimeSec  float64
	Volume   float64
	AssetRef string
}

// ScriptSegment is one timed portion of the narration script. Annotations are
// free-form markup the extractor understands.
type ScriptSegment struct {
	Text     string
	StartSec float64
	EndSec   float64
}

// Extractor derives triggers from the narration script. Extraction failures
// only drop effects; they never fail the mix.
type Extractor interface {
	Extract(ctx context.Context, segments []ScriptSegment) ([]Trigger, error)
}

// NoopExtractor is the default when no effect extraction backend is
// configured. It produces no triggers.
type NoopExtractor struct{}

// Extract returns no triggers.
func (NoopExtractor) Extract(context.Context, []ScriptSegment) ([]Trigger, error) {
	return nil, nil
}
