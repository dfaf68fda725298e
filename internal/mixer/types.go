package mixer

import "mixdown/internal/sfx"

// Status tracks a mix run through its pipeline stages.
type Status string

const (
	StatusInitializing     Status = "initializing"
	StatusFetchingAssets   Status = "fetching_assets"
	StatusSegmenting       Status = "segmenting"
	StatusBuildingEnvelope Status = "building_envelope"
	StatusCompilingGraph   Status = "compiling_graph"
	StatusRendering        Status = "rendering"
	StatusPublishing       Status = "publishing"
	StatusCompleted        Status = "completed"
	StatusFailed           Status = "failed"
)

// Request describes one mix job. VoiceRef is required; everything else is
// optional enrichment.
type Request struct {
	VoiceRef          string
	MoodTag           string
	TargetDurationSec float64
	ScriptSegments    []sfx.ScriptSegment
}

// Metrics summarizes what went into a finished mix. Loudness values are the
// normalization targets the render was compiled against, not a measurement of
// the produced file.
type Metrics struct {
	SpeechSegments          int
	SfxTriggered            int
	DurationSec             float64
	EstimatedIntegratedLUFS float64
	EstimatedTruePeakDb     float64
}

// Result is the outcome of a completed mix run.
type Result struct {
	RequestID        string
	Status           Status
	MixedAudioRef    string
	OriginalAudioRef string
	DuckingApplied   bool
	Metrics          Metrics
}
