package segment

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mixdown/internal/config"
	"mixdown/internal/logging"
	"mixdown/internal/services"
)

const stageName = "segmenting"

// Engine is the slice of the rendering engine the segmenter needs: an
// analysis transcode, the silence-detection diagnostic pass, and a duration
// probe.
type Engine interface {
	ExtractAnalysisAudio(ctx context.Context, source, dest string) error
	DetectSilence(ctx context.Context, path string, noiseFloorDb float64, minSilence time.Duration) (string, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// Result is the segmenter output: speech segments plus the independently
// determined total duration they were derived against.
type Result struct {
	Segments    []Segment
	DurationSec float64
}

// Analyzer locates speech activity in a narration asset.
type Analyzer struct {
	engine       Engine
	noiseFloorDb float64
	minSilence   time.Duration
	mergeGap     time.Duration
	logger       *slog.Logger
}

// NewAnalyzer builds an analyzer using the ducking thresholds from config.
func NewAnalyzer(cfg *config.Config, engine Engine, logger *slog.Logger) *Analyzer {
	noiseFloor := -30.0
	minSilence := 300 * time.Millisecond
	mergeGap := 200 * time.Millisecond
	if cfg != nil {
		noiseFloor = cfg.Ducking.NoiseFloorDb
		minSilence = time.Duration(cfg.Ducking.MinSilenceMs) * time.Millisecond
		mergeGap = time.Duration(cfg.Ducking.MergeGapMs) * time.Millisecond
	}
	return &Analyzer{
		engine:       engine,
		noiseFloorDb: noiseFloor,
		minSilence:   minSilence,
		mergeGap:     mergeGap,
		logger:       logging.NewComponentLogger(logger, "segmenter"),
	}
}

// Analyze transcodes the narration to an analysis form, runs silence
// detection, and inverts the result into merged speech segments. All failures
// are retryable and carry the source asset reference; the analysis temp file
// is removed on every path.
func (a *Analyzer) Analyze(ctx context.Context, sourcePath, workDir string) (Result, error) {
	analysisPath := filepath.Join(workDir, "analysis-"+uuid.NewString()+".wav")
	defer func() {
		if err := os.Remove(analysisPath); err != nil && !os.IsNotExist(err) {
			a.logger.Warn("failed to remove analysis file",
				logging.String("path", analysisPath),
				logging.Error(err),
			)
		}
	}()

	if err := a.engine.ExtractAnalysisAudio(ctx, sourcePath, analysisPath); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, stageName, "transcode", "voice asset "+sourcePath, err)
	}

	total, err := a.engine.Duration(ctx, analysisPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, stageName, "probe", "voice asset "+sourcePath, err)
	}
	if total <= 0 {
		return Result{}, services.Wrap(services.ErrTransient, stageName, "probe", "could not determine duration of "+sourcePath, nil)
	}

	diagnostic, err := a.engine.DetectSilence(ctx, analysisPath, a.noiseFloorDb, a.minSilence)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, stageName, "silencedetect", "voice asset "+sourcePath, err)
	}

	silences := parseSilences(diagnostic, total)
	segments := mergeSegments(invertSilences(silences, total), a.mergeGap.Seconds())

	a.logger.Debug("speech analysis completed",
		logging.Int("silence_intervals", len(silences)),
		logging.Int("speech_segments", len(segments)),
		logging.Float64("duration_sec", total),
	)
	return Result{Segments: segments, DurationSec: total}, nil
}
