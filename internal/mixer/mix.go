package mixer

import (
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"mixdown/internal/ducking"
	"mixdown/internal/ffmpeg"
	"mixdown/internal/history"
	"mixdown/internal/logging"
	"mixdown/internal/mixgraph"
	"mixdown/internal/services"
	"mixdown/internal/sfx"
	"mixdown/internal/staging"
)

// Mix runs one job end to end. The workspace is removed on every exit path,
// and the outcome is recorded to history and notified regardless of success.
func (m *Mixer) Mix(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.VoiceRef) == "" {
		return Result{Status: StatusFailed},
			services.Wrap(services.ErrValidation, "initializing", "mix", "voice reference is required", nil)
	}

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	logger := m.logger.With(logging.String(logging.FieldCorrelationID, requestID))

	result, err := m.run(ctx, req, requestID, logger)
	result.RequestID = requestID
	if err != nil {
		result.Status = StatusFailed
	}
	m.finish(req, result, err, logger)
	return result, err
}

func (m *Mixer) run(ctx context.Context, req Request, requestID string, logger *slog.Logger) (Result, error) {
	result := Result{OriginalAudioRef: req.VoiceRef}
	advance := func(status Status) {
		result.Status = status
		logger.Info("mix status changed",
			logging.String(logging.FieldStage, string(status)),
			logging.String(logging.FieldEventType, "mix_status"),
		)
	}

	advance(StatusInitializing)
	if err := m.engine.Ready(); err != nil {
		return result, err
	}

	ws, err := staging.NewWorkspace(m.cfg.Paths.StagingDir)
	if err != nil {
		return result, err
	}
	defer ws.Cleanup(logger)

	advance(StatusFetchingAssets)
	ctx = services.WithStage(ctx, "fetching")

	triggers, err := m.sfx.Extract(ctx, req.ScriptSegments)
	if err != nil {
		logger.Warn("sound-effect extraction failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "mix proceeds without effects"),
		)
		triggers = nil
	}

	var (
		voicePath string
		musicPath string
		stemPaths = make([]string, len(triggers))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := m.store.Download(gctx, req.VoiceRef, ws.Dir)
		if err != nil {
			return err
		}
		voicePath = path
		return nil
	})

	if m.cfg.Music.Enabled && strings.TrimSpace(req.MoodTag) != "" {
		g.Go(func() error {
			track, err := m.music.Select(gctx, req.MoodTag, req.TargetDurationSec)
			if err != nil {
				logger.Warn("music selection failed",
					logging.String("mood", req.MoodTag),
					logging.Error(err),
					logging.String(logging.FieldImpact, "mix proceeds voice-only"),
				)
				return nil
			}
			path, err := m.music.PrepareLooped(gctx, track, req.TargetDurationSec, ws.Dir)
			if err != nil {
				logger.Warn("music preparation failed",
					logging.String("track", track.ID),
					logging.Error(err),
					logging.String(logging.FieldImpact, "mix proceeds voice-only"),
				)
				return nil
			}
			musicPath = path
			return nil
		})
	}

	for i, trigger := range triggers {
		i, trigger := i, trigger
		g.Go(func() error {
			ref := trigger.AssetRef
			if ref == "" && m.library != nil {
				resolved, err := m.library.Resolve(trigger.SoundID)
				if err != nil {
					logger.Warn("sound-effect lookup failed",
						logging.String("sound", trigger.SoundID),
						logging.Error(err),
						logging.String(logging.FieldImpact, "effect dropped from mix"),
					)
					return nil
				}
				ref = resolved
			}
			if ref == "" {
				logger.Warn("sound effect has no asset reference",
					logging.String("sound", trigger.SoundID),
					logging.String(logging.FieldImpact, "effect dropped from mix"),
				)
				return nil
			}
			path, err := m.store.Download(gctx, ref, ws.Dir)
			if err != nil {
				logger.Warn("sound-effect download failed",
					logging.String(logging.FieldAssetRef, ref),
					logging.Error(err),
					logging.String(logging.FieldImpact, "effect dropped from mix"),
				)
				return nil
			}
			stemPaths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	advance(StatusSegmenting)
	analysis, err := m.segmenter.Analyze(services.WithStage(ctx, "segmenting"), voicePath, ws.Dir)
	if err != nil {
		return result, err
	}

	advance(StatusBuildingEnvelope)
	policy := ducking.PolicyFromConfig(m.cfg)
	envelope := ducking.GenerateEnvelope(analysis.Segments, policy, analysis.DurationSec)

	advance(StatusCompilingGraph)
	stems := make([]mixgraph.Stem, 0, len(triggers))
	for i, trigger := range triggers {
		if stemPaths[i] == "" {
			continue
		}
		stems = append(stems, mixgraph.Stem{
			Path:    stemPaths[i],
			DelayMs: int(math.Round(trigger.TimeSec * 1000)),
			Volume:  stemVolume(trigger),
		})
	}

	graph, err := mixgraph.Compile(mixgraph.Request{
		VoicePath:      voicePath,
		MusicPath:      musicPath,
		Envelope:       envelope,
		SpeechDetected: len(analysis.Segments) > 0,
		Stems:          stems,
		Loudness: mixgraph.Targets{
			IntegratedLUFS: m.cfg.Loudness.IntegratedLUFS,
			TruePeakDb:     m.cfg.Loudness.TruePeakDb,
			RangeLU:        m.cfg.Loudness.RangeLU,
		},
	})
	if err != nil {
		return result, err
	}
	result.DuckingApplied = graph.DuckingApplied

	advance(StatusRendering)
	renderPath := ws.Path("mix.wav")
	if err := m.engine.Render(services.WithStage(ctx, "rendering"), ffmpeg.RenderSpec{
		Inputs:        graph.Inputs,
		FilterComplex: graph.FilterComplex,
		OutputLabel:   graph.OutputLabel,
		OutputPath:    renderPath,
		SampleRate:    m.cfg.Output.SampleRate,
		Channels:      m.cfg.Output.Channels,
	}); err != nil {
		return result, services.Wrap(services.ErrExternalTool, "rendering", "render", "voice asset "+req.VoiceRef, err)
	}

	advance(StatusPublishing)
	publishedRef, err := m.store.Upload(services.WithStage(ctx, "publishing"), renderPath, mixedRef(req.VoiceRef))
	if err != nil {
		return result, err
	}
	result.MixedAudioRef = publishedRef

	result.Metrics = Metrics{
		SpeechSegments:          len(analysis.Segments),
		SfxTriggered:            len(stems),
		DurationSec:             analysis.DurationSec,
		EstimatedIntegratedLUFS: m.cfg.Loudness.IntegratedLUFS,
		EstimatedTruePeakDb:     m.cfg.Loudness.TruePeakDb,
	}

	advance(StatusCompleted)
	logger.Info("mix completed",
		logging.String(logging.FieldAssetRef, publishedRef),
		logging.Bool("ducking", result.DuckingApplied),
		logging.Int("speech_segments", result.Metrics.SpeechSegments),
		logging.Int("sfx_triggered", result.Metrics.SfxTriggered),
		logging.Float64("duration_sec", result.Metrics.DurationSec),
	)
	return result, nil
}

// finish records the run outcome and sends notifications. Bookkeeping
// failures are logged, never surfaced; the mix result stands on its own.
func (m *Mixer) finish(req Request, result Result, mixErr error, logger *slog.Logger) {
	ctx := context.Background()

	if m.history != nil && m.cfg.History.Enabled {
		record := history.Record{
			RequestID:      result.RequestID,
			VoiceRef:       req.VoiceRef,
			MoodTag:        req.MoodTag,
			Status:         string(result.Status),
			OutputRef:      result.MixedAudioRef,
			DuckingApplied: result.DuckingApplied,
			SpeechSegments: result.Metrics.SpeechSegments,
			SfxTriggered:   result.Metrics.SfxTriggered,
			DurationSec:    result.Metrics.DurationSec,
		}
		if mixErr != nil {
			record.ErrorMessage = mixErr.Error()
		}
		if _, err := m.history.Add(ctx, record); err != nil {
			logger.Warn("failed to record mix history",
				logging.Error(err),
				logging.String(logging.FieldImpact, "run missing from history"),
			)
		}
	}

	var notifyErr error
	if mixErr != nil {
		notifyErr = m.notifier.NotifyMixFailed(ctx, req.VoiceRef, mixErr)
	} else {
		notifyErr = m.notifier.NotifyMixCompleted(ctx, req.VoiceRef, result.MixedAudioRef, result.DuckingApplied)
	}
	if notifyErr != nil {
		logger.Warn("failed to send notification", logging.Error(notifyErr))
	}
}

func stemVolume(trigger sfx.Trigger) float64 {
	if trigger.Volume <= 0 {
		return 1
	}
	return trigger.Volume
}

// mixedRef derives the published reference from the voice reference.
func mixedRef(voiceRef string) string {
	base := filepath.Base(strings.TrimSpace(voiceRef))
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		name = "mix"
	}
	return filepath.Join("mixes", name+"-mixed.wav")
}
