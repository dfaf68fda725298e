package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mixdown/internal/assets"
	"mixdown/internal/ffmpeg"
	"mixdown/internal/history"
	"mixdown/internal/logging"
	"mixdown/internal/mixer"
	"mixdown/internal/segment"
	"mixdown/internal/sfx"
)

func newMixCommand(ctx *commandContext) *cobra.Command {
	var moodTag string
	var targetDuration float64

	cmd := &cobra.Command{
		Use:   "mix <voice-ref>",
		Short: "Mix a narration asset with music and effects",
		Long: `Mix runs the full pipeline for one narration asset: speech segmentation,
ducking envelope generation, filter-graph compilation, a single render, and
publication to the output directory.

The voice reference resolves against library_dir unless it is an absolute
path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			engine := ffmpeg.New(cfg, logger)
			opts := mixer.Options{
				Store: assets.NewLocalStore(cfg.Paths.LibraryDir, cfg.Paths.OutputDir),
			}
			if dir := strings.TrimSpace(cfg.SFX.LibraryDir); dir != "" {
				opts.Library = sfx.NewLibrary(sfx.DirLoader(dir))
			}
			if cfg.History.Enabled {
				store, err := history.Open(cfg.History.Path)
				if err != nil {
					logger.Warn("history store unavailable",
						logging.Error(err),
						logging.String(logging.FieldImpact, "run will not be recorded"),
					)
				} else {
					defer store.Close()
					opts.History = store
				}
			}

			m, err := mixer.New(cfg, engine, segment.NewAnalyzer(cfg, engine, logger), opts, logger)
			if err != nil {
				return err
			}

			result, err := m.Mix(cmd.Context(), mixer.Request{
				VoiceRef:          args[0],
				MoodTag:           moodTag,
				TargetDurationSec: targetDuration,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mix complete: %s\n", result.MixedAudioRef)
			fmt.Fprintf(out, "  Request:         %s\n", result.RequestID)
			fmt.Fprintf(out, "  Ducking applied: %s\n", yesNo(result.DuckingApplied))
			fmt.Fprintf(out, "  Speech segments: %d\n", result.Metrics.SpeechSegments)
			fmt.Fprintf(out, "  Effects mixed:   %d\n", result.Metrics.SfxTriggered)
			fmt.Fprintf(out, "  Duration:        %.1fs\n", result.Metrics.DurationSec)
			return nil
		},
	}

	cmd.Flags().StringVarP(&moodTag, "mood", "m", "", "Mood tag for background music selection")
	cmd.Flags().Float64VarP(&targetDuration, "duration", "d", 0, "Target duration in seconds for music preparation")
	return cmd
}
