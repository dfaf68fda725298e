package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mixdown/internal/ducking"
	"mixdown/internal/ffmpeg"
	"mixdown/internal/mixgraph"
	"mixdown/internal/segment"
	"mixdown/internal/staging"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Inspect speech activity and ducking behavior",
	}

	analyzeCmd.AddCommand(newAnalyzeSegmentsCommand(ctx))
	analyzeCmd.AddCommand(newAnalyzeEnvelopeCommand(ctx))

	return analyzeCmd
}

func (c *commandContext) analyzeFile(cmd *cobra.Command, path string) (segment.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return segment.Result{}, err
	}
	logger := c.ensureLogger()

	engine := ffmpeg.New(cfg, logger)
	if err := engine.Ready(); err != nil {
		return segment.Result{}, err
	}

	ws, err := staging.NewWorkspace(cfg.Paths.StagingDir)
	if err != nil {
		return segment.Result{}, err
	}
	defer ws.Cleanup(logger)

	analyzer := segment.NewAnalyzer(cfg, engine, logger)
	return analyzer.Analyze(cmd.Context(), path, ws.Dir)
}

func newAnalyzeSegmentsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "segments <audio-file>",
		Short: "Detect speech segments in an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.analyzeFile(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Segments) == 0 {
				fmt.Fprintf(out, "No speech detected in %.1fs of audio\n", result.DurationSec)
				return nil
			}

			rows := make([][]string, 0, len(result.Segments))
			for i, seg := range result.Segments {
				rows = append(rows, []string{
					fmt.Sprintf("%d", i+1),
					fmt.Sprintf("%.2fs", seg.Start),
					fmt.Sprintf("%.2fs", seg.End),
					fmt.Sprintf("%.2fs", seg.End-seg.Start),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "Start", "End", "Length"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d speech segments across %.1fs\n", len(result.Segments), result.DurationSec)
			return nil
		},
	}
}

func newAnalyzeEnvelopeCommand(ctx *commandContext) *cobra.Command {
	var showExpression bool

	cmd := &cobra.Command{
		Use:   "envelope <audio-file>",
		Short: "Show the ducking envelope an audio file would produce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := ctx.analyzeFile(cmd, args[0])
			if err != nil {
				return err
			}

			policy := ducking.PolicyFromConfig(cfg)
			envelope := ducking.GenerateEnvelope(result.Segments, policy, result.DurationSec)

			out := cmd.OutOrStdout()
			if len(envelope) == 0 {
				fmt.Fprintln(out, "No envelope: audio has no measurable duration")
				return nil
			}

			rows := make([][]string, 0, len(envelope))
			for _, point := range envelope {
				rows = append(rows, []string{
					fmt.Sprintf("%.3fs", point.TimeSec),
					fmt.Sprintf("%+.1f dB", point.GainDb),
					fmt.Sprintf("%.4f", mixgraph.DbToLinear(point.GainDb)),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Time", "Gain", "Linear"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight},
			))

			if showExpression {
				fmt.Fprintf(out, "\nvolume='%s':eval=frame\n", mixgraph.VolumeExpression(envelope))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showExpression, "expr", false, "Print the synthesized volume automation expression")
	return cmd
}
