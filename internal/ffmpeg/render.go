package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"mixdown/internal/logging"
)

// RenderSpec describes one render invocation: ordered inputs, a filter-graph
// program, and the fixed output format.
type RenderSpec struct {
	Inputs        []string
	FilterComplex string
	OutputLabel   string
	OutputPath    string
	SampleRate    int
	Channels      int
}

// Render invokes the engine exactly once with the compiled filter graph.
// When a render timeout is configured, the subprocess is killed on expiry;
// otherwise the caller-supplied context owns cancellation.
func (e *Engine) Render(ctx context.Context, spec RenderSpec) error {
	if len(spec.Inputs) == 0 {
		return errors.New("render: no inputs")
	}
	if strings.TrimSpace(spec.OutputPath) == "" {
		return errors.New("render: empty output path")
	}

	if e.renderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.renderTimeout)
		defer cancel()
	}

	args := renderArgs(spec)
	started := time.Now()
	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg render: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg render: %w: %s", err, strings.TrimSpace(string(output)))
	}

	e.logger.Debug("render completed",
		logging.Int("inputs", len(spec.Inputs)),
		logging.Duration("elapsed", time.Since(started)),
		logging.String("output", spec.OutputPath),
	)
	return nil
}

func renderArgs(spec RenderSpec) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, input := range spec.Inputs {
		args = append(args, "-i", input)
	}
	if spec.FilterComplex != "" {
		args = append(args, "-filter_complex", spec.FilterComplex)
	}
	if spec.OutputLabel != "" {
		args = append(args, "-map", spec.OutputLabel)
	}
	if spec.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(spec.SampleRate))
	}
	if spec.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(spec.Channels))
	}
	args = append(args, "-c:a", "pcm_s16le", spec.OutputPath)
	return args
}
