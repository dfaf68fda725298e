package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"mixdown/internal/media/ffprobe"
)

// ExtractAnalysisAudio transcodes source to a mono 16kHz WAV at dest. The
// downmix is analysis-only; the final mix always renders from the original
// asset.
func (e *Engine) ExtractAnalysisAudio(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg analysis transcode: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Duration probes the container duration of path in seconds.
func (e *Engine) Duration(ctx context.Context, path string) (float64, error) {
	result, err := ffprobe.Inspect(ctx, e.probeBinary, path)
	if err != nil {
		return 0, err
	}
	return result.DurationSeconds(), nil
}
