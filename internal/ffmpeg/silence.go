package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DetectSilence runs the silencedetect filter over path and returns the full
// diagnostic text stream. The silence markers are log lines, not structured
// output, so stderr must not be filtered below info level.
func (e *Engine) DetectSilence(ctx context.Context, path string, noiseFloorDb float64, minSilence time.Duration) (string, error) {
	filter := fmt.Sprintf("silencedetect=noise=%gdB:d=%g", noiseFloorDb, minSilence.Seconds())
	args := []string{
		"-hide_banner",
		"-nostats",
		"-i", path,
		"-af", filter,
		"-f", "null",
		"-",
	}
	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg silencedetect: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
