package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixdown/internal/logging"
	"mixdown/internal/services"
)

func TestNewWritesConsoleFormat(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "mixdown.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "mixer")
	logger.Info("mix completed", logging.Int("speech_segments", 4), logging.Bool("ducking_applied", true))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, "INFO mixer: mix completed") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "speech_segments=4") || !strings.Contains(line, "ducking_applied=true") {
		t.Fatalf("expected attributes in log line: %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsStageAndCorrelation(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := services.WithStage(context.Background(), "rendering")
	ctx = services.WithRequestID(ctx, "req-42")

	logging.WithContext(ctx, base).Info("render started")

	out := buf.String()
	if !strings.Contains(out, "stage=rendering") {
		t.Fatalf("expected stage field, got %q", out)
	}
	if !strings.Contains(out, "correlation_id=req-42") {
		t.Fatalf("expected correlation field, got %q", out)
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	// Must not panic and must report disabled at every level.
	logger.Error("ignored", logging.Error(nil))
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should be disabled")
	}
}
