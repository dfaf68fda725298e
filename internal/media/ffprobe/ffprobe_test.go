package ffprobe_test

import (
	"context"
	"encoding/json"
	"testing"

	"mixdown/internal/media/ffprobe"
)

const samplePayload = `{
  "streams": [
    {"index": 0, "codec_name": "pcm_s16le", "codec_type": "audio", "sample_rate": "44100", "channels": 2, "duration": "12.480000"}
  ],
  "format": {"filename": "voice.wav", "nb_streams": 1, "duration": "12.480000", "size": "2203052", "format_name": "wav"}
}`

func TestResultAccessors(t *testing.T) {
	var result ffprobe.Result
	if err := json.Unmarshal([]byte(samplePayload), &result); err != nil {
		t.Fatalf("unmarshal sample payload: %v", err)
	}

	if got := result.AudioStreamCount(); got != 1 {
		t.Fatalf("expected 1 audio stream, got %d", got)
	}
	if got := result.DurationSeconds(); got != 12.48 {
		t.Fatalf("unexpected duration: %g", got)
	}
	if got := result.SampleRate(); got != 44100 {
		t.Fatalf("unexpected sample rate: %d", got)
	}
}

func TestResultHandlesMissingFields(t *testing.T) {
	var result ffprobe.Result
	if err := json.Unmarshal([]byte(`{"streams": [], "format": {}}`), &result); err != nil {
		t.Fatalf("unmarshal empty payload: %v", err)
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected zero duration, got %g", result.DurationSeconds())
	}
	if result.SampleRate() != 0 {
		t.Fatalf("expected zero sample rate, got %d", result.SampleRate())
	}
	if result.AudioStreamCount() != 0 {
		t.Fatalf("expected zero audio streams, got %d", result.AudioStreamCount())
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := ffprobe.Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
