package history_test

import (
	"context"
	"path/filepath"
	"testing"

	"mixdown/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestAddAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, history.Record{
		RequestID:      "req-1",
		VoiceRef:       "voice/a.wav",
		MoodTag:        "calm",
		Status:         "completed",
		OutputRef:      "mixes/a.wav",
		DuckingApplied: true,
		SpeechSegments: 4,
		SfxTriggered:   2,
		DurationSec:    93.5,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}

	if _, err := store.Add(ctx, history.Record{
		RequestID:    "req-2",
		VoiceRef:     "voice/b.wav",
		Status:       "failed",
		ErrorMessage: "render exited with status 1",
	}); err != nil {
		t.Fatalf("add second: %v", err)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].RequestID != "req-2" {
		t.Fatalf("expected req-2 first, got %s", records[0].RequestID)
	}
	if records[1].DuckingApplied != true || records[1].SpeechSegments != 4 {
		t.Fatalf("round trip mismatch: %+v", records[1])
	}
	if records[0].ErrorMessage != "render exited with status 1" {
		t.Fatalf("error message mismatch: %+v", records[0])
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 record, got %d", len(limited))
	}
}

func TestGetByRequestID(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, history.Record{RequestID: "req-9", VoiceRef: "v.wav", Status: "completed"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	record, err := store.GetByRequestID(ctx, "req-9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record == nil || record.VoiceRef != "v.wav" {
		t.Fatalf("unexpected record %+v", record)
	}

	missing, err := store.GetByRequestID(ctx, "absent")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown request, got %+v", missing)
	}
}

func TestStatsAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, status := range []string{"completed", "completed", "failed"} {
		if _, err := store.Add(ctx, history.Record{RequestID: "r", VoiceRef: "v", Status: status}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats["completed"] != 2 || stats["failed"] != 1 {
		t.Fatalf("stats = %v", stats)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d", removed)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty history, got %d", len(records))
	}
}

func TestOpenRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := history.Open(path); err == nil {
		t.Fatal("expected second open to fail while lock is held")
	}
}

func TestReopenPreservesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Add(context.Background(), history.Record{RequestID: "req-1", VoiceRef: "v", Status: "completed"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].RequestID != "req-1" {
		t.Fatalf("records = %+v", records)
	}
}
