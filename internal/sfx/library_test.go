package sfx_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mixdown/internal/services"
	"mixdown/internal/sfx"
)

func TestLibraryResolveLoadsOnce(t *testing.T) {
	loads := 0
	library := sfx.NewLibrary(func() (map[string]string, error) {
		loads++
		return map[string]string{"chime": "sfx/chime.wav"}, nil
	})

	for i := 0; i < 3; i++ {
		ref, err := library.Resolve("chime")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if ref != "sfx/chime.wav" {
			t.Fatalf("ref = %q", ref)
		}
	}
	if loads != 1 {
		t.Fatalf("expected single catalog load, got %d", loads)
	}
}

func TestLibraryResolveUnknownSound(t *testing.T) {
	library := sfx.NewLibrary(func() (map[string]string, error) {
		return map[string]string{}, nil
	})
	_, err := library.Resolve("thunder")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestLibraryInvalidateReloads(t *testing.T) {
	loads := 0
	library := sfx.NewLibrary(func() (map[string]string, error) {
		loads++
		return map[string]string{"chime": "sfx/chime.wav"}, nil
	})

	if _, err := library.Resolve("chime"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	library.Invalidate()
	if _, err := library.Resolve("chime"); err != nil {
		t.Fatalf("resolve after invalidate: %v", err)
	}
	if loads != 2 {
		t.Fatalf("expected reload after invalidate, got %d loads", loads)
	}
}

func TestLibraryLoaderFailureIsRetryable(t *testing.T) {
	library := sfx.NewLibrary(func() (map[string]string, error) {
		return nil, errors.New("storage offline")
	})
	_, err := library.Resolve("chime")
	if err == nil {
		t.Fatal("expected loader error")
	}
	if !services.IsRetryable(err) {
		t.Fatalf("loader failures should be retryable: %v", err)
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Chime.wav", "whoosh.flac", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "rumble.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write nested: %v", err)
	}

	catalog, err := sfx.DirLoader(dir)()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog) != 3 {
		t.Fatalf("catalog = %v", catalog)
	}
	if catalog["chime"] != filepath.Join(dir, "Chime.wav") {
		t.Fatalf("chime = %q", catalog["chime"])
	}
	if _, ok := catalog["notes"]; ok {
		t.Fatal("non-audio files must be skipped")
	}
	if catalog["rumble"] != filepath.Join(dir, "nested", "rumble.mp3") {
		t.Fatalf("rumble = %q", catalog["rumble"])
	}
}

func TestDirLoaderMissingDirectory(t *testing.T) {
	catalog, err := sfx.DirLoader(filepath.Join(t.TempDir(), "absent"))()
	if err != nil {
		t.Fatalf("missing directory should load empty, got %v", err)
	}
	if len(catalog) != 0 {
		t.Fatalf("catalog = %v", catalog)
	}
}
