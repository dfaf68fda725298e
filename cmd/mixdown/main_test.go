package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixdown/internal/config"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
staging_dir = %q
library_dir = %q
output_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`,
		filepath.Join(base, "staging"),
		filepath.Join(base, "library"),
		filepath.Join(base, "output"),
		filepath.Join(base, "logs"),
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitCreatesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("output should name the target: %q", output)
	}

	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("generated sample must parse: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Ducking.SpeechLevelDb >= cfg.Ducking.SilenceLevelDb {
		t.Fatalf("sample thresholds inverted: %+v", cfg.Ducking)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite init: %v", err)
	}
}

func TestMixCommandRequiresVoiceRef(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, err := runCommand(t, "--config", configPath, "mix"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestHistoryListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(output, "No mix history recorded") {
		t.Fatalf("output = %q", output)
	}
}

func TestStagingListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "staging", "list")
	if err != nil {
		t.Fatalf("staging list: %v", err)
	}
	if !strings.Contains(output, "No mix workspaces found") {
		t.Fatalf("output = %q", output)
	}
}

func TestStagingCleanEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "staging", "clean")
	if err != nil {
		t.Fatalf("staging clean: %v", err)
	}
	if !strings.Contains(output, "No stale workspaces to clean") {
		t.Fatalf("output = %q", output)
	}
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	configPath := writeTestConfig(t)

	output, err := runCommand(t, "--config", configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	if !strings.Contains(output, "not configured") {
		t.Fatalf("output = %q", output)
	}
}
