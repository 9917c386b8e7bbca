package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "INFO")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("test message", "key", "value")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("Log entry is not valid JSON: %v", err)
	}
	if entry["msg"] != "test message" {
		t.Errorf("Expected msg 'test message', got %v", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("Expected key 'value', got %v", entry["key"])
	}
}

func TestNewLogger_LevelFiltersDebug(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "INFO")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("should be filtered")
	logger.Info("should appear")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, "debug.log"))
	if strings.Contains(string(data), "should be filtered") {
		t.Error("Debug message should be filtered at INFO level")
	}
	if !strings.Contains(string(data), "should appear") {
		t.Error("Info message should appear at INFO level")
	}
}

func TestWith_AttributesAppearInEntries(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "DEBUG")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.With("component", "watcher")
	child.Info("attributed message")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, "debug.log"))
	if !strings.Contains(string(data), `"component":"watcher"`) {
		t.Errorf("Expected persistent attribute in entry, got %s", data)
	}
}

func TestClose_Idempotent(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "INFO")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}

func TestSlog_CarriesAttributes(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, "DEBUG")
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.With("source", "bin").Slog().Debug("via slog")
	logger.Close()

	data, _ := os.ReadFile(filepath.Join(dir, "debug.log"))
	if !strings.Contains(string(data), `"source":"bin"`) {
		t.Errorf("Expected attribute via Slog accessor, got %s", data)
	}
}
