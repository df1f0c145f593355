// ABOUTME: Tests for logger construction.
// ABOUTME: Checks level parsing and file output.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "error")

	logger.Warn("hidden")
	logger.Error("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected warn to be filtered at error level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("expected error line with fields, got %q", out)
	}
}

func TestNewUnknownLevelDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "chatty")

	logger.Info("info line")
	logger.Warn("warn line")

	out := buf.String()
	if strings.Contains(out, "info line") {
		t.Error("expected info to be filtered")
	}
	if !strings.Contains(out, "warn line") {
		t.Error("expected warn to be logged")
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jot.log")

	logger, closer, err := ToFile(path, "info")
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	logger.Info("to file")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected log line in file, got %q", string(data))
	}
}
