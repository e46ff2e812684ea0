package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutputAndLevels(t *testing.T) {
	var buf bytes.Buffer
	old := Logger
	defer func() { Logger = old }()

	SetOutput(&buf, slog.LevelWarn)

	Debug("debug message")
	Info("info message")
	Warn("warn message", "key", "value")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below level were logged: %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("error message missing from output: %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("structured attribute missing from output: %q", out)
	}
}

func TestSetupWritesFile(t *testing.T) {
	old := Logger
	defer func() { Logger = old }()

	dir := t.TempDir()
	closeFn, err := Setup(dir)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	Info("hello from test")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nbaterm.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message, got %q", string(data))
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("NBATERM_LOG_LEVEL", tt.value)
			if got := levelFromEnv(); got != tt.want {
				t.Errorf("levelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
