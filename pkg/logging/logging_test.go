package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Warn("Bill saved", "bill_id", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO record written at WARN level: %q", out)
	}
	if !strings.Contains(out, "Bill saved") || !strings.Contains(out, "bill_id=abc") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color codes for a buffer: %q", out)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log-*.txt")
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if isTerminal(f) {
		t.Error("regular file reported as terminal")
	}
	if isTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}

	slog.New(NewHandler(f, slog.LevelInfo)).Info("Wallet saved", "wallet_id", 1)
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Errorf("expected no color codes in a file: %q", data)
	}
}
