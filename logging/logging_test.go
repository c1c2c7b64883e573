package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"Warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if got := levelFromEnv(); got != slog.LevelDebug {
		t.Errorf("expected debug, got %v", got)
	}
	t.Setenv("LOG_LEVEL", "nonsense")
	if got := levelFromEnv(); got != slog.LevelInfo {
		t.Errorf("expected info fallback, got %v", got)
	}
}

func TestHandlerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Warn("shown", "groups", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}
	if !logger.Handler().Enabled(context.Background(), slog.LevelError) {
		t.Error("error level should be enabled")
	}
}

func TestSetupFromString(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	if err := SetupFromString("bogus"); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := SetupFromString("debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled after SetupFromString(\"debug\")")
	}
}
