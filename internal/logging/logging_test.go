package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"warning", LevelWarn, true},
		{" error ", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected debug and info to be filtered, got: %s", output)
	}
	if !strings.Contains(output, "[WARN] warn") {
		t.Errorf("expected WARN in output, got: %s", output)
	}
	if !strings.Contains(output, "[ERROR] error") {
		t.Errorf("expected ERROR in output, got: %s", output)
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf, Prefix: "keyplay"})
	logger.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	}

	logger.WithFields(map[string]any{"run": "r1", "cursor": 3}).Info("line %s", "PRESS a")

	want := "2024-03-01T12:30:00.000 [INFO] keyplay: line PRESS a {cursor=3, run=r1}\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})

	_ = logger.WithComponent("interp")
	logger.Info("plain")

	if strings.Contains(buf.String(), "component=") {
		t.Errorf("parent logger picked up child field: %s", buf.String())
	}
}

func TestLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelError, Output: &buf})
	child := logger.WithField("k", "v")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got: %s", buf.String())
	}
}

func TestNull(t *testing.T) {
	logger := Null()
	logger.Error("nothing")
	logger.WithField("a", 1).Error("still nothing")
}
