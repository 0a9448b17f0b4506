package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	// Test at debug level so all messages are captured
	Initialize(LevelDebug, &buf)

	// These should not panic
	Info("test info", "key", "value")
	Debug("test debug", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	if buf.Len() == 0 {
		t.Error("expected log output, got none")
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelQuiet, &buf)

	Info("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message logged in quiet mode")
	}

	Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("warn message suppressed in quiet mode")
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelInfo, &buf)

	Progress("Fetching %d/%d", 1, 3)
	ProgressDone()

	out := buf.String()
	if !strings.Contains(out, "Fetching 1/3") {
		t.Errorf("expected progress output, got %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("expected progress completion, got %q", out)
	}
}

func TestProgressQuiet(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelQuiet, &buf)

	Progress("Fetching")
	ProgressDone()

	if buf.Len() != 0 {
		t.Errorf("expected no progress output in quiet mode, got %q", buf.String())
	}
}

func TestLogLevelChecks(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		level   int
		isInfo  bool
		isDebug bool
	}{
		{LevelQuiet, false, false},
		{LevelInfo, true, false},
		{LevelDebug, true, true},
	}

	for _, tt := range tests {
		Initialize(tt.level, &buf)

		if IsInfo() != tt.isInfo {
			t.Errorf("at level %d: expected IsInfo()=%v, got %v", tt.level, tt.isInfo, IsInfo())
		}
		if IsDebug() != tt.isDebug {
			t.Errorf("at level %d: expected IsDebug()=%v, got %v", tt.level, tt.isDebug, IsDebug())
		}
	}
}

func TestSetOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	Initialize(LevelInfo, &buf1)
	Info("message 1")

	SetOutput(&buf2)
	Progress("message 2")

	if buf1.Len() == 0 {
		t.Error("expected output in first buffer")
	}
	if !strings.Contains(buf2.String(), "message 2") {
		t.Error("expected progress output in second buffer")
	}
}
