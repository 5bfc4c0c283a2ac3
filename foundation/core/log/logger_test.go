// File: logger_test.go
// Title: Logger Tests
// Description: Tests for levels, formatters, contextual clones and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
)

func newBufferLogger(format Format, level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithConfig(Config{Level: level, Format: format, Output: &buf}), &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"Text", FormatText, false},
		{"console", FormatConsole, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered entries: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("got %d lines, want 2: %q", strings.Count(out, "\n"), out)
	}
}

func TestJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)
	logger.WithName("viscocorrect").
		WithComponent("calculator").
		WithProject("p-1").
		Debug("scale positions", Fields{"flow_pos": 132.5})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v, output %q", err, buf.String())
	}

	want := map[string]interface{}{
		"level":      "debug",
		"message":    "scale positions",
		"logger":     "viscocorrect",
		"component":  "calculator",
		"project_id": "p-1",
		"flow_pos":   132.5,
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %v, want %v", k, decoded[k], v)
		}
	}
}

func TestTextOutputSortedFields(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)
	logger.Info("calculated", Fields{"q": 0.98, "eta": 0.75, "h": 0.97})

	if !strings.Contains(buf.String(), "[eta=0.75 h=0.97 q=0.98]") {
		t.Errorf("fields not sorted: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[INF]") {
		t.Errorf("missing level marker: %q", buf.String())
	}
}

func TestLogfmtOutput(t *testing.T) {
	logger, buf := newBufferLogger(FormatLogfmt, LevelInfo)
	logger.WithComponent("units").WarnWithErr("conversion", errors.New("zero density"), Fields{"unit": "cP"})

	out := buf.String()
	for _, want := range []string{`level=warn`, `message="conversion"`, `component=units`, `unit="cP"`, `error="zero density"`} {
		if !strings.Contains(out, want) {
			t.Errorf("logfmt output missing %q: %q", want, out)
		}
	}
}

func TestConsoleColors(t *testing.T) {
	logger, buf := newBufferLogger(FormatConsole, LevelInfo)
	logger.Error("boom")
	if !strings.HasPrefix(buf.String(), LevelError.Color()) {
		t.Errorf("console output not colored: %q", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\033[0m\n") {
		t.Errorf("console output not reset: %q", buf.String())
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(FormatText, LevelInfo)
	child := parent.WithField("source", "csv")

	parent.Info("parent")
	child.Info("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Contains(lines[0], "source=csv") {
		t.Errorf("parent logger gained child field: %q", lines[0])
	}
	if !strings.Contains(lines[1], "source=csv") {
		t.Errorf("child logger missing field: %q", lines[1])
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"low", mdwerror.New("out of range").WithCode(mdwerror.CodeValueOutOfRange), "info"},
		{"high", mdwerror.New("load").WithCode(mdwerror.CodeServiceInitialization), "error"},
		{"critical", mdwerror.New("bad table").WithCode(mdwerror.CodeDataCorruption), "error"},
		{"plain", errors.New("plain"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(FormatJSON, LevelTrace)
			logger.LogError(tt.err)

			var decoded map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}
			if decoded["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", decoded["level"], tt.wantLevel)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard() logger should not enable any level")
	}
	logger.Error("nothing happens")
}

func TestConcurrentWrites(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("n", n).Info("tick")
		}(i)
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 20 {
		t.Errorf("got %d lines, want 20", got)
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(FormatJSON, LevelDebug)

	timer := logger.StartTimer("calibration.load").WithField("source", "csv")
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Errorf("Stop() = %v, want > 0", elapsed)
	}
	if timer.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
	if again := timer.Stop(); again != 0 {
		t.Errorf("second Stop() = %v, want 0", again)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["message"] != "calibration.load completed" {
		t.Errorf("message = %v", decoded["message"])
	}
	if decoded["source"] != "csv" {
		t.Errorf("source = %v, want csv", decoded["source"])
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(FormatText, LevelInfo)
	logger.StartTimer("calibration.load").StopWithError(errors.New("missing row"))

	out := buf.String()
	if !strings.Contains(out, "calibration.load failed") || !strings.Contains(out, `error="missing row"`) {
		t.Errorf("unexpected output %q", out)
	}
}
