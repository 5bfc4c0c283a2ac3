package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	mdwlog "github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/pkg/core/config"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("calc")

	if cfg.Name != "calc" {
		t.Errorf("Name = %v, want calc", cfg.Name)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Output = %v, want stderr", cfg.Output)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig("calc", config.LogConfig{Level: "debug", Format: "json"})

	if cfg.Level != "debug" || cfg.Format != "json" {
		t.Errorf("FromConfig() = %+v", cfg)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Output = %v, want stderr", cfg.Output)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerConfig{
		Name:              "calc",
		Level:             "info",
		Format:            "logfmt",
		AdditionalOutputs: []io.Writer{&buf},
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("shown", mdwlog.Fields{"q": 0.98})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "q=0.98") {
		t.Errorf("output = %q, want info entry with field", out)
	}
}

func TestNewLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerConfig{
		Level:             "warn",
		Format:            "text",
		Verbose:           true,
		AdditionalOutputs: []io.Writer{&buf},
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("verbose logger dropped debug entry: %q", buf.String())
	}
}

func TestNewLogger_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoggerConfig
	}{
		{"level", LoggerConfig{Level: "loud"}},
		{"format", LoggerConfig{Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLogger(tt.cfg)
			if !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
				t.Errorf("NewLogger() error = %v, want CONFIG_ERROR", err)
			}
		})
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "viscocorrect.log")
	t.Cleanup(func() { _ = CloseOutputs() })

	first, err := NewLogger(LoggerConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	second, err := NewLogger(LoggerConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	first.Info("first entry")
	second.Info("second entry")
	if err := CloseOutputs(); err != nil {
		t.Fatalf("CloseOutputs() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "first entry") || !strings.Contains(string(data), "second entry") {
		t.Errorf("log file = %q", data)
	}
}

func TestNewSimpleLogger(t *testing.T) {
	if NewSimpleLogger("calc") == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger, err := NewLogger(LoggerConfig{Level: "info", Format: "logfmt", Output: "stderr"})
	if err != nil {
		b.Fatal(err)
	}
	logger = logger.WithOutput(&buf)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", mdwlog.Fields{"iteration": i})
	}
}
