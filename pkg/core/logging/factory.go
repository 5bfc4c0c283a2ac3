// ============================================================================
// viscocorrect - Viscosity Correction for Centrifugal Pumps
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	mdwlog "github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/pkg/core/config"
)

var (
	// Log files opened by NewLogger, shared by path
	fileOutputs   = make(map[string]*os.File)
	fileOutputsMu sync.Mutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name, usually the command
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console, logfmt)
	Format string

	// Output is stderr, stdout or a file path (default: stderr)
	Output string

	// Verbose lowers the level to debug
	Verbose bool

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
		Output: "stderr",
	}
}

// FromConfig builds a LoggerConfig from the [log] section
func FromConfig(name string, cfg config.LogConfig) LoggerConfig {
	lc := DefaultLoggerConfig(name)
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	if cfg.Output != "" {
		lc.Output = cfg.Output
	}
	return lc
}

// NewLogger creates a foundation logger. Unknown levels and formats are
// configuration errors.
func NewLogger(cfg LoggerConfig) (*mdwlog.Logger, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, configError(err, "level", cfg.Level)
	}
	if cfg.Verbose && level > mdwlog.LevelDebug {
		level = mdwlog.LevelDebug
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, configError(err, "format", cfg.Format)
	}

	output, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	}), nil
}

// NewSimpleLogger creates a text logger on stderr, falling back to the
// foundation default if the configuration cannot be applied
func NewSimpleLogger(name string) *mdwlog.Logger {
	logger, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return mdwlog.New().WithName(name)
	}
	return logger
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	fileOutputsMu.Lock()
	defer fileOutputsMu.Unlock()

	if f, ok := fileOutputs[output]; ok {
		return f, nil
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return nil, configError(err, "output", output)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, configError(err, "output", output)
	}
	fileOutputs[output] = f
	return f, nil
}

// CloseOutputs closes every log file opened by NewLogger
func CloseOutputs() error {
	fileOutputsMu.Lock()
	defer fileOutputsMu.Unlock()

	var first error
	for path, f := range fileOutputs {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(fileOutputs, path)
	}
	return first
}

func configError(err error, key, value string) error {
	return mdwerror.Wrap(err, "invalid log "+key).
		WithCode(mdwerror.CodeConfigError).
		WithOperation("logging.NewLogger").
		WithDetail(key, value)
}
