// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config reads TOML and YAML documents into a nested
//              map with typed, dot separated key access.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-19 v0.2.0: Dropped hot reloading and rule validation

/*
Package config provides untyped configuration access for documents whose
shape is only partly known in advance, such as calibration tables or the
CLI configuration before it is decoded into its typed form.

Loading

	cfg, err := config.Load("viscocorrect.toml")   // format from extension
	cfg, err := config.LoadFromString(doc, config.FormatYAML)
	cfg, err := config.LoadFromReader(r, config.FormatTOML)

Discover walks DiscoveryOptions.Paths x Filenames x Extensions and loads the
first file that exists. DefaultDiscoveryOptions searches the working
directory, ./config, the user configuration directory and /etc/viscocorrect.

Access

Keys use dot notation for nested tables:

	level := cfg.GetString("log.level", "info")
	timeout := cfg.GetDuration("calibration.timeout", 5*time.Second)
	q, err := cfg.GetFloatSlice("q")

When an environment prefix is set, PREFIX_LOG_LEVEL overrides log.level
for the scalar getters. Slices are never taken from the environment.

Errors

Failures are *error.Error values with the codes NOT_FOUND (missing file or
key), INVALID_FORMAT (parse errors or non-numeric array elements) and
CONFIG_ERROR (I/O failures).

Thread Safety

A Config may be read from multiple goroutines. Set takes a write lock.
*/
package config
