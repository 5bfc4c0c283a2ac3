// ============================================================================
// viscocorrect - Viscosity Correction for Centrifugal Pumps
// ============================================================================
//
// Package:     version
// Description: Build version information, set via -ldflags
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/msto63/viscocorrect/pkg/core/version.Version=1.2.0"
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// CalibrationTable names the chart the built-in coefficients were fitted to
const CalibrationTable = "HI 9.6.7-2010"

// BuildInfo is the structured form of Info
type BuildInfo struct {
	Version     string `json:"version"`
	GitCommit   string `json:"git_commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
	Calibration string `json:"calibration"`
}

// Get returns the build information of the running binary
func Get() BuildInfo {
	return BuildInfo{
		Version:     Version,
		GitCommit:   GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Calibration: CalibrationTable,
	}
}

// Info returns a one-line version string
func Info() string {
	b := Get()
	return fmt.Sprintf("viscocorrect %s (commit %s, built %s, %s %s)",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform)
}
