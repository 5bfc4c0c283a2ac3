// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so the CLI and the logging
//              layer can decide how loudly a failure is reported.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severity mapping for calibration and validation codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a rejected input, e.g. a value outside the chart
	SeverityLow Severity = iota

	// SeverityMedium indicates a recoverable failure
	SeverityMedium

	// SeverityHigh indicates that calculations cannot be performed,
	// e.g. calibration data could not be loaded
	SeverityHigh

	// SeverityCritical indicates corrupted calibration data
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDataCorruption:
		return SeverityCritical

	case CodeDatabaseError, CodeServiceInitialization:
		return SeverityHigh

	case CodeInvalidInput, CodeNotFound, CodeValidationFailed,
		CodeInvalidFormat, CodeValueOutOfRange:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
