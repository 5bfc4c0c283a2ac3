// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of decimal
//              parsing, unit handling, calibration loading and calculation
//              input validation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Reduced to the codes of the correction engine

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Calibration data and storage
	CodeDatabaseError         Code = "DATABASE_ERROR"
	CodeDataCorruption        Code = "DATA_CORRUPTION"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"

	// Configuration
	CodeConfigError Code = "CONFIG_ERROR"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeDatabaseError, CodeDataCorruption, CodeServiceInitialization,
		CodeConfigError,
		CodeValidationFailed, CodeInvalidFormat, CodeValueOutOfRange:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDatabaseError, CodeDataCorruption, CodeServiceInitialization:
		return "calibration"
	case CodeConfigError:
		return "configuration"
	case CodeValidationFailed, CodeInvalidFormat, CodeValueOutOfRange:
		return "validation"
	default:
		return "generic"
	}
}

// ExitCode maps an error code onto a process exit status for the CLI.
func (c Code) ExitCode() int {
	switch c {
	case CodeValidationFailed, CodeValueOutOfRange:
		return 2
	case CodeInvalidInput, CodeInvalidFormat, CodeConfigError:
		return 64
	case CodeNotFound:
		return 66
	case CodeDatabaseError, CodeDataCorruption, CodeServiceInitialization:
		return 65
	default:
		return 1
	}
}
