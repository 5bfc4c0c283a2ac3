// Package error provides the structured error type used across viscocorrect.
//
// Package: error
// Title: Structured Error Handling
// Description: Errors carry a Code, a Severity, free-form details and the
//              operation that failed. Arithmetic never returns errors; this
//              package is used by loaders, configuration and the CLI.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Codes for calibration loading and input validation
//
// Usage:
//
//	import mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
//
//	err := mdwerror.New("coefficient row missing").
//		WithCode(mdwerror.CodeDataCorruption).
//		WithDetail("id", 3).
//		WithOperation("calibration.FromRows")
//
//	if mdwerror.HasCode(err, mdwerror.CodeDataCorruption) {
//		// refuse to calculate
//	}
package error
