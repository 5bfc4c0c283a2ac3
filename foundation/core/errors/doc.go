// Package errors holds module-scoped constructors for *mdwerror.Error values.
//
// Package: errors
// Title: Domain Error Constructors
// Description: Every error raised by units, calibration, project and the CLI
//              goes through one of these constructors so that module,
//              operation and code are filled in consistently.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Usage:
//
//	err := errors.NewErrorBuilder(errors.ModuleCalibration).
//		Operation("FromRows").
//		Code(mdwerror.CodeDataCorruption).
//		Messagef("row %d missing", id).
//		Build()
package errors
