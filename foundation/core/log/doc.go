// Package log provides structured logging for viscocorrect.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with JSON, text, console and
//              logfmt output. Loggers are immutable values; contextual
//              clones carry a component name and optionally a project ID.
//              Structured errors from core/error are logged with their code
//              and details.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Usage:
//
//	logger := log.New().
//		WithLevel(log.LevelDebug).
//		WithFormat(log.FormatLogfmt).
//		WithComponent("calculator")
//
//	logger.Debug("scale positions", log.Fields{"flow_pos": 132.4, "head_pos": 388.0})
//
//	timer := logger.StartTimer("calibration.load")
//	// ... load coefficients
//	timer.Stop()
package log
