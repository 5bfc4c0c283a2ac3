// File: domain.go
// Title: Domain Error Constructors
// Description: Constructors for the failures raised outside the arithmetic
//              layer: decimal sentinels surfaced as errors, unknown unit
//              names, rejected calculation input and calibration loading.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: InvalidInput, OutOfRange, NotFound helpers
// - 2026-10-19 v0.2.0: Decimal, unit, calibration and context constructors

package errors

import (
	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
)

// InvalidInput reports input that does not have the expected shape
func InvalidInput(module, operation string, input interface{}, expected string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mdwerror.CodeInvalidInput).
		Messagef("invalid input for %s.%s", module, operation).
		Detail("input", input).
		Detail("expected", expected).
		Build()
}

// OutOfRange reports a value outside [min, max]
func OutOfRange(module, operation string, value, min, max interface{}) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mdwerror.CodeValueOutOfRange).
		Messagef("validation failed: value %v out of range [%v, %v]", value, min, max).
		Detail("value", value).
		Detail("min", min).
		Detail("max", max).
		Build()
}

// NotFound reports a missing resource such as a calibration file
func NotFound(module, operation, resource string) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(mdwerror.CodeNotFound).
		Messagef("%s not found", resource).
		Detail("resource", resource).
		Build()
}

// DecimalParse reports a string that is not a decimal number
func DecimalParse(input string) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("Parse").
		Code(mdwerror.CodeInvalidFormat).
		Messagef("not a decimal number: %q", input).
		Detail("input", input).
		Build()
}

// DecimalOverflow reports a value that does not fit the decimal representation
func DecimalOverflow(input string) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("Parse").
		Code(mdwerror.CodeValueOutOfRange).
		Messagef("decimal out of range: %q", input).
		Detail("input", input).
		Build()
}

// UnknownUnit reports a unit symbol that is not known for quantity
func UnknownUnit(quantity, symbol string, known []string) *mdwerror.Error {
	return NewErrorBuilder(ModuleUnits).
		Operation("Parse").
		Code(mdwerror.CodeInvalidInput).
		Messagef("unknown %s unit %q", quantity, symbol).
		Detail("quantity", quantity).
		Detail("unit", symbol).
		Detail("known", known).
		Build()
}

// CalibrationInvalid reports a coefficient table that cannot drive the calculator
func CalibrationInvalid(operation, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleCalibration).
		Operation(operation).
		Code(mdwerror.CodeDataCorruption).
		Messagef("invalid calibration data: %s", reason).
		Build()
}

// CalibrationLoad wraps a failure of a calibration source
func CalibrationLoad(source string, cause error) *mdwerror.Error {
	code := mdwerror.GetCode(cause)
	if code == mdwerror.CodeUnknown {
		code = mdwerror.CodeServiceInitialization
	}
	return NewErrorBuilder(ModuleCalibration).
		Operation("Load").
		Code(code).
		Cause(cause).
		Messagef("loading calibration from %s", source).
		Detail("source", source).
		Build()
}

// ContextNotReady reports use of a calculation context before or after a
// failed initialization
func ContextNotReady(cause error) *mdwerror.Error {
	b := NewErrorBuilder(ModuleCalibration).
		Operation("Context").
		Code(mdwerror.CodeServiceInitialization).
		Message("calculation context not initialized")
	if cause != nil {
		b = b.Cause(cause)
	}
	return b.Build()
}
