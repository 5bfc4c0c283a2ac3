// File: doc.go
// Title: Package Documentation for mathx
// Description: Exact decimal values and curve functions.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic and business functions
// - 2025-01-26 v0.2.0: Enhanced documentation with comprehensive structure and examples
// - 2026-10-19 v0.3.0: Fixed width Decimal, curve functions

// Package mathx provides exact decimal values and the curve functions used to
// evaluate fitted charts.
//
// Decimal
//
// A Decimal stores a number as an unsigned 64 bit magnitude and a number of
// decimal places, so "0.06" is held as 6 with two places and multiplies
// without binary rounding error. Parsing accepts an optional sign, one
// decimal point and an optional exponent:
//
//	q := mathx.Parse("120.5")     // 1205, 1 place
//	f := mathx.Parse("6e-2")      // 6, 2 places
//	q.Mul(f).String()             // "7.23"
//
// Decimals never return errors from arithmetic. Malformed input produces a
// value in the NaN state, values that do not fit produce Infinity, and both
// states propagate through later operations. Err converts the state into an
// error for callers that want one.
//
// Multiplication, addition and subtraction are exact while the magnitudes
// fit; when they do not, trailing decimal places are dropped. Division goes
// through float64 unless the magnitudes divide evenly.
//
// Curve functions
//
// Polynomial, Linear and Logistic are small value types with an Eval method.
// They are generic over float32 and float64:
//
//	p := mathx.Polynomial[float64]{1, 0, 1}  // x^2 + 1
//	p.Eval(2)                                // 5
//
//	l := mathx.NewLinear(2.0, 1.0, 0.0)      // y = 2(x-1)
//	l.SolveForX(4)                           // 3
package mathx
