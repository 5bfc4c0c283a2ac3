// File: functions.go
// Title: Curve Functions
// Description: Polynomial, linear and logistic functions used to evaluate
//              curves fitted to digitized charts.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Business helpers (percentage, compound interest)
// - 2026-10-19 v0.2.0: Replaced by curve functions

package mathx

import "math"

// Float is the set of types the curve functions are defined for
type Float interface {
	~float32 | ~float64
}

// Function is a real function of one variable
type Function[T Float] interface {
	Eval(x T) T
}

// Polynomial holds coefficients ordered from the highest power down to the
// constant term: {a, b, c} is a*x^2 + b*x + c.
type Polynomial[T Float] []T

// Eval evaluates the polynomial at x using Horner's method
func (p Polynomial[T]) Eval(x T) T {
	var y T
	for _, c := range p {
		y = y*x + c
	}
	return y
}

// Degree returns the degree, -1 for the empty polynomial
func (p Polynomial[T]) Degree() int {
	return len(p) - 1
}

// Linear is the line through (X0, Y0) with the given slope
type Linear[T Float] struct {
	Slope T
	X0    T
	Y0    T
}

// NewLinear creates the line through (x0, y0) with the given slope
func NewLinear[T Float](slope, x0, y0 T) Linear[T] {
	return Linear[T]{Slope: slope, X0: x0, Y0: y0}
}

// Eval returns Slope*(x-X0)+Y0
func (l Linear[T]) Eval(x T) T {
	return l.Slope*(x-l.X0) + l.Y0
}

// Intercept returns the value at x = 0
func (l Linear[T]) Intercept() T {
	return l.Y0 - l.Slope*l.X0
}

// SolveForX returns the x at which the line reaches y, or 0 for a
// horizontal line.
func (l Linear[T]) SolveForX(y T) T {
	if l.Slope == 0 {
		return 0
	}
	return (y - l.Intercept()) / l.Slope
}

// Logistic is L / (1 + e^(-K(x-X0)))
type Logistic[T Float] struct {
	L  T
	K  T
	X0 T
}

// NewLogistic creates a logistic curve with supremum l, steepness k and
// midpoint x0
func NewLogistic[T Float](l, k, x0 T) Logistic[T] {
	return Logistic[T]{L: l, K: k, X0: x0}
}

// Eval evaluates the curve at x
func (f Logistic[T]) Eval(x T) T {
	return T(float64(f.L) / (1 + math.Exp(-float64(f.K)*float64(x-f.X0))))
}
