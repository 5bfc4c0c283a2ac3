package calculator

import (
	"strings"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/foundation/core/errors"
)

// ErrorFlag is a bit set of rejected inputs
type ErrorFlag uint8

const (
	ErrFlowrate ErrorFlag = 1 << iota
	ErrHead
	ErrViscosity
	ErrDensity
	ErrInvalidNumber
)

var flagNames = []struct {
	flag ErrorFlag
	name string
}{
	{ErrFlowrate, "flowrate"},
	{ErrHead, "head"},
	{ErrViscosity, "viscosity"},
	{ErrDensity, "density"},
	{ErrInvalidNumber, "invalid-number"},
}

// Has reports whether every bit of other is set
func (f ErrorFlag) Has(other ErrorFlag) bool {
	return f&other == other
}

// String lists the set bits, "none" for an empty set
func (f ErrorFlag) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Err converts the flags into a validation error, nil if no bit is set
func (f ErrorFlag) Err() error {
	if f == 0 {
		return nil
	}
	b := errors.NewErrorBuilder(errors.ModuleCalculator).
		Operation("Calculate").
		Code(mdwerror.CodeValidationFailed).
		Messagef("input rejected: %s", f).
		Detail("error_flag", uint8(f))
	for _, n := range flagNames {
		if f&n.flag != 0 {
			b = b.Detail(n.name, "rejected")
		}
	}
	return b.Build()
}

// CorrectionFactors are the factors read off the chart. A non-zero Err
// means the inputs were rejected and every factor is zero.
type CorrectionFactors struct {
	Q   float64    `json:"q"`
	Eta float64    `json:"eta"`
	H   [4]float64 `json:"h"`
	Err ErrorFlag  `json:"error_flag"`
}

// H06 returns the head factor at 0.6 Q_BEP
func (c CorrectionFactors) H06() float64 { return c.H[0] }

// H08 returns the head factor at 0.8 Q_BEP
func (c CorrectionFactors) H08() float64 { return c.H[1] }

// H10 returns the head factor at Q_BEP
func (c CorrectionFactors) H10() float64 { return c.H[2] }

// H12 returns the head factor at 1.2 Q_BEP
func (c CorrectionFactors) H12() float64 { return c.H[3] }

// HasError reports whether the inputs were rejected
func (c CorrectionFactors) HasError() bool {
	return c.Err != 0
}

func rejected(flag ErrorFlag) CorrectionFactors {
	return CorrectionFactors{Err: flag}
}
