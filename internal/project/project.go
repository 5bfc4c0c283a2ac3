// ============================================================================
// viscocorrect - Viscosity Correction for Centrifugal Pumps
// ============================================================================
//
// Package:     project
// Description: Stateful calculation with lazily recomputed results
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package project

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/foundation/utils/mathx"
	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/internal/units"
)

// Field identifies one input of a project
type Field uint8

const (
	FieldFlowrate Field = 1 << iota
	FieldHead
	FieldViscosity
	FieldDensity
)

// String lists the fields in the set
func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range []struct {
		f    Field
		name string
	}{
		{FieldFlowrate, "flowrate"},
		{FieldHead, "head"},
		{FieldViscosity, "viscosity"},
		{FieldDensity, "density"},
	} {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Project holds one operating point and its correction factors. Results
// are computed on first read after an input changed. A Project is safe
// for concurrent use.
type Project struct {
	mu sync.Mutex

	id        uuid.UUID
	name      string
	precision int
	calc      *calculator.Calculator
	logger    *log.Logger

	input    calculator.InputParameters
	result   calculator.CorrectionFactors
	computed bool
	changed  Field
}

// Option configures a Project
type Option func(*Project)

// WithName sets the project name
func WithName(name string) Option {
	return func(p *Project) { p.name = name }
}

// WithPrecision sets the significant digits kept by the float setters
func WithPrecision(digits int) Option {
	return func(p *Project) {
		if digits > 0 {
			p.precision = digits
		}
	}
}

// WithLogger sets the logger recalculations are reported to
func WithLogger(logger *log.Logger) Option {
	return func(p *Project) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates an empty project bound to calc. The initial density is
// 1 g/L so that dynamic viscosities convert without further setup.
func New(calc *calculator.Calculator, opts ...Option) *Project {
	p := &Project{
		id:        uuid.New(),
		precision: mathx.DefaultFloatPrecision,
		calc:      calc,
		logger:    log.Discard(),
		input: calculator.InputParameters{
			Density: mathx.NewFromInt(1),
		},
		changed: FieldFlowrate | FieldHead | FieldViscosity | FieldDensity,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithComponent("project").WithProject(p.id.String())
	return p
}

// NewFromContext waits for the calibration context and creates a project
// with a calculator bound to its coefficients.
func NewFromContext(ctx *calibration.Context, opts ...Option) (*Project, error) {
	calc, err := calculator.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return New(calc, opts...), nil
}

// ID returns the project identifier
func (p *Project) ID() uuid.UUID {
	return p.id
}

// Name returns the project name
func (p *Project) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// SetName renames the project
func (p *Project) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

// Precision returns the significant digits kept by the float setters
func (p *Project) Precision() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.precision
}

// SetPrecision changes the significant digits kept by the float setters.
// Values already set are not touched.
func (p *Project) SetPrecision(digits int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if digits > 0 {
		p.precision = digits
	}
}

// set applies fn to the inputs and invalidates the result
func (p *Project) set(field Field, fn func(in *calculator.InputParameters)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.input)
	p.changed |= field
	p.computed = false
	p.result = calculator.CorrectionFactors{}
}

func (p *Project) fromFloat(f float64) mathx.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return mathx.FromFloat(f, p.precision)
}

// SetFlowrate sets the flow rate
func (p *Project) SetFlowrate(v mathx.Decimal, unit units.Flowrate) {
	p.set(FieldFlowrate, func(in *calculator.InputParameters) {
		in.Flowrate = v
		in.Units.Flowrate = unit
	})
}

// SetFlowrateString parses and sets the flow rate. Malformed text is
// reported by the next result, not here.
func (p *Project) SetFlowrateString(s string, unit units.Flowrate) {
	p.SetFlowrate(mathx.Parse(s), unit)
}

// SetFlowrateFloat sets the flow rate from a float64
func (p *Project) SetFlowrateFloat(f float64, unit units.Flowrate) {
	p.SetFlowrate(p.fromFloat(f), unit)
}

// SetHead sets the head
func (p *Project) SetHead(v mathx.Decimal, unit units.Head) {
	p.set(FieldHead, func(in *calculator.InputParameters) {
		in.Head = v
		in.Units.Head = unit
	})
}

// SetHeadString parses and sets the head
func (p *Project) SetHeadString(s string, unit units.Head) {
	p.SetHead(mathx.Parse(s), unit)
}

// SetHeadFloat sets the head from a float64
func (p *Project) SetHeadFloat(f float64, unit units.Head) {
	p.SetHead(p.fromFloat(f), unit)
}

// SetViscosity sets the viscosity
func (p *Project) SetViscosity(v mathx.Decimal, unit units.Viscosity) {
	p.set(FieldViscosity, func(in *calculator.InputParameters) {
		in.Viscosity = v
		in.Units.Viscosity = unit
	})
}

// SetViscosityString parses and sets the viscosity
func (p *Project) SetViscosityString(s string, unit units.Viscosity) {
	p.SetViscosity(mathx.Parse(s), unit)
}

// SetViscosityFloat sets the viscosity from a float64
func (p *Project) SetViscosityFloat(f float64, unit units.Viscosity) {
	p.SetViscosity(p.fromFloat(f), unit)
}

// SetDensity sets the fluid density
func (p *Project) SetDensity(v mathx.Decimal, unit units.Density) {
	p.set(FieldDensity, func(in *calculator.InputParameters) {
		in.Density = v
		in.Units.Density = unit
	})
}

// SetDensityString parses and sets the fluid density
func (p *Project) SetDensityString(s string, unit units.Density) {
	p.SetDensity(mathx.Parse(s), unit)
}

// SetDensityFloat sets the fluid density from a float64
func (p *Project) SetDensityFloat(f float64, unit units.Density) {
	p.SetDensity(p.fromFloat(f), unit)
}

// SetInput replaces all inputs at once
func (p *Project) SetInput(in calculator.InputParameters) {
	p.set(FieldFlowrate|FieldHead|FieldViscosity|FieldDensity, func(dst *calculator.InputParameters) {
		*dst = in
	})
}

// Input returns the inputs as set, in their own units
func (p *Project) Input() calculator.InputParameters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input
}

// ShowConverted returns the inputs converted to base units
func (p *Project) ShowConverted() calculator.InputParameters {
	return p.Input().ToBase()
}

// Changed returns the fields set since the last calculation
func (p *Project) Changed() Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.changed
}

// Calculate recomputes the result regardless of pending changes
func (p *Project) Calculate() calculator.CorrectionFactors {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.computed = false
	return p.resultLocked()
}

// Result returns the correction factors, computing them if needed
func (p *Project) Result() calculator.CorrectionFactors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resultLocked()
}

func (p *Project) resultLocked() calculator.CorrectionFactors {
	if p.computed {
		return p.result
	}

	p.result = p.calc.Calculate(p.input)
	p.computed = true
	if p.result.HasError() {
		p.logger.Debug("calculation rejected", log.Fields{
			"changed":    p.changed.String(),
			"error_flag": p.result.Err.String(),
		})
	} else {
		p.logger.Debug("recalculated", log.Fields{
			"changed": p.changed.String(),
			"q":       p.result.Q,
			"eta":     p.result.Eta,
		})
	}
	p.changed = 0
	return p.result
}

// Q returns the flow correction factor
func (p *Project) Q() float64 { return p.Result().Q }

// Eta returns the efficiency correction factor
func (p *Project) Eta() float64 { return p.Result().Eta }

// H returns the head correction factors for 0.6, 0.8, 1.0 and 1.2 Q_BEP
func (p *Project) H() [4]float64 { return p.Result().H }

// H06 returns the head correction factor at 0.6 Q_BEP
func (p *Project) H06() float64 { return p.Result().H06() }

// H08 returns the head correction factor at 0.8 Q_BEP
func (p *Project) H08() float64 { return p.Result().H08() }

// H10 returns the head correction factor at Q_BEP
func (p *Project) H10() float64 { return p.Result().H10() }

// H12 returns the head correction factor at 1.2 Q_BEP
func (p *Project) H12() float64 { return p.Result().H12() }

// ErrorFlag returns the reasons the inputs were rejected, if any
func (p *Project) ErrorFlag() calculator.ErrorFlag { return p.Result().Err }

// HasError reports whether the current inputs were rejected
func (p *Project) HasError() bool { return p.Result().HasError() }
