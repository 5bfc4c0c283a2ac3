// Package calculator reads viscosity correction factors off a digitized
// pump correction chart. A Calculator is immutable and may be shared by
// any number of goroutines.
package calculator

import (
	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/foundation/utils/mathx"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/internal/units"
)

// InputParameters are the operating point of the pump and the fluid
type InputParameters struct {
	Flowrate  mathx.Decimal `json:"flowrate"`
	Head      mathx.Decimal `json:"head"`
	Viscosity mathx.Decimal `json:"viscosity"`
	Density   mathx.Decimal `json:"density"`
	Units     units.Units   `json:"units"`
}

// ToBase returns the parameters converted to m³/h, m, mm²/s and g/L
func (p InputParameters) ToBase() InputParameters {
	if p.Units.IsBase() {
		return p
	}
	u := p.Units
	return InputParameters{
		Flowrate:  units.FlowrateToBase(p.Flowrate, u.Flowrate),
		Head:      units.HeadToBase(p.Head, u.Head),
		Viscosity: units.ViscosityToBase(p.Viscosity, u.Viscosity, p.Density, u.Density),
		Density:   units.DensityToBase(p.Density, u.Density),
		Units:     units.Base(),
	}
}

// Calculator evaluates the calibration curves at the chart position of an
// operating point.
type Calculator struct {
	q   mathx.Polynomial[float64]
	eta mathx.Polynomial[float64]
	h   [4]mathx.Logistic[float64]

	nomograph     Nomograph
	logger        *log.Logger
	strictDensity bool
}

// Option configures a Calculator
type Option func(*Calculator)

// WithNomograph replaces the default chart geometry
func WithNomograph(n Nomograph) Option {
	return func(c *Calculator) {
		c.nomograph = n
	}
}

// WithLogger sets the logger rejected inputs are reported to
func WithLogger(logger *log.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrictDensity rejects dynamic viscosities given with a zero or
// negative density instead of converting them to 0 mm²/s.
func WithStrictDensity(strict bool) Option {
	return func(c *Calculator) {
		c.strictDensity = strict
	}
}

// New creates a calculator for the given coefficients
func New(coeffs calibration.Coefficients, opts ...Option) (*Calculator, error) {
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}

	c := &Calculator{
		q:         coeffs.QCurve(),
		eta:       coeffs.EtaCurve(),
		h:         coeffs.HCurves(),
		nomograph: DefaultNomograph(),
		logger:    log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("calculator")
	return c, nil
}

// FromContext waits for ctx to finish loading and creates a calculator
// bound to its coefficients.
func FromContext(ctx *calibration.Context, opts ...Option) (*Calculator, error) {
	coeffs, err := ctx.Coefficients()
	if err != nil {
		return nil, err
	}
	return New(coeffs, opts...)
}

// Nomograph returns the chart geometry in use
func (c *Calculator) Nomograph() Nomograph {
	return c.nomograph
}

// Validate converts p to base units and checks it against the chart axes
func (c *Calculator) Validate(p InputParameters) (InputParameters, ErrorFlag) {
	var flag ErrorFlag

	if c.strictDensity && p.Units.Viscosity.IsDynamic() {
		if !p.Density.IsValid() || p.Density.IsNeg() || p.Density.IsZero() {
			flag |= ErrDensity
		}
	}

	base := p.ToBase()
	n := c.nomograph
	flag |= checkRange(base.Flowrate, n.FlowScale, ErrFlowrate)
	flag |= checkRange(base.Head, n.HeadScale, ErrHead)
	flag |= checkRange(base.Viscosity, n.ViscosityScale, ErrViscosity)
	return base, flag
}

func checkRange(v mathx.Decimal, s Scale, bit ErrorFlag) ErrorFlag {
	if !v.IsValid() {
		return bit | ErrInvalidNumber
	}
	if v.Cmp(mathx.FromFloat(s.Min())) < 0 || v.Cmp(mathx.FromFloat(s.Max())) > 0 {
		return bit
	}
	return 0
}

// Position returns the chart position the operating point is read at.
// The position is only meaningful if the flag is zero.
func (c *Calculator) Position(p InputParameters) (float64, ErrorFlag) {
	base, flag := c.Validate(p)
	if flag != 0 {
		return 0, flag
	}
	return c.position(base), 0
}

func (c *Calculator) position(base InputParameters) float64 {
	n := c.nomograph

	flowPos := FitToScale(n.FlowScale, base.Flowrate.Float64(), 0)
	headPos := FitToScale(n.HeadScale, base.Head.Float64(), n.HeadStart.Y)
	viscPos := FitToScale(n.ViscosityScale, base.Viscosity.Float64(), n.ViscosityStart.X)

	headLine := mathx.NewLinear(n.HeadPitch, n.HeadStart.X, headPos)
	viscLine := mathx.NewLinear(n.ViscosityPitch, viscPos, n.ViscosityStart.Y)

	return viscLine.SolveForX(headLine.Eval(flowPos))
}

// FactorsAt evaluates the curves at a chart position, applying the
// boundary policy outside each curve's domain.
func (c *Calculator) FactorsAt(pos float64) CorrectionFactors {
	n := c.nomograph
	scale := n.PixelScale * 10

	var f CorrectionFactors
	if n.QDomain.Contains(pos) {
		f.Q = c.q.Eval(pos)/scale + n.QOffset
	} else {
		f.Q = n.QDomain.boundary(pos)
	}
	if n.EtaDomain.Contains(pos) {
		f.Eta = c.eta.Eval(pos)/scale + n.EtaOffset
	} else {
		f.Eta = n.EtaDomain.boundary(pos)
	}
	for i, h := range c.h {
		if n.HDomain.Contains(pos) {
			f.H[i] = h.Eval(pos)/scale + n.HOffset
		} else {
			f.H[i] = n.HDomain.boundary(pos)
		}
	}
	return f
}

// Calculate returns the correction factors for p. Rejected inputs give a
// zero result with the reasons in Err; nothing is computed for them.
func (c *Calculator) Calculate(p InputParameters) CorrectionFactors {
	base, flag := c.Validate(p)
	if flag != 0 {
		c.logger.Debug("inputs rejected", log.Fields{
			"flowrate":   base.Flowrate.String(),
			"head":       base.Head.String(),
			"viscosity":  base.Viscosity.String(),
			"error_flag": flag.String(),
		})
		return rejected(flag)
	}

	pos := c.position(base)
	f := c.FactorsAt(pos)
	if c.logger.IsLevelEnabled(log.LevelTrace) {
		c.logger.Trace("factors calculated", log.Fields{
			"position": pos,
			"q":        f.Q,
			"eta":      f.Eta,
			"h":        f.H,
		})
	}
	return f
}
