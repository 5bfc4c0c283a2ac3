// ============================================================================
// viscocorrect - Viscosity Correction for Centrifugal Pumps
// ============================================================================
//
// Package:     calibration
// Description: Curve coefficients fitted to the digitized correction chart
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package calibration

import (
	"fmt"
	"math"

	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/utils/mathx"
)

// Row IDs of the coefficient table
const (
	RowQ   = 0
	RowEta = 1
	RowH06 = 2
	RowH08 = 3
	RowH10 = 4
	RowH12 = 5
)

// ColumnCount is the number of coefficient columns per row (C0..C5)
const ColumnCount = 6

// HRatios are the flow ratios Q/Q_BEP of the four head curves, in row order
var HRatios = [4]float64{0.6, 0.8, 1.0, 1.2}

// LogisticSet holds the parameters of one logistic head curve
type LogisticSet struct {
	L  float64 `json:"l" yaml:"l" toml:"l"`
	K  float64 `json:"k" yaml:"k" toml:"k"`
	X0 float64 `json:"x0" yaml:"x0" toml:"x0"`
}

// Coefficients is the complete, read-only calibration of the calculator.
// Q and Eta are fifth degree polynomials with the highest power first.
type Coefficients struct {
	Q   [ColumnCount]float64 `json:"q"`
	Eta [ColumnCount]float64 `json:"eta"`
	H   [4]LogisticSet       `json:"h"`
}

// Row is one line of the tabular coefficient format
type Row struct {
	ID int
	C  [ColumnCount]float64
}

// Default returns the coefficients shipped with the calculator
func Default() Coefficients {
	return Coefficients{
		Q: [ColumnCount]float64{
			4.3286373442021278e-09,
			-6.5935466655309209e-06,
			0.0039704102541411324,
			-1.1870337647376101,
			176.52190832690891,
			-10276.558815133236,
		},
		Eta: [ColumnCount]float64{
			2.5116987378131985e-10,
			-3.2416532447274418e-07,
			0.00015531747394399714,
			-0.037300324399145976,
			4.2391803778160968,
			-6.2364025573465849,
		},
		H: [4]LogisticSet{
			{L: 285.39113639063004, K: -0.019515612319848788, X0: 451.79876054847699},
			{L: 286.44331640461877, K: -0.016739174282778945, X0: 453.11949555301783},
			{L: 285.70823636118865, K: -0.016126836943018912, X0: 443.60573501332937},
			{L: 285.91175890816675, K: -0.015057232233799856, X0: 436.03377039579027},
		},
	}
}

// Validate reports an error unless every curve has a non-zero leading
// coefficient and all values are finite. A zero leading coefficient is
// what a missing row leaves behind.
func (c Coefficients) Validate() error {
	if c.Q[0] == 0 {
		return errors.CalibrationInvalid("Validate", "missing Q curve (row 0)")
	}
	if c.Eta[0] == 0 {
		return errors.CalibrationInvalid("Validate", "missing Eta curve (row 1)")
	}
	for i, h := range c.H {
		if h.L == 0 {
			return errors.CalibrationInvalid("Validate", fmt.Sprintf("missing H curve for ratio %.1f (row %d)", HRatios[i], RowH06+i))
		}
	}

	values := make([]float64, 0, 2*ColumnCount+12)
	values = append(values, c.Q[:]...)
	values = append(values, c.Eta[:]...)
	for _, h := range c.H {
		values = append(values, h.L, h.K, h.X0)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.CalibrationInvalid("Validate", fmt.Sprintf("non-finite coefficient %v", v))
		}
	}
	return nil
}

// QCurve returns the flow correction polynomial
func (c Coefficients) QCurve() mathx.Polynomial[float64] {
	return mathx.Polynomial[float64](c.Q[:])
}

// EtaCurve returns the efficiency correction polynomial
func (c Coefficients) EtaCurve() mathx.Polynomial[float64] {
	return mathx.Polynomial[float64](c.Eta[:])
}

// HCurves returns the head correction curves for 0.6, 0.8, 1.0 and 1.2 Q_BEP
func (c Coefficients) HCurves() [4]mathx.Logistic[float64] {
	var curves [4]mathx.Logistic[float64]
	for i, h := range c.H {
		curves[i] = mathx.NewLogistic(h.L, h.K, h.X0)
	}
	return curves
}

// FromRows assembles coefficients from table rows. Unknown IDs are
// ignored and a later row replaces an earlier one with the same ID.
// The head rows only use their first three columns.
func FromRows(rows []Row) (Coefficients, error) {
	var c Coefficients
	for _, r := range rows {
		switch {
		case r.ID == RowQ:
			c.Q = r.C
		case r.ID == RowEta:
			c.Eta = r.C
		case r.ID >= RowH06 && r.ID <= RowH12:
			c.H[r.ID-RowH06] = LogisticSet{L: r.C[0], K: r.C[1], X0: r.C[2]}
		}
	}
	if err := c.Validate(); err != nil {
		return Coefficients{}, err
	}
	return c, nil
}

// Rows returns the table form, head rows padded with zeros
func (c Coefficients) Rows() []Row {
	rows := []Row{
		{ID: RowQ, C: c.Q},
		{ID: RowEta, C: c.Eta},
	}
	for i, h := range c.H {
		rows = append(rows, Row{ID: RowH06 + i, C: [ColumnCount]float64{h.L, h.K, h.X0}})
	}
	return rows
}
