// Package batch runs the calculator over a CSV file of operating points.
//
// Input columns are flow, flow_unit, head, head_unit, visc, visc_unit,
// density and density_unit. Trailing columns may be omitted: empty units
// fall back to the configured defaults and an empty density to 1 g/L,
// expressed in the row's density unit.
// A first line starting with "flow" is treated as a header.
package batch

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/utils/mathx"
	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/units"
)

var inputHeader = []string{"flow", "flow_unit", "head", "head_unit", "visc", "visc_unit", "density", "density_unit"}

var outputHeader = append(append([]string{}, inputHeader...), "q", "eta", "h06", "h08", "h10", "h12", "error")

// Record is one parsed input line
type Record struct {
	Line  int
	Input calculator.InputParameters
}

// Result pairs a record with its correction factors
type Result struct {
	Record
	Factors calculator.CorrectionFactors
}

// Calculator is satisfied by *calculator.Calculator and *calculator.CachedCalculator
type Calculator interface {
	Calculate(p calculator.InputParameters) calculator.CorrectionFactors
}

// Read parses every record of r. Unknown units abort with the offending
// line; malformed numbers do not, they surface as rejected results.
func Read(r io.Reader, defaults units.Units) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []Record
	first := true
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewErrorBuilder(errors.ModuleBatch).
				Operation("Read").
				Code(mdwerror.CodeInvalidFormat).
				Message("malformed input file").
				Cause(err).
				Build()
		}

		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(fields[0]), inputHeader[0]) {
				continue
			}
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRecord(fields, line, defaults)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(fields []string, line int, defaults units.Units) (Record, error) {
	if len(fields) > len(inputHeader) {
		return Record{}, errors.NewErrorBuilder(errors.ModuleBatch).
			Operation("Read").
			Code(mdwerror.CodeInvalidFormat).
			Messagef("line %d: too many columns", line).
			Detail("line", line).
			Build()
	}

	col := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	in := calculator.InputParameters{
		Flowrate:  mathx.Parse(col(0)),
		Head:      mathx.Parse(col(2)),
		Viscosity: mathx.Parse(col(4)),
		Units:     defaults,
	}

	var err error
	if s := col(1); s != "" {
		if in.Units.Flowrate, err = units.ParseFlowrate(s); err != nil {
			return Record{}, lineError(err, line)
		}
	}
	if s := col(3); s != "" {
		if in.Units.Head, err = units.ParseHead(s); err != nil {
			return Record{}, lineError(err, line)
		}
	}
	if s := col(5); s != "" {
		if in.Units.Viscosity, err = units.ParseViscosity(s); err != nil {
			return Record{}, lineError(err, line)
		}
	}
	if s := col(7); s != "" {
		if in.Units.Density, err = units.ParseDensity(s); err != nil {
			return Record{}, lineError(err, line)
		}
	}
	if s := col(6); s != "" {
		in.Density = mathx.Parse(s)
	} else {
		in.Density = units.WaterDensity(in.Units.Density)
	}

	return Record{Line: line, Input: in}, nil
}

func lineError(err error, line int) error {
	return mdwerror.Wrap(err, "line "+strconv.Itoa(line)).
		WithOperation("batch.Read").
		WithDetail("line", line)
}

// Run calculates every record in order. It stops early when ctx is done
// and returns the results computed so far with ctx.Err().
func Run(ctx context.Context, records []Record, calc Calculator) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, Result{Record: rec, Factors: calc.Calculate(rec.Input)})
	}
	return results, nil
}

// Write renders results as CSV with the factors rounded to precision decimals
func Write(w io.Writer, results []Result, precision int) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(outputHeader); err != nil {
		return err
	}

	format := func(f float64) string {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}

	for _, res := range results {
		in, f := res.Input, res.Factors
		row := []string{
			in.Flowrate.String(), in.Units.Flowrate.String(),
			in.Head.String(), in.Units.Head.String(),
			in.Viscosity.String(), in.Units.Viscosity.String(),
			in.Density.String(), in.Units.Density.String(),
			format(f.Q), format(f.Eta),
			format(f.H06()), format(f.H08()), format(f.H10()), format(f.H12()),
			"",
		}
		if f.HasError() {
			row[len(row)-1] = f.Err.String()
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Rejected counts the results whose input failed validation
func Rejected(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Factors.HasError() {
			n++
		}
	}
	return n
}
