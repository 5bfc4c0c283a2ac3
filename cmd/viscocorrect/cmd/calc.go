package cmd

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/internal/batch"
	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/project"
	"github.com/msto63/viscocorrect/internal/units"
	"github.com/msto63/viscocorrect/pkg/core/cache"
)

type calcOptions struct {
	flow, head, visc, density                 string
	flowUnit, headUnit, viscUnit, densityUnit string
	calibration, source, name, batchFile      string
	json, plain, strictDensity                bool
	precision                                 int
}

func newCalcCommand(a *app) *cobra.Command {
	o := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate correction factors",
		Long: `Calculate the correction factors for one operating point at the best
efficiency point, or for every line of a CSV file with --batch.

Batch files have the columns
  flow,flow_unit,head,head_unit,visc,visc_unit,density,density_unit
where units and density may be left empty.

Inputs outside the chart are reported and exit with status 2.`,
		Example: `  viscocorrect calc --flow 100 --head 100 --visc 100
  viscocorrect calc --flow 440 --flow-unit gpm --head 328 --head-unit ft --visc 85 --visc-unit cP --density 850 --density-unit kg/m3
  viscocorrect calc --batch pumps.csv > factors.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.batchFile != "" {
				return a.runBatch(cmd, o)
			}
			return a.runCalc(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.flow, "flow", "", "flow rate at the best efficiency point")
	f.StringVar(&o.head, "head", "", "head at the best efficiency point")
	f.StringVar(&o.visc, "visc", "", "viscosity of the liquid")
	f.StringVar(&o.density, "density", "", "density of the liquid, needed for cP and mPa·s (default 1 g/L)")
	f.StringVar(&o.flowUnit, "flow-unit", "", "flow rate unit: m3/h, l/min, gpm")
	f.StringVar(&o.headUnit, "head-unit", "", "head unit: m, ft")
	f.StringVar(&o.viscUnit, "visc-unit", "", "viscosity unit: mm2/s, cSt, cP, mPa·s")
	f.StringVar(&o.densityUnit, "density-unit", "", "density unit: g/L, kg/m3")
	f.StringVar(&o.calibration, "calibration", "", "coefficient file (.csv, .toml, .yaml, .db)")
	f.StringVar(&o.source, "source", "", "coefficient source kind, overrides the file extension")
	f.StringVar(&o.name, "name", "", "project name shown in logs")
	f.StringVar(&o.batchFile, "batch", "", "CSV file of operating points, - for stdin")
	f.BoolVar(&o.json, "json", false, "print JSON")
	f.BoolVar(&o.plain, "plain", false, "print without borders and colors")
	f.BoolVar(&o.strictDensity, "strict-density", false, "reject dynamic viscosities with a zero or negative density")
	f.IntVar(&o.precision, "precision", 0, "decimals shown for factors (default from config)")

	return cmd
}

// units resolves the unit flags, falling back to the configured defaults
func (a *app) units(o *calcOptions) (units.Units, error) {
	u, err := a.cfg.Units.Units()
	if err != nil {
		return units.Units{}, err
	}
	if o.flowUnit != "" {
		if u.Flowrate, err = units.ParseFlowrate(o.flowUnit); err != nil {
			return units.Units{}, err
		}
	}
	if o.headUnit != "" {
		if u.Head, err = units.ParseHead(o.headUnit); err != nil {
			return units.Units{}, err
		}
	}
	if o.viscUnit != "" {
		if u.Viscosity, err = units.ParseViscosity(o.viscUnit); err != nil {
			return units.Units{}, err
		}
	}
	if o.densityUnit != "" {
		if u.Density, err = units.ParseDensity(o.densityUnit); err != nil {
			return units.Units{}, err
		}
	}
	return u, nil
}

func (a *app) calculator(cmd *cobra.Command, o *calcOptions) (*calculator.Calculator, error) {
	cc, err := a.calibrationContext(cmd.Context(), o.source, o.calibration)
	if err != nil {
		return nil, err
	}
	return calculator.FromContext(cc,
		calculator.WithLogger(a.logger.WithComponent("calculator")),
		calculator.WithStrictDensity(o.strictDensity || a.cfg.Calibration.StrictDensity),
	)
}

type calcOutput struct {
	ID      string                       `json:"id"`
	Name    string                       `json:"name,omitempty"`
	Input   quantities                   `json:"input"`
	Base    quantities                   `json:"base"`
	Factors calculator.CorrectionFactors `json:"factors"`
}

type quantities struct {
	Flowrate  string      `json:"flowrate"`
	Head      string      `json:"head"`
	Viscosity string      `json:"viscosity"`
	Density   string      `json:"density"`
	Units     units.Units `json:"units"`
}

func toQuantities(p calculator.InputParameters) quantities {
	return quantities{
		Flowrate:  p.Flowrate.String(),
		Head:      p.Head.String(),
		Viscosity: p.Viscosity.String(),
		Density:   p.Density.String(),
		Units:     p.Units,
	}
}

func (a *app) runCalc(cmd *cobra.Command, o *calcOptions) error {
	for _, req := range []struct{ flag, value string }{
		{"--flow", o.flow}, {"--head", o.head}, {"--visc", o.visc},
	} {
		if req.value == "" {
			return errors.InvalidInput(errors.ModuleCalculator, "calc", req.flag, "a value for "+req.flag+" or --batch")
		}
	}

	u, err := a.units(o)
	if err != nil {
		return err
	}
	calc, err := a.calculator(cmd, o)
	if err != nil {
		return err
	}

	p := project.New(calc,
		project.WithName(o.name),
		project.WithPrecision(a.cfg.Output.FloatPrecision),
		project.WithLogger(a.logger),
	)
	p.SetFlowrateString(o.flow, u.Flowrate)
	p.SetHeadString(o.head, u.Head)
	if o.density == "" {
		p.SetDensity(units.WaterDensity(u.Density), u.Density)
	} else {
		p.SetDensityString(o.density, u.Density)
	}
	p.SetViscosityString(o.visc, u.Viscosity)

	res := p.Result()
	in := p.Input()
	base := p.ShowConverted()

	out := cmd.OutOrStdout()
	if a.wantJSON(o.json) {
		err = writeJSON(out, calcOutput{
			ID:      p.ID().String(),
			Name:    p.Name(),
			Input:   toQuantities(in),
			Base:    toQuantities(base),
			Factors: res,
		})
	} else {
		_, err = io.WriteString(out, a.renderer(o.plain, o.precision).Factors(in, base, res))
	}
	if err != nil {
		return err
	}

	return res.Err.Err()
}

func (a *app) runBatch(cmd *cobra.Command, o *calcOptions) error {
	defaults, err := a.units(o)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if o.batchFile != "-" {
		f, err := os.Open(o.batchFile)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.NotFound(errors.ModuleBatch, "calc", o.batchFile)
			}
			return err
		}
		defer f.Close()
		r = f
	}

	records, err := batch.Read(r, defaults)
	if err != nil {
		return err
	}

	calc, err := a.calculator(cmd, o)
	if err != nil {
		return err
	}
	cached := calculator.NewCached(calc, cache.Config{
		MaxItems:        a.cfg.Cache.MaxItems,
		TTL:             a.cfg.Cache.TTL.Duration,
		CleanupInterval: time.Minute,
	})
	defer cached.Close()

	timer := a.logger.StartTimer("batch").WithLevel(log.LevelInfo)
	results, err := batch.Run(cmd.Context(), records, cached)
	if err != nil {
		timer.StopWithError(err)
		return err
	}
	hits, _, hitRate := cached.Stats()
	timer.
		WithField("rows", len(results)).
		WithField("rejected", batch.Rejected(results)).
		WithField("cache_hits", hits).
		WithField("cache_hit_rate", hitRate).
		Stop()

	if a.wantJSON(o.json) {
		type row struct {
			Line    int                          `json:"line"`
			Input   quantities                   `json:"input"`
			Factors calculator.CorrectionFactors `json:"factors"`
		}
		rows := make([]row, len(results))
		for i, res := range results {
			rows[i] = row{Line: res.Line, Input: toQuantities(res.Input), Factors: res.Factors}
		}
		return writeJSON(cmd.OutOrStdout(), rows)
	}

	precision := o.precision
	if precision <= 0 {
		precision = a.cfg.Output.Precision
	}
	return batch.Write(cmd.OutOrStdout(), results, precision)
}
