package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/foundation/utils/mathx"
	"github.com/msto63/viscocorrect/internal/units"
)

func newConvertCommand(a *app) *cobra.Command {
	var density, densityUnit string

	cmd := &cobra.Command{
		Use:   "convert <quantity> <value> <from> [to]",
		Short: "Convert a value between units",
		Long: `Convert a flow rate, head, viscosity or density. Without a target unit
the value is converted to the base unit (m³/h, m, mm²/s, g/L).

Quantities: flow, head, visc, density. Converting between kinematic and
dynamic viscosity needs --density.`,
		Example: `  viscocorrect convert flow 440 gpm
  viscocorrect convert head 100 ft m
  viscocorrect convert visc 85 cP cSt --density 850 --density-unit kg/m3`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := mathx.Parse(args[1])
			if !v.IsValid() {
				return errors.DecimalParse(args[1])
			}
			to := ""
			if len(args) == 4 {
				to = args[3]
			}

			rhoUnit, err := units.ParseDensity(densityUnit)
			if err != nil {
				return err
			}
			rho := units.WaterDensity(rhoUnit)
			if density != "" {
				if rho = mathx.Parse(density); !rho.IsValid() {
					return errors.DecimalParse(density)
				}
			}

			result, symbol, err := convert(strings.ToLower(args[0]), v, args[2], to, rho, rhoUnit)
			if err != nil {
				return err
			}
			a.logger.Debug("converted", log.Fields{
				"quantity": args[0], "value": v.String(), "from": args[2], "to": symbol,
			})
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", result, symbol)
			return err
		},
	}

	cmd.Flags().StringVar(&density, "density", "", "density for dynamic viscosity units (default 1 g/L)")
	cmd.Flags().StringVar(&densityUnit, "density-unit", "g/L", "unit of --density")
	return cmd
}

// convert returns the converted value and the symbol of the target unit
func convert(quantity string, v mathx.Decimal, from, to string, rho mathx.Decimal, rhoUnit units.Density) (mathx.Decimal, string, error) {
	switch quantity {
	case "flow", "flowrate":
		f, err := units.ParseFlowrate(from)
		if err != nil {
			return mathx.Decimal{}, "", err
		}
		t := units.CubicMetersPerHour
		if to != "" {
			if t, err = units.ParseFlowrate(to); err != nil {
				return mathx.Decimal{}, "", err
			}
		}
		return units.ConvertFlowrate(v, f, t), t.String(), nil

	case "head":
		f, err := units.ParseHead(from)
		if err != nil {
			return mathx.Decimal{}, "", err
		}
		t := units.Meters
		if to != "" {
			if t, err = units.ParseHead(to); err != nil {
				return mathx.Decimal{}, "", err
			}
		}
		return units.ConvertHead(v, f, t), t.String(), nil

	case "visc", "viscosity":
		f, err := units.ParseViscosity(from)
		if err != nil {
			return mathx.Decimal{}, "", err
		}
		t := units.SquareMillimetersPerSecond
		if to != "" {
			if t, err = units.ParseViscosity(to); err != nil {
				return mathx.Decimal{}, "", err
			}
		}
		return units.ConvertViscosity(v, f, t, rho, rhoUnit), t.String(), nil

	case "density":
		f, err := units.ParseDensity(from)
		if err != nil {
			return mathx.Decimal{}, "", err
		}
		t := units.GramsPerLiter
		if to != "" {
			if t, err = units.ParseDensity(to); err != nil {
				return mathx.Decimal{}, "", err
			}
		}
		return units.ConvertDensity(v, f, t), t.String(), nil
	}

	return mathx.Decimal{}, "", errors.InvalidInput(errors.ModuleUnits, "convert", quantity, "flow, head, visc or density")
}
