package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fconfig "github.com/msto63/viscocorrect/foundation/core/config"
	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/internal/calibration"
)

type coefficientsOptions struct {
	calibration, source string
}

func newCoefficientsCommand(a *app) *cobra.Command {
	o := &coefficientsOptions{}

	cmd := &cobra.Command{
		Use:     "coefficients",
		Aliases: []string{"coeff"},
		Short:   "Show, validate and export calibration tables",
	}
	cmd.PersistentFlags().StringVar(&o.calibration, "calibration", "", "coefficient file (.csv, .toml, .yaml, .db)")
	cmd.PersistentFlags().StringVar(&o.source, "source", "", "coefficient source kind, overrides the file extension")

	cmd.AddCommand(
		newCoefficientsShowCommand(a, o),
		newCoefficientsValidateCommand(a, o),
		newCoefficientsExportCommand(a, o),
	)
	return cmd
}

func (a *app) loadCoefficients(cmd *cobra.Command, o *coefficientsOptions) (calibration.Coefficients, string, error) {
	cc, err := a.calibrationContext(cmd.Context(), o.source, o.calibration)
	if err != nil {
		return calibration.Coefficients{}, "", err
	}
	c, err := cc.Coefficients()
	return c, cc.Source().Name(), err
}

func newCoefficientsShowCommand(a *app, o *coefficientsOptions) *cobra.Command {
	var asJSON, plain bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the coefficient table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, source, err := a.loadCoefficients(cmd, o)
			if err != nil {
				return err
			}
			if a.wantJSON(asJSON) {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), a.renderer(plain, 0).Coefficients(source, c))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without borders and colors")
	return cmd
}

func newCoefficientsValidateCommand(a *app, o *coefficientsOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a coefficient table is complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, source, err := a.loadCoefficients(cmd, o)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: coefficients valid\n", source)
			return err
		},
	}
}

// Export formats
const (
	formatCSV    = "csv"
	formatSQLite = "sqlite"
	formatTOML   = "toml"
	formatYAML   = "yaml"
)

func newCoefficientsExportCommand(a *app, o *coefficientsOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the coefficient table to a file",
		Long: `Write the loaded coefficient table as CSV, TOML, YAML or into a SQLite
database. The format defaults to the extension of --out. Text formats are
written to stdout when --out is - or empty.`,
		Example: `  viscocorrect coefficients export --format csv
  viscocorrect coefficients export --out coefficients.db
  viscocorrect coefficients export --calibration custom.csv --format yaml --out custom.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, source, err := a.loadCoefficients(cmd, o)
			if err != nil {
				return err
			}

			f := exportFormat(format, out)
			if err := exportCoefficients(cmd, c, f, out); err != nil {
				return err
			}
			a.logger.Info("coefficients exported", log.Fields{
				"source": source,
				"format": f,
				"out":    out,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "csv, sqlite, toml or yaml (default from --out, else csv)")
	cmd.Flags().StringVar(&out, "out", "", "output path, - for stdout")
	return cmd
}

func exportFormat(format, out string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatCSV
	}
}

func exportCoefficients(cmd *cobra.Command, c calibration.Coefficients, format, out string) error {
	var write func(io.Writer) error
	switch format {
	case formatCSV:
		write = func(w io.Writer) error { return calibration.WriteCSV(w, c) }
	case formatTOML:
		write = func(w io.Writer) error { return calibration.WriteDocument(w, c, fconfig.FormatTOML) }
	case formatYAML:
		write = func(w io.Writer) error { return calibration.WriteDocument(w, c, fconfig.FormatYAML) }
	case formatSQLite:
		if out == "" || out == "-" {
			return errors.InvalidInput(errors.ModuleCalibration, "export", out, "a database path for --out")
		}
		return calibration.SQLiteSource{Path: out}.Store(cmd.Context(), c)
	default:
		return errors.InvalidInput(errors.ModuleCalibration, "export", format, "csv, sqlite, toml or yaml")
	}

	if out == "" || out == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
