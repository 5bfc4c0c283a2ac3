package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/pkg/core/health"
	"github.com/msto63/viscocorrect/pkg/core/version"
)

func newHealthCommand(a *app) *cobra.Command {
	var asJSON, plain bool
	var calibrationPath, source string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check calibration and configuration",
		Long: `Load the configured coefficient table and run the health checks:
calibration loaded, coefficients valid and configuration in effect.
Exits non-zero if any check is unhealthy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := source, calibrationPath
			if kind == "" && path == "" {
				kind, path = a.cfg.Calibration.Source, a.cfg.Calibration.Path
			}
			src, err := calibration.SourceFor(kind, path)
			if err != nil {
				return err
			}
			cc := calibration.NewContext(context.Background(), src,
				calibration.WithLogger(a.logger),
				calibration.WithTimeout(a.cfg.Calibration.Timeout.Duration),
			)

			registry := health.NewRegistry("viscocorrect", version.Version, health.WithLogger(a.logger))
			registry.Register(health.CalibrationCheck("calibration", cc))
			registry.Register(health.CoefficientsCheck("coefficients", cc))
			registry.Register(health.ConfigCheck("config", a.cfg))

			report := registry.CheckWithTimeout(a.cfg.Calibration.Timeout.Duration)
			if a.wantJSON(asJSON) {
				err = writeJSON(cmd.OutOrStdout(), report)
			} else {
				_, err = io.WriteString(cmd.OutOrStdout(), a.renderer(plain, 0).Health(report))
			}
			if err != nil {
				return err
			}

			if !report.Healthy() {
				return mdwerror.New("health check failed").
					WithCode(mdwerror.CodeServiceInitialization).
					WithOperation("health").
					WithDetail("status", string(report.Status))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without borders and colors")
	cmd.Flags().StringVar(&calibrationPath, "calibration", "", "coefficient file to check")
	cmd.Flags().StringVar(&source, "source", "", "coefficient source kind, overrides the file extension")
	return cmd
}
