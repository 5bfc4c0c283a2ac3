package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/internal/tui"
	"github.com/msto63/viscocorrect/pkg/core/config"
	"github.com/msto63/viscocorrect/pkg/core/logging"
)

// app holds the state shared by all commands of one invocation
type app struct {
	cfgFile   string
	verbose   bool
	logFormat string

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "viscocorrect",
		Short: "Viscosity correction factors for centrifugal pumps",
		Long: `viscocorrect derives the correction factors for flow (C_Q), efficiency
(C_η) and head (C_H at 0.6, 0.8, 1.0 and 1.2·Q_BEP) of a centrifugal pump
handling a viscous liquid, from its water performance at the best
efficiency point.

Commands:
  calc          - correction factors for one operating point or a CSV batch
  convert       - convert a flow rate, head, viscosity or density
  coefficients  - show, validate and export calibration tables
  health        - check calibration and configuration
  version       - build information`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: discovered viscocorrect.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: json, text, console, logfmt")

	root.AddCommand(
		newCalcCommand(a),
		newConvertCommand(a),
		newCoefficientsCommand(a),
		newHealthCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs the CLI with os.Args
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	_ = logging.CloseOutputs()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error to the process exit status. Rejected inputs
// exit with 2.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return mdwerror.GetCode(err).ExitCode()
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	lc := logging.FromConfig("viscocorrect", a.cfg.Log)
	lc.Verbose = a.verbose
	if a.logFormat != "" {
		lc.Format = a.logFormat
	}
	a.logger, err = logging.NewLogger(lc)
	if err != nil {
		return err
	}

	a.logger.Debug("configuration loaded", log.Fields{
		"path":    a.cfg.Path(),
		"command": cmd.CommandPath(),
	})
	return nil
}

// calibrationContext loads the table selected by the flags, falling back
// to the [calibration] section, and waits for it.
func (a *app) calibrationContext(ctx context.Context, kind, path string) (*calibration.Context, error) {
	if kind == "" && path == "" {
		kind, path = a.cfg.Calibration.Source, a.cfg.Calibration.Path
	}
	src, err := calibration.SourceFor(kind, path)
	if err != nil {
		return nil, err
	}

	cc := calibration.NewContext(ctx, src,
		calibration.WithLogger(a.logger),
		calibration.WithTimeout(a.cfg.Calibration.Timeout.Duration),
	)
	if err := cc.WaitInitialization(ctx); err != nil {
		return nil, err
	}
	return cc, nil
}

// renderer honours --plain and the configured output style
func (a *app) renderer(plain bool, precision int) tui.Renderer {
	if precision <= 0 {
		precision = a.cfg.Output.Precision
	}
	return tui.NewRenderer(plain || a.cfg.Output.Style == config.StylePlain, precision)
}

func (a *app) wantJSON(flag bool) bool {
	return flag || a.cfg.Output.Style == config.StyleJSON
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
