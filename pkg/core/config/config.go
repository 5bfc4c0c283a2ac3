package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	fconfig "github.com/msto63/viscocorrect/foundation/core/config"
	"github.com/msto63/viscocorrect/foundation/core/errors"
	"github.com/msto63/viscocorrect/foundation/core/log"
	"github.com/msto63/viscocorrect/internal/units"
)

// EnvPrefix prefixes every environment override, e.g. VISCOCORRECT_LOG_LEVEL
const EnvPrefix = "VISCOCORRECT"

// EnvConfigPath names the variable holding an explicit config file path
const EnvConfigPath = EnvPrefix + "_CONFIG"

// Config holds the complete application configuration
type Config struct {
	Log         LogConfig         `toml:"log"`
	Calibration CalibrationConfig `toml:"calibration"`
	Units       UnitsConfig       `toml:"units"`
	Output      OutputConfig      `toml:"output"`
	Cache       CacheConfig       `toml:"cache"`

	path string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// Output is stderr, stdout or a file path
	Output string `toml:"output"`
}

// CalibrationConfig selects the coefficient table
type CalibrationConfig struct {
	Source        string   `toml:"source"`
	Path          string   `toml:"path"`
	Timeout       Duration `toml:"timeout"`
	StrictDensity bool     `toml:"strict_density"`
}

// UnitsConfig holds the default input units of the CLI
type UnitsConfig struct {
	Flowrate  string `toml:"flowrate"`
	Head      string `toml:"head"`
	Viscosity string `toml:"viscosity"`
	Density   string `toml:"density"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// Precision is the number of decimals shown for factors
	Precision int `toml:"precision"`
	// FloatPrecision is the significant digits kept when inputs are given as floats
	FloatPrecision int    `toml:"float_precision"`
	Style          string `toml:"style"`
}

// CacheConfig sizes the result cache used in batch mode
type CacheConfig struct {
	MaxItems int      `toml:"max_items"`
	TTL      Duration `toml:"ttl"`
}

// Output styles
const (
	StyleTable = "table"
	StylePlain = "plain"
	StyleJSON  = "json"
)

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound(errors.ModuleConfig, "Load", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidFormat).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	cfg.path = path

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by VISCOCORRECT_CONFIG, or the first
// viscocorrect.toml / config.toml on the discovery path. Without either
// the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		opts := fconfig.DefaultDiscoveryOptions()
		opts.Extensions = []string{".toml"}
		if found, err := fconfig.FindConfigFile(opts); err == nil {
			path = found
		}
	}

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		cfg.expandEnvVars()
		return cfg, cfg.Validate()
	}

	return Load(path)
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}

	if c.Calibration.Source == "" && c.Calibration.Path == "" {
		c.Calibration.Source = "builtin"
	}
	if c.Calibration.Timeout.Duration == 0 {
		c.Calibration.Timeout.Duration = 10 * time.Second
	}

	if c.Units.Flowrate == "" {
		c.Units.Flowrate = units.CubicMetersPerHour.String()
	}
	if c.Units.Head == "" {
		c.Units.Head = units.Meters.String()
	}
	if c.Units.Viscosity == "" {
		c.Units.Viscosity = units.SquareMillimetersPerSecond.String()
	}
	if c.Units.Density == "" {
		c.Units.Density = units.GramsPerLiter.String()
	}

	if c.Output.Precision == 0 {
		c.Output.Precision = 3
	}
	if c.Output.FloatPrecision == 0 {
		c.Output.FloatPrecision = 17
	}
	if c.Output.Style == "" {
		c.Output.Style = StyleTable
	}

	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 4096
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}
}

// applyEnvOverrides replaces string settings with VISCOCORRECT_* variables
func (c *Config) applyEnvOverrides() {
	env := fconfig.LoadFromEnv(EnvPrefix)
	for key, dst := range map[string]*string{
		"log.level":          &c.Log.Level,
		"log.format":         &c.Log.Format,
		"log.output":         &c.Log.Output,
		"calibration.source": &c.Calibration.Source,
		"calibration.path":   &c.Calibration.Path,
		"output.style":       &c.Output.Style,
	} {
		if v := env.GetString(key); v != "" {
			*dst = v
		}
	}
}

// expandEnvVars expands environment variables in path settings
func (c *Config) expandEnvVars() {
	c.Calibration.Path = os.ExpandEnv(c.Calibration.Path)
	if c.Log.Output != "stderr" && c.Log.Output != "stdout" {
		c.Log.Output = os.ExpandEnv(c.Log.Output)
	}
}

// Validate checks every setting that has a closed set of values
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, "trace, debug, info, warn, error or fatal")
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format, "json, text, console or logfmt")
	}

	switch strings.ToLower(c.Calibration.Source) {
	case "", "builtin", "csv", "toml", "yaml", "sqlite":
	default:
		return invalid("calibration.source", c.Calibration.Source, "builtin, csv, toml, yaml or sqlite")
	}
	if c.Calibration.Timeout.Duration < 0 {
		return errors.OutOfRange(errors.ModuleConfig, "Validate", c.Calibration.Timeout.String(), "0s", "unbounded")
	}

	if _, err := c.Units.Units(); err != nil {
		return mdwerror.Wrap(err, "invalid default unit").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Validate")
	}

	if c.Output.Precision < 0 || c.Output.Precision > 17 {
		return errors.OutOfRange(errors.ModuleConfig, "Validate", c.Output.Precision, 0, 17)
	}
	if c.Output.FloatPrecision < 1 || c.Output.FloatPrecision > 17 {
		return errors.OutOfRange(errors.ModuleConfig, "Validate", c.Output.FloatPrecision, 1, 17)
	}
	switch c.Output.Style {
	case StyleTable, StylePlain, StyleJSON:
	default:
		return invalid("output.style", c.Output.Style, "table, plain or json")
	}

	if c.Cache.MaxItems < 0 {
		return errors.OutOfRange(errors.ModuleConfig, "Validate", c.Cache.MaxItems, 0, "unbounded")
	}
	return nil
}

func invalid(key, value, expected string) error {
	return errors.InvalidInput(errors.ModuleConfig, "Validate", value, expected).
		WithCode(mdwerror.CodeConfigError).
		WithDetail("key", key)
}

// Units parses the configured default units
func (u UnitsConfig) Units() (units.Units, error) {
	var out units.Units
	var err error
	if out.Flowrate, err = units.ParseFlowrate(u.Flowrate); err != nil {
		return units.Units{}, err
	}
	if out.Head, err = units.ParseHead(u.Head); err != nil {
		return units.Units{}, err
	}
	if out.Viscosity, err = units.ParseViscosity(u.Viscosity); err != nil {
		return units.Units{}, err
	}
	if out.Density, err = units.ParseDensity(u.Density); err != nil {
		return units.Units{}, err
	}
	return out, nil
}

// String renders the configuration as TOML
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return sb.String()
}
