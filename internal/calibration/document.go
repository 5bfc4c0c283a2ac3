package calibration

import (
	"context"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/viscocorrect/foundation/core/config"
	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/foundation/core/errors"
)

// Document keys of the curves, h keys in the order of HRatios
const (
	KeyQ   = "q"
	KeyEta = "eta"
)

var hKeys = [4]string{"h06", "h08", "h10", "h12"}

// DocumentSource reads coefficients from a TOML or YAML document:
//
//	q   = [c0, c1, c2, c3, c4, c5]
//	eta = [c0, c1, c2, c3, c4, c5]
//	h06 = [L, k, x0]
//
// and likewise h08, h10 and h12. Table names a nested table holding the
// keys; empty means top level. The zero Format picks the format from the
// file extension.
type DocumentSource struct {
	Path   string
	Format config.Format
	Table  string
}

// Load implements Source
func (s DocumentSource) Load(ctx context.Context) (Coefficients, error) {
	if err := ctx.Err(); err != nil {
		return Coefficients{}, err
	}

	format := s.Format
	if format == config.FormatTOML && s.Path != "" {
		format = config.FormatAuto
	}
	cfg, err := config.LoadWithOptions(s.Path, config.LoadOptions{Format: format})
	if err != nil {
		return Coefficients{}, err
	}
	return decodeDocument(cfg, s.Table)
}

// Name implements Source
func (s DocumentSource) Name() string {
	return "document:" + s.Path
}

// ReadDocument parses a coefficient document from r
func ReadDocument(r io.Reader, format config.Format) (Coefficients, error) {
	cfg, err := config.LoadFromReader(r, format)
	if err != nil {
		return Coefficients{}, err
	}
	return decodeDocument(cfg, "")
}

func decodeDocument(cfg *config.Config, table string) (Coefficients, error) {
	key := func(k string) string {
		if table == "" {
			return k
		}
		return table + "." + k
	}

	var rows []Row
	for id, k := range append([]string{KeyQ, KeyEta}, hKeys[:]...) {
		values, err := cfg.GetFloatSlice(key(k))
		if err != nil {
			if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
				// a missing curve fails validation below with a clearer message
				continue
			}
			return Coefficients{}, err
		}
		if len(values) > ColumnCount {
			return Coefficients{}, errors.NewErrorBuilder(errors.ModuleCalibration).
				Operation("DocumentSource.Load").
				Code(mdwerror.CodeInvalidFormat).
				Messagef("%s has %d coefficients, at most %d allowed", k, len(values), ColumnCount).
				Detail("key", key(k)).
				Build()
		}
		row := Row{ID: id}
		copy(row.C[:], values)
		rows = append(rows, row)
	}
	return FromRows(rows)
}

type document struct {
	Q   []float64 `toml:"q" yaml:"q,flow"`
	Eta []float64 `toml:"eta" yaml:"eta,flow"`
	H06 []float64 `toml:"h06" yaml:"h06,flow"`
	H08 []float64 `toml:"h08" yaml:"h08,flow"`
	H10 []float64 `toml:"h10" yaml:"h10,flow"`
	H12 []float64 `toml:"h12" yaml:"h12,flow"`
}

// WriteDocument writes c in the layout DocumentSource reads
func WriteDocument(w io.Writer, c Coefficients, format config.Format) error {
	h := func(s LogisticSet) []float64 { return []float64{s.L, s.K, s.X0} }
	doc := document{
		Q:   c.Q[:],
		Eta: c.Eta[:],
		H06: h(c.H[0]),
		H08: h(c.H[1]),
		H10: h(c.H[2]),
		H12: h(c.H[3]),
	}

	switch format {
	case config.FormatTOML, config.FormatAuto:
		return toml.NewEncoder(w).Encode(doc)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported document format %s", format)
	}
}
