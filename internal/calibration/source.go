package calibration

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/msto63/viscocorrect/foundation/core/errors"
)

// Source loads a coefficient table from external storage
type Source interface {
	Load(ctx context.Context) (Coefficients, error)
	// Name describes the source in logs and errors
	Name() string
}

// Source kinds accepted by SourceFor
const (
	KindBuiltin = "builtin"
	KindCSV     = "csv"
	KindTOML    = "toml"
	KindYAML    = "yaml"
	KindSQLite  = "sqlite"
)

// StaticSource serves coefficients held in memory
type StaticSource struct {
	Coefficients Coefficients
	Label        string
}

// Builtin returns a source for the shipped coefficients
func Builtin() StaticSource {
	return StaticSource{Coefficients: Default(), Label: KindBuiltin}
}

// Load validates and returns the held coefficients
func (s StaticSource) Load(ctx context.Context) (Coefficients, error) {
	if err := ctx.Err(); err != nil {
		return Coefficients{}, err
	}
	if err := s.Coefficients.Validate(); err != nil {
		return Coefficients{}, err
	}
	return s.Coefficients, nil
}

// Name implements Source
func (s StaticSource) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

// SourceFor selects a source by kind, or by the extension of path when
// kind is empty. An empty kind and path select the built-in table.
func SourceFor(kind, path string) (Source, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = kindFromPath(path)
	}

	if kind != KindBuiltin && path == "" {
		return nil, errors.InvalidInput(errors.ModuleCalibration, "SourceFor", kind, "a file path for non built-in sources")
	}

	switch kind {
	case KindBuiltin:
		return Builtin(), nil
	case KindCSV:
		return CSVSource{Path: path}, nil
	case KindTOML, KindYAML:
		return DocumentSource{Path: path}, nil
	case KindSQLite:
		return SQLiteSource{Path: path}, nil
	default:
		return nil, errors.InvalidInput(errors.ModuleCalibration, "SourceFor", kind, "one of builtin, csv, toml, yaml, sqlite")
	}
}

func kindFromPath(path string) string {
	if path == "" {
		return KindBuiltin
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return KindCSV
	case ".toml":
		return KindTOML
	case ".yaml", ".yml":
		return KindYAML
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}
