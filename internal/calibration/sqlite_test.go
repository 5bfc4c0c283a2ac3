package calibration

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
)

func TestSQLiteSource_StoreLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "coefficients.db")
	src := SQLiteSource{Path: path}

	if err := src.Store(ctx, Default()); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	// storing twice replaces the rows
	if err := src.Store(ctx, Default()); err != nil {
		t.Fatalf("second Store() error = %v", err)
	}

	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != Default() {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestSQLiteSource_NullColumns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "coefficients.sqlite")
	src := SQLiteSource{Path: path}
	if err := src.Store(ctx, Default()); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE coefficients SET c3 = NULL, c4 = NULL, c5 = NULL WHERE id >= 2`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.H != Default().H {
		t.Errorf("Load().H = %+v, want %+v", got.H, Default().H)
	}
}

func TestSQLiteSource_NullCoefficient(t *testing.T) {
	tests := []struct {
		name   string
		update string
		row    int
	}{
		{"trailing Q column", `UPDATE coefficients SET c5 = NULL WHERE id = 0`, 0},
		{"eta column", `UPDATE coefficients SET c2 = NULL WHERE id = 1`, 1},
		{"logistic midpoint", `UPDATE coefficients SET c2 = NULL WHERE id = 4`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "coefficients.db")
			src := SQLiteSource{Path: path}
			if err := src.Store(ctx, Default()); err != nil {
				t.Fatalf("Store() error = %v", err)
			}

			db, err := sql.Open("sqlite3", path)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := db.Exec(tt.update); err != nil {
				t.Fatal(err)
			}
			db.Close()

			_, err = src.Load(ctx)
			if !mdwerror.HasCode(err, mdwerror.CodeDataCorruption) {
				t.Fatalf("Load() error = %v, want DATA_CORRUPTION", err)
			}
			var e *mdwerror.Error
			if !errors.As(err, &e) {
				t.Fatalf("Load() error type = %T", err)
			}
			if row, _ := e.Detail("row"); row != tt.row {
				t.Errorf("row detail = %v, want %d", row, tt.row)
			}
		})
	}
}

func TestSQLiteSource_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := SQLiteSource{Path: filepath.Join(dir, "nope.db")}.Load(ctx)
		if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			t.Errorf("Load() error = %v, want NOT_FOUND", err)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		path := filepath.Join(dir, "empty.db")
		db, err := sql.Open("sqlite3", path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := db.Exec(`CREATE TABLE other (x INTEGER)`); err != nil {
			t.Fatal(err)
		}
		db.Close()

		_, err = SQLiteSource{Path: path}.Load(ctx)
		if !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
			t.Errorf("Load() error = %v, want DATABASE_ERROR", err)
		}
	})

	t.Run("invalid coefficients", func(t *testing.T) {
		c := Default()
		c.Q[0] = 0
		err := SQLiteSource{Path: filepath.Join(dir, "bad.db")}.Store(ctx, c)
		if !mdwerror.HasCode(err, mdwerror.CodeDataCorruption) {
			t.Errorf("Store() error = %v, want DATA_CORRUPTION", err)
		}
	})
}
