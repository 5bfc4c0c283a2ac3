package calibration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/foundation/core/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS coefficients (
	id INTEGER PRIMARY KEY,
	c0 REAL,
	c1 REAL,
	c2 REAL,
	c3 REAL,
	c4 REAL,
	c5 REAL
);`

// SQLiteSource reads the coefficient table from an SQLite database with a
// table coefficients(id, c0..c5). Loading opens the database read-only.
type SQLiteSource struct {
	Path string
}

// Load implements Source
func (s SQLiteSource) Load(ctx context.Context) (Coefficients, error) {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return Coefficients{}, errors.NotFound(errors.ModuleCalibration, "SQLiteSource.Load", s.Path)
	}

	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return Coefficients{}, s.dbError(err, "failed to open database")
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, c0, c1, c2, c3, c4, c5 FROM coefficients ORDER BY id`)
	if err != nil {
		return Coefficients{}, s.dbError(err, "failed to query coefficients")
	}
	defer rows.Close()

	var table []Row
	for rows.Next() {
		var id int
		var c [ColumnCount]sql.NullFloat64
		if err := rows.Scan(&id, &c[0], &c[1], &c[2], &c[3], &c[4], &c[5]); err != nil {
			return Coefficients{}, s.dbError(err, "failed to scan coefficient row")
		}
		row := Row{ID: id}
		for i, v := range c {
			if !v.Valid && i < usedColumns(id) {
				return Coefficients{}, errors.NewErrorBuilder(errors.ModuleCalibration).
					Operation("SQLiteSource.Load").
					Code(mdwerror.CodeDataCorruption).
					Messagef("row %d: coefficient c%d is NULL", id, i).
					Detail("row", id).
					Detail("column", fmt.Sprintf("c%d", i)).
					Build()
			}
			row.C[i] = v.Float64
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return Coefficients{}, s.dbError(err, "failed to read coefficients")
	}

	return FromRows(table)
}

// usedColumns is the number of columns a row's curve reads. Head rows are
// logistic curves and ignore c3..c5.
func usedColumns(id int) int {
	if id >= RowH06 {
		return 3
	}
	return ColumnCount
}

// Name implements Source
func (s SQLiteSource) Name() string {
	return "sqlite:" + s.Path
}

// Store writes c into the database, creating file and table as needed.
// Existing rows with the same IDs are replaced.
func (s SQLiteSource) Store(ctx context.Context, c Coefficients) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return s.dbError(err, "failed to open database")
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return s.dbError(err, "failed to initialize schema")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return s.dbError(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO coefficients (id, c0, c1, c2, c3, c4, c5) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return s.dbError(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for _, row := range c.Rows() {
		if _, err := stmt.ExecContext(ctx, row.ID, row.C[0], row.C[1], row.C[2], row.C[3], row.C[4], row.C[5]); err != nil {
			return s.dbError(err, fmt.Sprintf("failed to store row %d", row.ID))
		}
	}

	if err := tx.Commit(); err != nil {
		return s.dbError(err, "failed to commit")
	}
	return nil
}

func (s SQLiteSource) dbError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation("calibration.SQLiteSource").
		WithDetail("path", s.Path)
}
