package calibration

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/foundation/core/errors"
)

// csvHeader is the column layout of the coefficient table
var csvHeader = []string{"ID", "C0", "C1", "C2", "C3", "C4", "C5"}

// CSVSource reads the coefficient table from a CSV file with the columns
// ID,C0..C5. The header line is optional and rows may omit trailing columns.
type CSVSource struct {
	Path string
}

// Load implements Source
func (s CSVSource) Load(ctx context.Context) (Coefficients, error) {
	if err := ctx.Err(); err != nil {
		return Coefficients{}, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Coefficients{}, errors.NotFound(errors.ModuleCalibration, "CSVSource.Load", s.Path)
		}
		return Coefficients{}, mdwerror.Wrap(err, "opening coefficient file").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("calibration.CSVSource.Load").
			WithDetail("path", s.Path)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return Coefficients{}, err
	}
	return FromRows(rows)
}

// Name implements Source
func (s CSVSource) Name() string {
	return "csv:" + s.Path
}

// ReadCSV parses coefficient rows. Lines starting with '#' are comments.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewErrorBuilder(errors.ModuleCalibration).
				Operation("ReadCSV").
				Code(mdwerror.CodeInvalidFormat).
				Message("malformed coefficient table").
				Cause(err).
				Build()
		}

		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0]) {
				continue
			}
		}

		line, _ := reader.FieldPos(0)
		row, err := parseRow(record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string, line int) (Row, error) {
	if len(record) > len(csvHeader) {
		return Row{}, rowError(line, "too many columns", strings.Join(record, ","))
	}

	var row Row
	id, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return Row{}, rowError(line, "row ID is not an integer", record[0])
	}
	row.ID = id

	for i, field := range record[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Row{}, rowError(line, "coefficient is not a number", field)
		}
		row.C[i] = v
	}
	return row, nil
}

func rowError(line int, reason, value string) *mdwerror.Error {
	return errors.NewErrorBuilder(errors.ModuleCalibration).
		Operation("ReadCSV").
		Code(mdwerror.CodeInvalidFormat).
		Messagef("line %d: %s", line, reason).
		Detail("line", line).
		Detail("value", value).
		Build()
}

// WriteCSV writes c in the layout ReadCSV accepts, header included
func WriteCSV(w io.Writer, c Coefficients) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range c.Rows() {
		record := make([]string, 0, len(csvHeader))
		record = append(record, strconv.Itoa(row.ID))
		for _, v := range row.C {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
