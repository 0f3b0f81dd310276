// Package tabular parses uploaded byte streams into ordered tables.
// Supported formats: csv (encoding/csv) and xlsx/xls (excelize).
package tabular

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/jeswanthrajan/sentiment-analysis/models"
)

// Read parses the stream into a Table given its declared extension.
// Unsupported extensions fail with models.UnsupportedFormatError
// before any bytes are consumed.
func Read(r io.Reader, extension string) (*models.Table, error) {
	switch normalizeExt(extension) {
	case "csv":
		return readCSV(r)
	case "xlsx", "xls":
		return readExcel(r)
	default:
		return nil, &models.UnsupportedFormatError{Extension: extension}
	}
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func readCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are padded below
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}

	return buildTable(records)
}

func readExcel(r io.Reader) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}

	return buildTable(rows)
}

// buildTable treats the first record as the header and pads short rows
// so every row has one cell per column.
func buildTable(records [][]string) (*models.Table, error) {
	if len(records) == 0 {
		return nil, errors.New("file contains no rows")
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(rec) {
				row[i] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return &models.Table{Columns: columns, Rows: rows}, nil
}
