// Package source loads task records from tabular files.
//
// Each format is read into a header plus string rows (or typed cells for
// columnar formats) and mapped onto core.TaskRecord by column name. Column
// names match case-insensitively with underscores and spaces ignored.
package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/janekbaraniewski/hourslens/internal/core"
	"github.com/janekbaraniewski/hourslens/internal/logging"
)

const DefaultTable = "tasks"

var (
	ErrUnsupportedFormat = errors.New("unsupported record format")
	ErrMissingColumn     = errors.New("missing column")
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
)

type Options struct {
	// Sheet selects the XLSX worksheet; empty means the first one.
	Sheet string
	// Table selects the SQLite table; empty means DefaultTable.
	Table string
}

// Column names as they appear in Parquet and SQLite sources.
const (
	ColumnSummary              = "summary"
	ColumnHoursEstimate        = "hours_estimate"
	ColumnHoursActual          = "hours_actual"
	ColumnDeveloperHoursActual = "developer_hours_actual"
)

var columns = []string{ColumnSummary, ColumnHoursEstimate, ColumnHoursActual, ColumnDeveloperHoursActual}

// DetectFormat maps a file extension onto a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".parquet":
		return FormatParquet, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads every record from path in source order.
func Load(ctx context.Context, path string, opts Options) ([]core.TaskRecord, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var recs []core.TaskRecord
	switch format {
	case FormatCSV:
		recs, err = loadDelimited(path, ',')
	case FormatTSV:
		recs, err = loadDelimited(path, '\t')
	case FormatXLSX:
		recs, err = loadXLSX(path, opts.Sheet)
	case FormatParquet:
		recs, err = loadParquet(path)
	case FormatSQLite:
		recs, err = loadSQLite(ctx, path, opts.Table)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	logging.Global().Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("rows", len(recs)).
		Msg("records loaded")
	return recs, nil
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", " ", "").Replace(name)
}

// columnIndex locates each known column in header. Absent columns get -1; the
// summary column is required.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	idx := make(map[string]int, len(columns))
	for _, c := range columns {
		i, ok := positions[normalizeHeader(c)]
		if !ok {
			i = -1
		}
		idx[c] = i
	}
	if idx[ColumnSummary] < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnSummary)
	}
	return idx, nil
}

// recordsFromRows maps text rows onto records. Short rows read as empty cells.
func recordsFromRows(header []string, rows [][]string) ([]core.TaskRecord, error) {
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, column string) (string, bool) {
		i := idx[column]
		if i < 0 {
			return "", false
		}
		if i >= len(row) {
			return "", true
		}
		return row[i], true
	}
	number := func(row []string, column string) float64 {
		text, ok := cell(row, column)
		if !ok {
			return math.NaN()
		}
		return ParseNumber(text)
	}

	recs := make([]core.TaskRecord, 0, len(rows))
	for _, row := range rows {
		summary, _ := cell(row, ColumnSummary)
		recs = append(recs, core.TaskRecord{
			Summary:              summary,
			HoursEstimate:        number(row, ColumnHoursEstimate),
			HoursActual:          number(row, ColumnHoursActual),
			DeveloperHoursActual: number(row, ColumnDeveloperHoursActual),
		})
	}
	return recs, nil
}

// ParseNumber coerces cell text to a number: blank text is 0, magnitudes too
// large for a float64 are ±Inf and anything unparseable is NaN.
func ParseNumber(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}
