package source

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/janekbaraniewski/hourslens/internal/core"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func loadSQLite(ctx context.Context, path, table string) ([]core.TaskRecord, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening DB: %w", err)
	}
	defer db.Close()

	header, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	selects := make([]string, len(columns))
	for i, c := range columns {
		if idx[c] < 0 {
			selects[i] = "NULL"
			continue
		}
		selects[i] = `"` + strings.ReplaceAll(header[idx[c]], `"`, `""`) + `"`
	}
	query := fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY rowid`, strings.Join(selects, ", "), table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var recs []core.TaskRecord
	for rows.Next() {
		var summary, estimate, actual, developer any
		if err := rows.Scan(&summary, &estimate, &actual, &developer); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		recs = append(recs, core.TaskRecord{
			Summary:              textValue(summary),
			HoursEstimate:        numericValue(estimate),
			HoursActual:          numericValue(actual),
			DeveloperHoursActual: numericValue(developer),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	return recs, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT name FROM pragma_table_info('%s')`, table))
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// numericValue treats SQL NULL as a missing value and coerces text like a
// delimited cell.
func numericValue(v any) float64 {
	switch t := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return t
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return ParseNumber(t)
	case []byte:
		return ParseNumber(string(t))
	default:
		return math.NaN()
	}
}

// readOnlyDSN builds an escaped file: URI so that '?' and '#' in path stay
// part of the file name.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String()
}
