package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/janekbaraniewski/hourslens/internal/core"
)

func loadDelimited(path string, comma rune) ([]core.TaskRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readDelimited(f, comma)
}

func readDelimited(r io.Reader, comma rune) ([]core.TaskRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, ColumnSummary)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return recordsFromRows(header, rows)
}
