package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/janekbaraniewski/hourslens/internal/core"
)

func loadXLSX(path, sheet string) ([]core.TaskRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s (sheet %q is empty)", ErrMissingColumn, ColumnSummary, sheet)
	}
	return recordsFromRows(rows[0], rows[1:])
}
