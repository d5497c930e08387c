package source

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/janekbaraniewski/hourslens/internal/core"
)

// loadParquet reads rows through the core.TaskRecord struct tags. Numeric
// columns absent from the file schema read as NaN.
func loadParquet(path string) ([]core.TaskRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}

	schema := pf.Schema()
	if _, ok := schema.Lookup(ColumnSummary); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnSummary)
	}
	missing := func(column string) bool {
		_, ok := schema.Lookup(column)
		return !ok
	}

	reader := parquet.NewGenericReader[core.TaskRecord](file)
	defer reader.Close()

	recs := make([]core.TaskRecord, reader.NumRows())
	n, err := reader.Read(recs)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading parquet rows: %w", err)
	}
	recs = recs[:n]

	noEstimate, noActual, noDeveloper := missing(ColumnHoursEstimate), missing(ColumnHoursActual), missing(ColumnDeveloperHoursActual)
	for i := range recs {
		if noEstimate {
			recs[i].HoursEstimate = math.NaN()
		}
		if noActual {
			recs[i].HoursActual = math.NaN()
		}
		if noDeveloper {
			recs[i].DeveloperHoursActual = math.NaN()
		}
	}
	return recs, nil
}
