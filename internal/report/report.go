// Package report writes the binned histogram as a table, CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/hover"
)

type Format string

const (
	TableOut Format = "table"
	CSVOut   Format = "csv"
	JSONOut  Format = "json"
)

// ParseFormat accepts the names above case-insensitively; empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", TableOut:
		return TableOut, nil
	case CSVOut, JSONOut:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, csv or json)", s)
}

type Options struct {
	Format    Format
	UseColors bool
	// IncludeEmpty keeps bins that hold no records.
	IncludeEmpty bool
}

// Row is one bin as reported.
type Row struct {
	Bin      int      `json:"bin"`
	X0       float64  `json:"x0"`
	X1       float64  `json:"x1"`
	Range    string   `json:"range"`
	Tasks    int      `json:"tasks"`
	Share    float64  `json:"developer_share"`
	Examples []string `json:"examples"`
	More     int      `json:"more"`
}

type Summary struct {
	Input      int     `json:"input"`
	Duplicates int     `json:"duplicates"`
	ShortTasks int     `json:"short_tasks"`
	OutOfRange int     `json:"out_of_range"`
	Kept       int     `json:"kept"`
	Bins       int     `json:"bins"`
	Mean       float64 `json:"mean_hours_over_estimated"`
}

type document struct {
	Summary Summary `json:"summary"`
	Bins    []Row   `json:"bins"`
}

// Rows summarizes each bin the same way the hover tooltip does.
func Rows(l chart.Layout, includeEmpty bool) []Row {
	ctx := hover.NewContext(l, nil)
	rows := make([]Row, 0, len(l.Bins))
	for i, b := range l.Bins {
		if b.Len() == 0 && !includeEmpty {
			continue
		}
		tip, _ := hover.Summarize(ctx, i)
		rows = append(rows, Row{
			Bin:      i,
			X0:       b.X0,
			X1:       b.X1,
			Range:    tip.Range,
			Tasks:    b.Len(),
			Share:    tip.Share,
			Examples: tip.Examples,
			More:     tip.Count,
		})
	}
	return rows
}

func summarize(l chart.Layout) Summary {
	return Summary{
		Input:      l.Stats.Input,
		Duplicates: l.Stats.Duplicates,
		ShortTasks: l.Stats.ShortTasks,
		OutOfRange: l.Stats.OutOfRange,
		Kept:       l.Stats.Kept,
		Bins:       len(l.Bins),
		Mean:       l.Mean,
	}
}

// Write renders l to w in the requested format.
func Write(w io.Writer, l chart.Layout, opts Options) error {
	rows := Rows(l, opts.IncludeEmpty)
	switch opts.Format {
	case JSONOut:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(document{Summary: summarize(l), Bins: rows}); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case CSVOut:
		if err := writeCSV(w, rows); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		return writeTable(w, l, rows, opts.UseColors)
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bin", "x0", "x1", "tasks", "developer_share", "examples"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Bin),
			strconv.FormatFloat(r.X0, 'f', -1, 64),
			strconv.FormatFloat(r.X1, 'f', -1, 64),
			strconv.Itoa(r.Tasks),
			strconv.FormatFloat(r.Share, 'f', 4, 64),
			strings.Join(r.Examples, "; "),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(w io.Writer, l chart.Layout, rows []Row, useColors bool) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No tasks in range")
		return err
	}

	red, green := fmt.Sprint, fmt.Sprint
	if useColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Bin", "Range", "Tasks", "Dev share", "Examples"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft}
	})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		rangeText := green(r.Range)
		if r.X0 < 0 {
			rangeText = red(r.Range)
		}
		examples := strings.Join(r.Examples, ", ")
		if r.More > 0 {
			examples += fmt.Sprintf(" (+%d more)", r.More)
		}
		data = append(data, []string{
			strconv.Itoa(r.Bin),
			rangeText,
			strconv.Itoa(r.Tasks),
			strconv.FormatFloat(r.Share*100, 'f', 0, 64) + "%",
			examples,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := summarize(l)
	if _, err := fmt.Fprintf(w, "Kept %d of %d tasks (duplicates: %d, short: %d, out of range: %d)\n",
		s.Kept, s.Input, s.Duplicates, s.ShortTasks, s.OutOfRange); err != nil {
		return err
	}
	if l.HasMean {
		if _, err := fmt.Fprintf(w, "Mean hours over-estimated: %.2f\n", s.Mean); err != nil {
			return err
		}
	}
	return nil
}
