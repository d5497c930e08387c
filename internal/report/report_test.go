package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janekbaraniewski/hourslens/internal/chart"
	"github.com/janekbaraniewski/hourslens/internal/core"
)

func sampleLayout() chart.Layout {
	return chart.Build([]core.TaskRecord{
		{Summary: "Ship API", HoursActual: 20, HoursEstimate: 30, DeveloperHoursActual: 10},
		{Summary: "Fix <login>", HoursActual: 20, HoursEstimate: 10, DeveloperHoursActual: 20},
		{Summary: "Migrate DB", HoursActual: 12, HoursEstimate: 17, DeveloperHoursActual: 3},
		{Summary: "Typo", HoursActual: 5, HoursEstimate: 5},
		{Summary: "Ship API", HoursActual: 18, HoursEstimate: 30},
	}, chart.DefaultOptions())
}

func TestRowsSkipEmptyBins(t *testing.T) {
	rows := Rows(sampleLayout(), false)
	require.Len(t, rows, 3)

	assert.Equal(t, 0, rows[0].Bin)
	assert.Equal(t, "Under-estimated by 10 to 9.5 hours", rows[0].Range)
	assert.Equal(t, []string{"Fix <login>"}, rows[0].Examples)
	assert.InDelta(t, 1.0, rows[0].Share, 1e-9)

	assert.Equal(t, 30, rows[1].Bin)
	assert.Equal(t, "Over-estimated by 5 to 5.5 hours", rows[1].Range)
	assert.InDelta(t, 0.25, rows[1].Share, 1e-9)

	assert.Equal(t, 39, rows[2].Bin)
	assert.Equal(t, "Over-estimated by 9.5 to 10 hours", rows[2].Range)
	assert.Equal(t, 0, rows[2].More)

	assert.Len(t, Rows(sampleLayout(), true), 40)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleLayout(), Options{Format: TableOut})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Under-estimated by 10 to 9.5 hours")
	assert.Contains(t, output, "Over-estimated by 5 to 5.5 hours")
	assert.Contains(t, output, "Fix <login>")
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "25%")
	assert.Contains(t, output, "Kept 3 of 5 tasks (duplicates: 1, short: 1, out of range: 0)")
	assert.Contains(t, output, "Mean hours over-estimated: 1.67")
	assert.NotContains(t, output, "\x1b[")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, chart.Build(nil, chart.DefaultOptions()), Options{})
	require.NoError(t, err)
	assert.Equal(t, "No tasks in range\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleLayout(), Options{Format: JSONOut})
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	summary := result["summary"].(map[string]any)
	assert.Equal(t, 5.0, summary["input"])
	assert.Equal(t, 3.0, summary["kept"])
	assert.Equal(t, 40.0, summary["bins"])

	bins := result["bins"].([]any)
	require.Len(t, bins, 3)
	first := bins[0].(map[string]any)
	assert.Equal(t, -10.0, first["x0"])
	assert.Equal(t, -9.5, first["x1"])
	assert.Equal(t, 1.0, first["tasks"])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleLayout(), Options{Format: CSVOut})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"bin", "x0", "x1", "tasks", "developer_share", "examples"}, records[0])
	assert.Equal(t, []string{"30", "5", "5.5", "1", "0.2500", "Migrate DB"}, records[2])
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": TableOut, "TABLE": TableOut, "csv": CSVOut, " json ": JSONOut} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}
