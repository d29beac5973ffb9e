package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocgdp/internal/model"
)

func fixtureRows() []model.DecadeRow {
	return []model.DecadeRow{
		{CountryCode: "GBR", Year: 1850, Bloc: "British Empire", GDPPercent: 20.5},
		{CountryCode: "IND", Year: 1850, Bloc: "British Empire", GDPPercent: 12.25},
		{CountryCode: "CHN", Year: 1850, Bloc: "China", GDPPercent: 30.0},
		{CountryCode: "PRT", Year: 1850, Bloc: "Portuguese Empire", GDPPercent: 0.75},
		{CountryCode: "GBR", Year: 1900, Bloc: "British Empire", GDPPercent: 24.0},
		{CountryCode: "CHN", Year: 1900, Bloc: "China", GDPPercent: 11.0},
		{CountryCode: "PRT", Year: 1900, Bloc: "Portuguese Empire", GDPPercent: 0.5},
	}
}

func TestPivotSumsByDecadeAndBloc(t *testing.T) {
	table := Pivot(fixtureRows(), Options{})

	assert.Equal(t, []int{1850, 1900}, table.Years)
	assert.Equal(t, []string{"British Empire", "China", "Portuguese Empire"}, table.Blocs)
	assert.InDelta(t, 32.75, table.Value(1850, "British Empire"), 1e-9)
	assert.InDelta(t, 11.0, table.Value(1900, "China"), 1e-9)
	assert.Zero(t, table.Value(1900, "absent"))
}

func TestPivotOrdering(t *testing.T) {
	table := Pivot(fixtureRows(), Options{Order: []string{"China", "British Empire", "Unknown Bloc"}})
	assert.Equal(t, []string{"China", "British Empire", "Portuguese Empire"}, table.Blocs)
}

func TestPivotConsolidatesMinorBlocs(t *testing.T) {
	table := Pivot(fixtureRows(), Options{MinShare: 1.0})

	assert.Equal(t, []string{"British Empire", "China", "Other"}, table.Blocs)
	assert.InDelta(t, 0.75, table.Value(1850, "Other"), 1e-9)
	assert.Zero(t, table.Value(1850, "Portuguese Empire"))
}

func TestWriteReadTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	table := Pivot(fixtureRows(), Options{})
	require.NoError(t, WriteTable(path, table))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Year,British Empire,China,Portuguese Empire")
	assert.Contains(t, string(content), "1850,32.75,30.00,0.75")

	got, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, table.Blocs, got.Blocs)
	assert.Equal(t, table.Years, got.Years)
	assert.InDelta(t, 24.0, got.Value(1900, "British Empire"), 1e-9)
}

func TestReadTableBlankCellsAreZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.csv")
	require.NoError(t, os.WriteFile(path, []byte("Year,Roman Empire,China\n100,35.2,\n200,30.1,22.4\n"), 0o644))

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Zero(t, table.Value(100, "China"))
	assert.InDelta(t, 22.4, table.Value(200, "China"), 1e-9)
}

func TestReadTableRequiresYearColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.csv")
	require.NoError(t, os.WriteFile(path, []byte("decade,China\n1850,30\n"), 0o644))

	_, err := ReadTable(path)
	require.Error(t, err)
}
