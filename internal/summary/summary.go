// Package summary pivots decade rows into the wide year-by-bloc display
// table and splices it with earlier, differently-sourced datasets.
package summary

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"blocgdp/internal/model"
)

// Table is a wide year-by-bloc table of world-GDP percentages. Blocs holds
// the column order; Cells maps year then bloc to the summed percentage.
type Table struct {
	Blocs []string
	Years []int
	Cells map[int]map[string]float64
}

func (t Table) Value(year int, bloc string) float64 {
	return t.Cells[year][bloc]
}

func (t Table) hasYear(year int) bool {
	_, ok := t.Cells[year]
	return ok
}

// Options controls the pivot's display shaping. Zero options reproduce the
// plain pivot: every bloc gets a column, sorted alphabetically.
type Options struct {
	// Order lists blocs to place first, in this order. Blocs not listed
	// follow alphabetically.
	Order []string
	// MinShare folds blocs whose share never reaches it into Other.
	MinShare float64
	// Other names the consolidation column. Defaults to "Other".
	Other string
}

// Pivot sums gdp_percent by (decade, bloc) across the rows and shapes the
// result into a display table.
func Pivot(rows []model.DecadeRow, opts Options) Table {
	if opts.Other == "" {
		opts.Other = "Other"
	}

	cells := make(map[int]map[string]float64)
	peak := make(map[string]float64)
	for _, row := range rows {
		if cells[row.Year] == nil {
			cells[row.Year] = make(map[string]float64)
		}
		cells[row.Year][row.Bloc] += row.GDPPercent
		if cells[row.Year][row.Bloc] > peak[row.Bloc] {
			peak[row.Bloc] = cells[row.Year][row.Bloc]
		}
	}

	if opts.MinShare > 0 {
		cells = consolidate(cells, peak, opts)
	}

	return Table{
		Blocs: orderBlocs(cells, opts.Order),
		Years: sortedYears(cells),
		Cells: cells,
	}
}

// consolidate folds every bloc whose share never reaches MinShare into the
// Other column.
func consolidate(cells map[int]map[string]float64, peak map[string]float64, opts Options) map[int]map[string]float64 {
	minor := make(map[string]bool)
	for bloc, max := range peak {
		if max < opts.MinShare && bloc != opts.Other {
			minor[bloc] = true
		}
	}
	if len(minor) == 0 {
		return cells
	}

	folded := make(map[int]map[string]float64, len(cells))
	for year, byBloc := range cells {
		folded[year] = make(map[string]float64, len(byBloc))
		for bloc, value := range byBloc {
			if minor[bloc] {
				folded[year][opts.Other] += value
			} else {
				folded[year][bloc] += value
			}
		}
	}
	return folded
}

// orderBlocs places configured blocs first, the rest alphabetically.
func orderBlocs(cells map[int]map[string]float64, order []string) []string {
	seen := make(map[string]bool)
	for _, byBloc := range cells {
		for bloc := range byBloc {
			seen[bloc] = true
		}
	}

	blocs := make([]string, 0, len(seen))
	placed := make(map[string]bool)
	for _, bloc := range order {
		if seen[bloc] && !placed[bloc] {
			blocs = append(blocs, bloc)
			placed[bloc] = true
		}
	}
	rest := make([]string, 0, len(seen))
	for bloc := range seen {
		if !placed[bloc] {
			rest = append(rest, bloc)
		}
	}
	sort.Strings(rest)
	return append(blocs, rest...)
}

func sortedYears(cells map[int]map[string]float64) []int {
	years := make([]int, 0, len(cells))
	for year := range cells {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// WriteTable writes the wide table as CSV: a Year column followed by one
// column per bloc, values to two decimal places.
func WriteTable(path string, table Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("summary: create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := append([]string{"Year"}, table.Blocs...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, year := range table.Years {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(year))
		for _, bloc := range table.Blocs {
			record = append(record, strconv.FormatFloat(table.Value(year, bloc), 'f', 2, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("summary: write %s: %w", path, err)
	}
	return nil
}

// ReadTable reads a wide table written by WriteTable or sourced elsewhere.
// Blank cells read as zero; rows without a parsable year are dropped.
func ReadTable(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("summary: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("summary: read header %s: %w", path, err)
	}
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "year") {
		return Table{}, fmt.Errorf("summary: %s: first column must be Year", path)
	}
	blocs := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		blocs = append(blocs, strings.TrimSpace(name))
	}

	table := Table{Blocs: blocs, Cells: make(map[int]map[string]float64)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("summary: read %s: %w", path, err)
		}
		if len(record) == 0 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			continue
		}
		row := make(map[string]float64, len(blocs))
		for i, bloc := range blocs {
			value := 0.0
			if i+1 < len(record) {
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64); err == nil {
					value = parsed
				}
			}
			row[bloc] = value
		}
		table.Cells[year] = row
		table.Years = append(table.Years, year)
	}
	return table, nil
}
