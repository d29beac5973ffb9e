package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"blocgdp/internal/model"
)

var rowsHeader = []string{
	"countrycode", "country", "year", "bloc", "bloc_percentage",
	"gdppc", "pop", "gdp", "gdp_percent",
}

// WriteDecadeRows writes decade rows in the output exchange format. The
// caller is expected to pass rows already sorted by (countrycode, year).
// gdppc, pop, and gdp are rounded to the nearest integer; bloc_percentage
// and gdp_percent to two decimal places.
func WriteDecadeRows(path string, rows []model.DecadeRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(rowsHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.CountryCode,
			row.Country,
			strconv.Itoa(row.Year),
			row.Bloc,
			formatShare(row.BlocPercentage),
			formatWhole(row.GDPPerCapita),
			formatWhole(row.Population),
			formatWhole(row.GDP),
			formatShare(row.GDPPercent),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}

// ReadDecadeRows reads rows previously written by WriteDecadeRows. Used by
// the publisher when no sqlite store is available.
func ReadDecadeRows(path string) ([]model.DecadeRow, error) {
	file, reader, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header, err := readHeader(reader, rowsHeader...)
	if err != nil {
		return nil, err
	}

	rows := make([]model.DecadeRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}

		year, okYear := parseInt(getCell(record, header, "year"))
		blocPct, okBlocPct := parseNumber(getCell(record, header, "bloc_percentage"))
		gdppc, okGDPPC := parseNumber(getCell(record, header, "gdppc"))
		pop, okPop := parseNumber(getCell(record, header, "pop"))
		gdp, okGDP := parseNumber(getCell(record, header, "gdp"))
		gdpPct, okGDPPct := parseNumber(getCell(record, header, "gdp_percent"))
		if !okYear || !okBlocPct || !okGDPPC || !okPop || !okGDP || !okGDPPct {
			continue
		}

		rows = append(rows, model.DecadeRow{
			CountryCode:    getCell(record, header, "countrycode"),
			Country:        getCell(record, header, "country"),
			Year:           year,
			Bloc:           getCell(record, header, "bloc"),
			BlocPercentage: blocPct,
			GDPPerCapita:   gdppc,
			Population:     pop,
			GDP:            gdp,
			GDPPercent:     gdpPct,
		})
	}
	return rows, nil
}

func formatWhole(value float64) string {
	return strconv.FormatInt(int64(math.Round(value)), 10)
}

func formatShare(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
