package dataset

import (
	"fmt"
	"io"

	"blocgdp/internal/model"
)

// SeriesData is the result of loading a Maddison-format GDP file: data
// points grouped by country code, plus the display name seen first for each
// code.
type SeriesData struct {
	Points  map[string][]model.DataPoint
	Names   map[string]string
	Skipped int
}

// LoadSeries reads a GDP series CSV with columns countrycode, country, year,
// gdppc, pop. Numeric fields may carry thousands separators. Rows with a
// blank or unparsable year, gdppc, or pop are treated as absent, not zero.
func LoadSeries(path string) (*SeriesData, error) {
	file, reader, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header, err := readHeader(reader, "countrycode", "country", "year", "gdppc", "pop")
	if err != nil {
		return nil, err
	}

	data := &SeriesData{
		Points: make(map[string][]model.DataPoint),
		Names:  make(map[string]string),
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s: %w", path, err)
		}

		code := getCell(record, header, "countrycode")
		if code == "" {
			data.Skipped++
			continue
		}
		if name := getCell(record, header, "country"); name != "" {
			if _, seen := data.Names[code]; !seen {
				data.Names[code] = name
			}
		}

		year, okYear := parseInt(getCell(record, header, "year"))
		gdppc, okGDP := parseNumber(getCell(record, header, "gdppc"))
		pop, okPop := parseNumber(getCell(record, header, "pop"))
		if !okYear || !okGDP || !okPop {
			data.Skipped++
			continue
		}

		data.Points[code] = append(data.Points[code], model.DataPoint{
			Year:         year,
			GDPPerCapita: gdppc,
			Population:   pop,
		})
	}
	return data, nil
}
