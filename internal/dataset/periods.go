package dataset

import (
	"fmt"
	"io"

	"blocgdp/internal/model"
)

// LoadAssignments reads bloc assignment intervals from a CSV file with
// columns countrycode, start_year, end_year, bloc, percentage. Rows with
// unparsable numeric fields are dropped; the second return value counts
// them.
func LoadAssignments(path string) ([]model.Assignment, int, error) {
	file, reader, err := openReader(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	header, err := readHeader(reader, "countrycode", "start_year", "end_year", "bloc", "percentage")
	if err != nil {
		return nil, 0, err
	}

	assignments := make([]model.Assignment, 0)
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("dataset: read %s: %w", path, err)
		}

		code := getCell(record, header, "countrycode")
		bloc := getCell(record, header, "bloc")
		startYear, okStart := parseInt(getCell(record, header, "start_year"))
		endYear, okEnd := parseInt(getCell(record, header, "end_year"))
		percentage, okPct := parseNumber(getCell(record, header, "percentage"))
		if code == "" || bloc == "" || !okStart || !okEnd || !okPct {
			skipped++
			continue
		}

		assignments = append(assignments, model.Assignment{
			CountryCode: code,
			StartYear:   startYear,
			EndYear:     endYear,
			Bloc:        bloc,
			Percentage:  percentage,
		})
	}
	return assignments, skipped, nil
}
