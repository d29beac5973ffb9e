// Package dataset reads and writes the pipeline's tabular exchange formats:
// bloc assignment intervals, Maddison-style GDP series, and decade rows.
// Records with missing or unparsable numeric fields are dropped; missing
// files and missing header columns are structural errors.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrMissingHeader = errors.New("dataset: missing header row")

func openReader(path string) (*os.File, *csv.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	return file, reader, nil
}

func readHeader(reader *csv.Reader, required ...string) (map[string]int, error) {
	record, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	header := normalizeHeader(record)
	for _, key := range required {
		if _, ok := header[key]; !ok {
			return nil, fmt.Errorf("dataset: missing column %q", key)
		}
	}
	return header, nil
}

func normalizeHeader(record []string) map[string]int {
	header := make(map[string]int, len(record))
	for i, value := range record {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		header[key] = i
	}
	return header
}

func getCell(record []string, header map[string]int, key string) string {
	index, ok := header[key]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// parseNumber parses a numeric cell, tolerating thousands separators.
// Returns false for blank or unparsable values.
func parseNumber(value string) (float64, bool) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, false
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

func parseInt(value string) (int, bool) {
	number, ok := parseNumber(value)
	if !ok {
		return 0, false
	}
	return int(number), true
}
