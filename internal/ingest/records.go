package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
)

// record is one CSV row keyed by header name
type record map[string]string

// readRecords reads a CSV file into header-keyed records. Duplicate header
// rows, an artifact of incremental appends during collection, are dropped.
func readRecords(path string) ([]record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	header := rows[0]
	records := make([]record, 0, len(rows)-1)
	droppedHeaders := 0

	for _, row := range rows[1:] {
		if isHeaderRow(row, header) {
			droppedHeaders++
			continue
		}

		rec := make(record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}

	return records, droppedHeaders, nil
}

func isHeaderRow(row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i := range row {
		if row[i] != header[i] {
			return false
		}
	}
	return true
}
