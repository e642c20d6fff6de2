package knowledge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoRecords indicates the CSV parsed cleanly but produced no usable rows.
var ErrNoRecords = errors.New("no records in data source")

// Column names recognized in the CSV header, case-insensitive.
// Any other columns (serial numbers, notes) are ignored.
const (
	colContent = "content"
	colCode    = "code"
	colClause  = "clause"
)

// LoadCSV reads intervention records from a CSV file. The header row maps
// columns by name; rows missing content are skipped. Returns ErrNoRecords
// when nothing usable remains, so the caller can substitute the sentinel.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data source: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Rows in the wild sometimes carry stray trailing cells.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRecords
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	contentIdx, ok := idx[colContent]
	if !ok {
		return nil, fmt.Errorf("data source has no %q column", colContent)
	}
	codeIdx, hasCode := idx[colCode]
	clauseIdx, hasClause := idx[colClause]

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		rec := Record{Content: cell(row, contentIdx)}
		if rec.Content == "" {
			continue
		}
		if hasCode {
			rec.Code = cell(row, codeIdx)
		}
		if hasClause {
			rec.Clause = cell(row, clauseIdx)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
