package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// RawRow holds one data line keyed by the raw header of each column. Cells
// missing from short lines are present with empty values.
type RawRow map[string]string

// Table is the parsed form of one delimited file: the header line in file
// order plus every data row.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// ReadFile parses the delimited file at path. A missing file yields an empty
// table rather than an error; human workflows routinely reference exports
// that have not been produced yet. Structural parse failures abort the whole
// read with nothing partially ingested.
func ReadFile(path string, delimiter rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	table, err := Read(file, delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// Read parses delimited text: first line headers, one record per subsequent
// line. Column order and count are not fixed; short rows are padded with
// empty cells. Blank lines are skipped, but rows whose cells are all empty
// are preserved so validation can tally them as dropped.
func Read(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := &Table{Headers: headers}
	for _, record := range records[1:] {
		row := make(RawRow, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ParseBool interprets spreadsheet-style boolean flags. Yes/true/1/y in any
// case parse to true; anything else, including blank, is false.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "y":
		return true
	default:
		return false
	}
}
