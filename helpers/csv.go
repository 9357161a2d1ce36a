package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// CSV HELPER — Parses CSV data into []engine.Record
// ============================================================================
// Consumer reads the CSV from wherever it lives (file, S3, Sheets).
// This helper converts the raw bytes into generic Records: numeric cells
// become measures, everything else becomes a dimension. Columns listed as
// dimensions are never parsed as numbers, so "2024" can be a category.
// Empty cells are left out of the record.
// ============================================================================

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("csv: missing header row")

// ParseCSV parses CSV bytes into Records and returns the snake_cased column
// keys in header order. dimensions names columns (raw or snake_cased) that
// are always kept as text.
func ParseCSV(data []byte, dimensions ...string) ([]engine.Record, []string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	forced := make(map[string]bool, len(dimensions))
	for _, d := range dimensions {
		forced[toSnakeCase(strings.TrimSpace(d))] = true
	}

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimSpace(h))
	}

	var records []engine.Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		rec := engine.Record{
			Dimensions: make(map[string]string),
			Measures:   make(map[string]float64),
		}

		for i, val := range row {
			if i >= len(keys) {
				break
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}

			// Try numeric first
			if !forced[keys[i]] {
				if f, err := strconv.ParseFloat(val, 64); err == nil {
					rec.Measures[keys[i]] = f
					continue
				}
			}
			rec.Dimensions[keys[i]] = val
		}

		records = append(records, rec)
	}

	return records, keys, nil
}

// ParseCSVView parses CSV into a RecordView (convenience wrapper).
func ParseCSVView(data []byte, dimensions ...string) (engine.RecordView, []string, error) {
	records, keys, err := ParseCSV(data, dimensions...)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewSliceView(records), keys, nil
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
