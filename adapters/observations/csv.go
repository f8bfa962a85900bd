package observations

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"gofactorial/internal"
	"gofactorial/internal/errors"
)

// CSVReader reads comma-separated observations, one treatment per record
type CSVReader struct {
	logger *internal.Logger
	// HasHeader skips the first record
	HasHeader bool
	Comma     rune
}

// NewCSVReader creates a CSV reader without header
func NewCSVReader(logger *internal.Logger) *CSVReader {
	return &CSVReader{logger: logger, Comma: ','}
}

// Read parses path into rows
func (r *CSVReader) Read(ctx context.Context, path string) ([][]float64, error) {
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open CSV file %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = r.Comma
	reader.FieldsPerRecord = -1 // shape is validated by the grid loader
	reader.TrimLeadingSpace = true

	var rows [][]float64
	for line := 0; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.IOError("failed to read CSV file", err)
		}
		if line == 0 && r.HasHeader {
			continue
		}
		values, err := parseRow(record, len(rows))
		if err != nil {
			return nil, err
		}
		rows = append(rows, values)
	}

	r.logger.Debug("[CSVReader] read %d rows from %s in %.2fms", len(rows), path, float64(time.Since(start).Nanoseconds())/1e6)
	return trimTrailingEmpty(rows), nil
}
