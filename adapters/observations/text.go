package observations

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gofactorial/internal"
	"gofactorial/internal/errors"
)

// TextReader reads the plain observation format: one line per treatment
// combination, replicate values separated by whitespace.
type TextReader struct {
	logger *internal.Logger
}

// NewTextReader creates a whitespace-delimited reader
func NewTextReader(logger *internal.Logger) *TextReader {
	return &TextReader{logger: logger}
}

// Read parses path into rows
func (r *TextReader) Read(ctx context.Context, path string) ([][]float64, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open observation file %s", path), err)
	}
	defer f.Close()

	rows, err := r.parse(ctx, f)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("[TextReader] read %d rows from %s in %.2fms", len(rows), path, float64(time.Since(start).Nanoseconds())/1e6)
	return rows, nil
}

func (r *TextReader) parse(ctx context.Context, f *os.File) ([][]float64, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var rows [][]float64
	for line := 0; scanner.Scan(); line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		values, err := parseRow(strings.Fields(scanner.Text()), line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, values)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.IOError("failed to read observation file", err)
	}

	return trimTrailingEmpty(rows), nil
}
