package observations

import (
	"context"
	"fmt"
	"time"

	"gofactorial/internal"
	"gofactorial/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads observations from a worksheet. Each row is a treatment,
// each non-empty cell a replicate.
type ExcelReader struct {
	logger *internal.Logger
	// Sheet defaults to the first sheet of the workbook
	Sheet     string
	HasHeader bool
}

// NewExcelReader creates a reader for the first sheet
func NewExcelReader(logger *internal.Logger) *ExcelReader {
	return &ExcelReader{logger: logger}
}

// Read parses path into rows
func (r *ExcelReader) Read(ctx context.Context, path string) ([][]float64, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open Excel file %s", path), err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.HasHeader && len(raw) > 0 {
		raw = raw[1:]
	}

	rows := make([][]float64, 0, len(raw))
	for i, cells := range raw {
		values, err := parseRow(cells, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, values)
	}

	r.logger.Debug("[ExcelReader] sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return trimTrailingEmpty(rows), nil
}
