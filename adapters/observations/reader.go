package observations

import (
	"path/filepath"
	"strconv"
	"strings"

	"gofactorial/domain/core"
	"gofactorial/internal"
	"gofactorial/ports"
)

// ForPath selects a reader from the file extension: .csv and .xlsx get their
// dedicated readers, anything else is read as whitespace-separated text.
func ForPath(path string, logger *internal.Logger) ports.ObservationReader {
	if logger == nil {
		logger = internal.Discard
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVReader(logger)
	case ".xlsx", ".xlsm":
		return NewExcelReader(logger)
	default:
		return NewTextReader(logger)
	}
}

// parseRow converts one row of tokens. row is zero-based and only used for
// error messages.
func parseRow(tokens []string, row int) ([]float64, error) {
	values := make([]float64, len(tokens))
	for col, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, core.NewBadValueError(row, col, "cannot parse "+strconv.Quote(tok)+" as a number")
		}
		values[col] = v
	}
	return values, nil
}

// trimTrailingEmpty drops empty rows at the end of a file. Empty rows in the
// middle are kept so that validation reports them.
func trimTrailingEmpty(rows [][]float64) [][]float64 {
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}
