// Package export writes residual diagnostics in formats plotting tools read
// directly.
package export

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gofactorial/domain/design"
	"gofactorial/ports"
)

// ScatterForPath returns the residual-versus-fitted writer for path. Excel
// workbooks get a sheet, anything else plain text.
func ScatterForPath(path string) ports.ResidualExporter {
	if isWorkbook(path) {
		return NewWorkbookWriter(NewScatterWriter())
	}
	return NewScatterWriter()
}

// QQForPath returns the normal Q-Q writer for path
func QQForPath(path string) ports.ResidualExporter {
	if isWorkbook(path) {
		return NewWorkbookWriter(NewQQWriter())
	}
	return NewQQWriter()
}

func isWorkbook(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xlsm"
}

// Point is one (x, y) pair of a diagnostic plot
type Point struct {
	X, Y float64
}

// pointSource is implemented by the writers whose points can be laid out in
// a workbook
type pointSource interface {
	ports.ResidualExporter
	Points(residuals []design.Residual) []Point
	Columns() (x, y string)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// byFitted returns a copy of residuals ordered by fitted value. Residuals of
// the same treatment keep their replicate order.
func byFitted(residuals []design.Residual) []design.Residual {
	sorted := make([]design.Residual, len(residuals))
	copy(sorted, residuals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fitted < sorted[j].Fitted
	})
	return sorted
}
