package export

import (
	"io"

	"gofactorial/domain/design"
	"gofactorial/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WorkbookWriter lays the points of another writer out as a two-column sheet
type WorkbookWriter struct {
	source pointSource
	// Sheet defaults to the source writer's name
	Sheet string
}

func NewWorkbookWriter(source pointSource) *WorkbookWriter {
	return &WorkbookWriter{source: source}
}

func (w *WorkbookWriter) Name() string { return w.source.Name() + "-xlsx" }

func (w *WorkbookWriter) Export(out io.Writer, residuals []design.Residual) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheet = w.source.Name()
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}

	x, y := w.source.Columns()
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{x, y}); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for i, p := range w.source.Points(residuals) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to address cell")
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{p.X, p.Y}); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return errors.IOError("failed to write workbook", err)
	}
	return nil
}
