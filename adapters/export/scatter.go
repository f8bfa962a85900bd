package export

import (
	"bufio"
	"io"

	"gofactorial/domain/design"
)

// ScatterWriter writes "fitted residual" lines ordered by fitted value, one
// per observation
type ScatterWriter struct{}

func NewScatterWriter() *ScatterWriter { return &ScatterWriter{} }

func (w *ScatterWriter) Name() string { return "residuals" }

func (w *ScatterWriter) Columns() (x, y string) { return "fitted", "residual" }

func (w *ScatterWriter) Points(residuals []design.Residual) []Point {
	sorted := byFitted(residuals)
	points := make([]Point, len(sorted))
	for i, r := range sorted {
		points[i] = Point{X: r.Fitted, Y: r.Value}
	}
	return points
}

func (w *ScatterWriter) Export(out io.Writer, residuals []design.Residual) error {
	return writePoints(out, w.Points(residuals))
}

func writePoints(out io.Writer, points []Point) error {
	bw := bufio.NewWriter(out)
	for _, p := range points {
		bw.WriteString(formatFloat(p.X))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(p.Y))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
