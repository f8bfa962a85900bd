package export

import (
	"io"
	"sort"

	"gofactorial/domain/design"
	"gofactorial/internal/analysis/brief"
)

// QQWriter writes "residual normal-quantile" lines with residuals sorted
// ascending. Plotted, a straight line indicates normally distributed errors.
type QQWriter struct {
	dists *brief.StatisticalDistributions
}

func NewQQWriter() *QQWriter {
	return &QQWriter{dists: brief.NewDistributions()}
}

func (w *QQWriter) Name() string { return "qqnorm" }

func (w *QQWriter) Columns() (x, y string) { return "residual", "normal quantile" }

func (w *QQWriter) Points(residuals []design.Residual) []Point {
	values := make([]float64, len(residuals))
	for i, r := range residuals {
		values[i] = r.Value
	}
	sort.Float64s(values)

	scores := w.dists.NormalScores(len(values))
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{X: v, Y: scores[i]}
	}
	return points
}

func (w *QQWriter) Export(out io.Writer, residuals []design.Residual) error {
	return writePoints(out, w.Points(residuals))
}
