package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gofactorial/domain/design"
	"gofactorial/ports"
)

// LatexReporter prints a tabular environment ready to \input into a document
type LatexReporter struct{}

func NewLatexReporter() *LatexReporter { return &LatexReporter{} }

func (r *LatexReporter) Name() string { return "latex" }

func latexPercent(x float64) string {
	return strings.TrimSuffix(percent(x), "%") + `\%`
}

func (r *LatexReporter) Report(w io.Writer, s *design.Summary, opts ports.ReportOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, `\begin{tabular}{|ll|lll|l|}`)
	fmt.Fprintln(bw, `\hline`)
	fmt.Fprintf(bw, "SSY & %s & SST & %s & & \\multirow{2}{*}{conf intervals} \\\\\n",
		approx(s.SSY), approx(s.SST))
	fmt.Fprintf(bw, "std dev & %s & SSE & %s & %s & \\\\\n",
		approx(s.StdDev), approx(s.SSE), latexPercent(s.SSEFraction))
	fmt.Fprintln(bw, `\hline`)

	for _, e := range visible(s, opts) {
		importance := ""
		if e.Index > 0 {
			importance = latexPercent(e.RelativeImportance)
		}
		mark := ""
		if e.ZeroCrossing {
			mark = "*"
		}
		fmt.Fprintf(bw, "q%[1]s & %[2]s & SS%[1]s & %[3]s & %[4]s & (%[5]s, %[6]s) %[7]s \\\\\n",
			e.Label, approx(e.Estimate), approx(e.SS), importance,
			approx(e.Interval.Lower), approx(e.Interval.Upper), mark)
	}

	fmt.Fprintln(bw, `\hline`)
	fmt.Fprintln(bw, `\end{tabular}`)
	return bw.Flush()
}
