package report

import (
	"bufio"
	"fmt"
	"io"

	"gofactorial/domain/design"
	"gofactorial/ports"
)

// ZeroCrossingMark flags effects whose interval contains zero in text reports
const ZeroCrossingMark = "***"

// TextReporter prints the plain summary:
//
//	SSY 2.72e+04
//	SST 7.03e+03
//	SSE 102 1.45%
//	std dev 1.03
//	qA -21.5 SSA 5.55e+03 78.88% (-23.4, -19.6)
type TextReporter struct{}

func NewTextReporter() *TextReporter { return &TextReporter{} }

func (r *TextReporter) Name() string { return "text" }

func (r *TextReporter) Report(w io.Writer, s *design.Summary, opts ports.ReportOptions) error {
	bw := bufio.NewWriter(w)

	if opts.Source != "" {
		fmt.Fprintf(bw, "# %s (k = %d, r = %d, confidence = %g)\n", opts.Source, s.K, s.R, s.Confidence)
	}
	fmt.Fprintf(bw, "SSY %s\nSST %s\nSSE %s %s\nstd dev %s\n",
		approx(s.SSY), approx(s.SST), approx(s.SSE), percent(s.SSEFraction), approx(s.StdDev))

	for _, e := range visible(s, opts) {
		importance := ""
		if e.Index > 0 {
			importance = percent(e.RelativeImportance)
		}
		mark := ""
		if e.ZeroCrossing {
			mark = ZeroCrossingMark
		}
		fmt.Fprintf(bw, "q%[1]s %[2]s SS%[1]s %[3]s %[4]s (%[5]s, %[6]s) %[7]s\n",
			e.Label, approx(e.Estimate), approx(e.SS), importance,
			approx(e.Interval.Lower), approx(e.Interval.Upper), mark)
	}

	return bw.Flush()
}
