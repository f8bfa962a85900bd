package report

import (
	"bytes"
	"fmt"
	"io"

	"gofactorial/domain/design"
	"gofactorial/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTMLReporter writes a markdown rendition of the summary converted to an
// HTML fragment
type HTMLReporter struct{}

func NewHTMLReporter() *HTMLReporter { return &HTMLReporter{} }

func (r *HTMLReporter) Name() string { return "html" }

// Markdown renders the summary as a GitHub-style markdown document
func (r *HTMLReporter) Markdown(s *design.Summary, opts ports.ReportOptions) []byte {
	var b bytes.Buffer

	title := "Factorial analysis"
	if opts.Source != "" {
		title += ": " + opts.Source
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "2^%d design, %d replicates, %g confidence, %d error degrees of freedom.\n\n",
		s.K, s.R, s.Confidence, s.DegreesOfFreedom)

	fmt.Fprintln(&b, "| SSY | SST | SSE | SSE/SST | std dev |")
	fmt.Fprintln(&b, "|---|---|---|---|---|")
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n\n",
		approx(s.SSY), approx(s.SST), approx(s.SSE), percent(s.SSEFraction), approx(s.StdDev))

	fmt.Fprintln(&b, "| effect | estimate | SS | importance | interval | |")
	fmt.Fprintln(&b, "|---|---:|---:|---:|---|---|")
	for _, e := range visible(s, opts) {
		importance := ""
		if e.Index > 0 {
			importance = percent(e.RelativeImportance)
		}
		flag := ""
		if e.ZeroCrossing {
			flag = "**crosses zero**"
		}
		fmt.Fprintf(&b, "| q%s | %s | %s | %s | (%s, %s) | %s |\n",
			e.Label, approx(e.Estimate), approx(e.SS), importance,
			approx(e.Interval.Lower), approx(e.Interval.Upper), flag)
	}

	if !opts.Fingerprint.IsEmpty() {
		fmt.Fprintf(&b, "\nInput fingerprint `%s`.\n", opts.Fingerprint.Short())
	}
	return b.Bytes()
}

func (r *HTMLReporter) Report(w io.Writer, s *design.Summary, opts ports.ReportOptions) error {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	_, err := w.Write(markdown.ToHTML(r.Markdown(s, opts), p, renderer))
	return err
}
