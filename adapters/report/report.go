// Package report renders factorial analysis summaries. Each format is a
// ports.Reporter selected by name; none of them compute statistics.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gofactorial/domain/core"
	"gofactorial/domain/design"
	"gofactorial/ports"
)

var registry = map[string]func() ports.Reporter{
	"text":  func() ports.Reporter { return NewTextReporter() },
	"latex": func() ports.Reporter { return NewLatexReporter() },
	"json":  func() ports.Reporter { return NewJSONReporter() },
	"html":  func() ports.Reporter { return NewHTMLReporter() },
	"none":  func() ports.Reporter { return NopReporter{} },
}

// New returns the reporter registered under name
func New(name string) (ports.Reporter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, core.NewInvalidParameterError("output type", name, fmt.Sprintf("must be one of %v", Names()))
	}
	return factory(), nil
}

// Names lists the registered formats in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NopReporter discards the summary
type NopReporter struct{}

func (NopReporter) Name() string { return "none" }

func (NopReporter) Report(io.Writer, *design.Summary, ports.ReportOptions) error { return nil }

// approx formats x with three significant digits
func approx(x float64) string {
	return strconv.FormatFloat(x, 'g', 3, 64)
}

// percent formats a fraction as a percentage with two decimals
func percent(x float64) string {
	return strconv.FormatFloat(x*100, 'f', 2, 64) + "%"
}

// visible returns the effect rows a report should show
func visible(s *design.Summary, opts ports.ReportOptions) []design.EffectRow {
	rows := make([]design.EffectRow, 0, len(s.Effects))
	for _, e := range s.Effects {
		if opts.Include(e) {
			rows = append(rows, e)
		}
	}
	return rows
}
