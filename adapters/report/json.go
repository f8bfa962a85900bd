package report

import (
	"encoding/json"
	"io"

	"gofactorial/domain/core"
	"gofactorial/domain/design"
	"gofactorial/ports"
)

// JSONDocument is the structured report
type JSONDocument struct {
	RunID            core.RunID         `json:"run_id,omitempty"`
	Source           string             `json:"source,omitempty"`
	Fingerprint      core.Hash          `json:"fingerprint,omitempty"`
	K                int                `json:"k"`
	R                int                `json:"r"`
	Confidence       float64            `json:"confidence"`
	DegreesOfFreedom int                `json:"degrees_of_freedom"`
	SSY              float64            `json:"ssy"`
	SST              float64            `json:"sst"`
	SSE              float64            `json:"sse"`
	SSEFraction      float64            `json:"sse_fraction"`
	StdDev           float64            `json:"std_dev"`
	Effects          []design.EffectRow `json:"effects"`
}

// JSONReporter emits one indented JSON document per summary
type JSONReporter struct {
	Indent string
}

func NewJSONReporter() *JSONReporter { return &JSONReporter{Indent: "  "} }

func (r *JSONReporter) Name() string { return "json" }

func (r *JSONReporter) Report(w io.Writer, s *design.Summary, opts ports.ReportOptions) error {
	doc := JSONDocument{
		RunID:            opts.RunID,
		Source:           opts.Source,
		Fingerprint:      opts.Fingerprint,
		K:                s.K,
		R:                s.R,
		Confidence:       s.Confidence,
		DegreesOfFreedom: s.DegreesOfFreedom,
		SSY:              s.SSY,
		SST:              s.SST,
		SSE:              s.SSE,
		SSEFraction:      s.SSEFraction,
		StdDev:           s.StdDev,
		Effects:          visible(s, opts),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", r.Indent)
	return enc.Encode(doc)
}
