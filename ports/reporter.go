package ports

import (
	"io"

	"gofactorial/domain/core"
	"gofactorial/domain/design"
)

// BriefThreshold is the relative importance below which brief reports omit an effect.
const BriefThreshold = 0.1

// ReportOptions carries presentation settings and run metadata
type ReportOptions struct {
	Brief       bool
	Source      string
	RunID       core.RunID
	Fingerprint core.Hash
}

// Include reports whether a brief report shows effect row e. The grand mean
// is always shown.
func (o ReportOptions) Include(e design.EffectRow) bool {
	return !o.Brief || e.Index == 0 || e.RelativeImportance >= BriefThreshold
}

// Reporter renders an analysis summary. Implementations never compute
// statistics themselves.
type Reporter interface {
	Name() string
	Report(w io.Writer, s *design.Summary, opts ReportOptions) error
}
