package design

// Interval is a two-sided confidence interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (i Interval) Width() float64 { return i.Upper - i.Lower }

// CrossesZero reports lower < 0 < upper.
func (i Interval) CrossesZero() bool { return i.Lower < 0 && 0 < i.Upper }

// EffectRow is the per-effect part of a Summary.
type EffectRow struct {
	Index              EffectIndex `json:"index"`
	Label              string      `json:"label"`
	Estimate           float64     `json:"estimate"`
	SS                 float64     `json:"ss"`
	RelativeImportance float64     `json:"relative_importance"`
	Interval           Interval    `json:"interval"`
	ZeroCrossing       bool        `json:"zero_crossing"`
}

// Summary is the read-only outcome of analysing one grid.
type Summary struct {
	K                int         `json:"k"`
	R                int         `json:"r"`
	Confidence       float64     `json:"confidence"`
	DegreesOfFreedom int         `json:"degrees_of_freedom"`
	SSY              float64     `json:"ssy"`
	SST              float64     `json:"sst"`
	SSE              float64     `json:"sse"`
	SSEFraction      float64     `json:"sse_fraction"`
	StdDev           float64     `json:"std_dev"`
	Effects          []EffectRow `json:"effects"`
}

// Residual is one observation minus its treatment mean.
type Residual struct {
	Row    int     `json:"row"`
	Fitted float64 `json:"fitted"`
	Value  float64 `json:"value"`
}
