package brief

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticalDistributions provides unified access to the distributions used
// when reporting factorial effects.
type StatisticalDistributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *StatisticalDistributions {
	return &StatisticalDistributions{}
}

// TCritical returns the two-sided Student's t critical value, i.e. the
// (1+confidence)/2 quantile of a unit t-distribution with df degrees of freedom.
func (sd *StatisticalDistributions) TCritical(confidenceLevel float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 || confidenceLevel <= 0 || confidenceLevel >= 1 {
		return math.NaN()
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return tDist.Quantile(0.5 + confidenceLevel/2.0)
}

// TInterval returns the two-sided t interval located at center with the given
// scale. It matches a location-scale t-distribution's central interval.
func (sd *StatisticalDistributions) TInterval(center, scale, confidenceLevel float64, degreesOfFreedom int) (lower, upper float64) {
	if scale == 0 {
		return center, center
	}

	margin := sd.TCritical(confidenceLevel, degreesOfFreedom) * scale
	return center - margin, center + margin
}

// NormalCDF computes cumulative distribution function for standard normal
func (sd *StatisticalDistributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// NormalQuantile computes quantile function for standard normal (inverse CDF)
func (sd *StatisticalDistributions) NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// PlottingPosition returns the Blom-style probability (i-a)/(n+1-2a) of the
// i-th (1-based) order statistic out of n, with a = 3/8 for n <= 10 and 1/2 otherwise.
func (sd *StatisticalDistributions) PlottingPosition(i, n int) float64 {
	a := 0.5
	if n <= 10 {
		a = 3.0 / 8.0
	}
	return (float64(i) - a) / (float64(n) + 1 - 2*a)
}

// NormalScores returns the expected standard normal quantiles for n sorted
// samples, used as the theoretical axis of a normal Q-Q plot.
func (sd *StatisticalDistributions) NormalScores(n int) []float64 {
	scores := make([]float64, n)
	for i := 1; i <= n; i++ {
		scores[i-1] = sd.NormalQuantile(sd.PlottingPosition(i, n))
	}
	return scores
}
