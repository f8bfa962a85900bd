package ports

import (
	"context"
)

// ObservationReader loads a raw observation grid: one row per treatment
// combination, one column per replicate. Readers only parse; shape
// validation is left to design.LoadObservations.
type ObservationReader interface {
	Read(ctx context.Context, path string) ([][]float64, error)
}
