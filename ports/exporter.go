package ports

import (
	"io"

	"gofactorial/domain/design"
)

// ResidualExporter writes residual diagnostics for external plotting tools
type ResidualExporter interface {
	Name() string
	Export(w io.Writer, residuals []design.Residual) error
}
