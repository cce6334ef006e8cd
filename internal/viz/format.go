package viz

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rbdyn/internal/multibody"
)

// FormatVector prints x as one aligned row, prefixed by name.
func FormatVector(name string, x []float64) string {
	if len(x) == 0 {
		return name + " = []"
	}
	row := mat.NewDense(1, len(x), append([]float64(nil), x...))
	return fmt.Sprintf("%s = %.6g", name, mat.Formatted(row, mat.Squeeze()))
}

// FormatMatrix prints a with aligned columns and bracketed rows, prefixed by name.
func FormatMatrix(name string, a multibody.Matrix[float64]) string {
	if a.Rows == 0 || a.Cols == 0 {
		return name + " = []"
	}
	dense := mat.NewDense(a.Rows, a.Cols, append([]float64(nil), a.Data...))
	pad := strings.Repeat(" ", len(name)+3)
	return fmt.Sprintf("%s = %.6g", name, mat.Formatted(dense, mat.Prefix(pad), mat.Squeeze()))
}
