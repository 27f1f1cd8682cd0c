package yulewalk

import (
	"errors"
	"math"
)

// ErrSingularSystem is returned when the normal equations of a
// least-squares fit cannot be solved.
var ErrSingularSystem = errors.New("yulewalk: singular least-squares system")

// lstsq solves the overdetermined system m*x = rhs in the least squares
// sense via the normal equations with partial pivoting. The systems here
// are tiny (at most a few dozen unknowns), dense, and well-conditioned
// after lag windowing, so a direct solve is sufficient.
func lstsq(m [][]float64, rhs []float64) ([]float64, error) {
	rows := len(m)
	if rows == 0 || rows != len(rhs) {
		return nil, ErrSingularSystem
	}

	cols := len(m[0])
	if cols == 0 || rows < cols {
		return nil, ErrSingularSystem
	}

	// Normal equations: G = Mᵀ M, g = Mᵀ rhs.
	g := make([][]float64, cols)
	for i := range g {
		g[i] = make([]float64, cols+1)
	}

	for i := range cols {
		for j := i; j < cols; j++ {
			s := 0.0
			for k := range rows {
				s += m[k][i] * m[k][j]
			}

			g[i][j] = s
			g[j][i] = s
		}

		s := 0.0
		for k := range rows {
			s += m[k][i] * rhs[k]
		}

		g[i][cols] = s
	}

	// Gaussian elimination with partial pivoting on the augmented matrix.
	for col := range cols {
		pivot := col
		for r := col + 1; r < cols; r++ {
			if math.Abs(g[r][col]) > math.Abs(g[pivot][col]) {
				pivot = r
			}
		}

		if g[pivot][col] == 0 || math.IsNaN(g[pivot][col]) {
			return nil, ErrSingularSystem
		}

		g[col], g[pivot] = g[pivot], g[col]

		for r := col + 1; r < cols; r++ {
			factor := g[r][col] / g[col][col]
			if factor == 0 {
				continue
			}

			for c := col; c <= cols; c++ {
				g[r][c] -= factor * g[col][c]
			}
		}
	}

	x := make([]float64, cols)
	for i := cols - 1; i >= 0; i-- {
		s := g[i][cols]
		for j := i + 1; j < cols; j++ {
			s -= g[i][j] * x[j]
		}

		x[i] = s / g[i][i]
	}

	return x, nil
}
