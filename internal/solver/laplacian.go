package solver

import (
	"math"

	"github.com/sgrier/spinodal/internal/grid"
)

// Wavenumber folds transform index k of an n-point DFT to its signed
// wavenumber: k for k < n/2, k-n for k > n/2, and 0 exactly at the
// Nyquist index. Getting the Nyquist case wrong silently corrupts the
// high-frequency damping of the scheme.
func Wavenumber(k, n int) float64 {
	switch {
	case 2*k == n:
		return 0
	case k > n/2:
		return float64(k - n)
	default:
		return float64(k)
	}
}

// BuildLaplacian computes the spectral Laplacian field. Each wavenumber
// component enters as i*(2pi/n)*k, so the squared sum is a non-positive
// real; the value is scaled by n^2/size^2. Pure function of the grid
// geometry, built once per solver.
func BuildLaplacian(g *grid.Grid) [][]complex128 {
	n := g.Points
	scale := complex(float64(n*n)/(g.Size*g.Size), 0)
	unit := complex(0, 2*math.Pi/float64(n))

	lap := make([][]complex128, n)
	for i := range lap {
		lap[i] = make([]complex128, n)
	}
	g.ParallelMap(func(i, j int) {
		kx := unit * complex(Wavenumber(i, n), 0)
		ky := unit * complex(Wavenumber(j, n), 0)
		lap[i][j] = (kx*kx + ky*ky) * scale
	})
	return lap
}
