// Package analysis post-processes concentration fields: the circularly
// averaged structure factor and the coarsening length scale derived
// from it.
package analysis

import (
	"math"

	"github.com/sgrier/spinodal/internal/solver"
	"github.com/sgrier/spinodal/internal/spectral"
)

// StructureFactor returns the circularly averaged power spectrum of the
// concentration fluctuation field, binned by integer wavenumber
// magnitude up to the Nyquist limit. Bin 0 is always zero because the
// mean is removed first.
func StructureFactor(c [][]float64, tr spectral.Transformer) []float64 {
	n := len(c)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for i := range c {
		for j := range c[i] {
			mean += c[i][j]
		}
	}
	mean /= float64(n * n)

	data := make([][]complex128, n)
	for i := range data {
		data[i] = make([]complex128, n)
		for j := range data[i] {
			data[i][j] = complex(c[i][j]-mean, 0)
		}
	}

	hat := tr.Forward(data)
	norm := float64(n * n)

	bins := make([]float64, n/2+1)
	counts := make([]int, n/2+1)
	for i := 0; i < n; i++ {
		kx := solver.Wavenumber(i, n)
		for j := 0; j < n; j++ {
			ky := solver.Wavenumber(j, n)
			k := int(math.Round(math.Hypot(kx, ky)))
			if k >= len(bins) {
				continue
			}
			re := real(hat[i][j]) / norm
			im := imag(hat[i][j]) / norm
			bins[k] += re*re + im*im
			counts[k]++
		}
	}

	for k := range bins {
		if counts[k] > 0 {
			bins[k] /= float64(counts[k])
		}
	}
	return bins
}

// DominantWavelength converts the peak of a structure factor into a
// physical length. Returns 0 when the spectrum is flat.
func DominantWavelength(s []float64, size float64) float64 {
	peak := 0
	for k := 1; k < len(s); k++ {
		if s[k] > s[peak] {
			peak = k
		}
	}
	if peak == 0 {
		return 0
	}
	return size / float64(peak)
}
