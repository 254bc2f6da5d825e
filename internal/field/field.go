// Package field stores the named complex-valued grid arrays a solver
// works on and moves them between real and frequency space.
package field

import (
	"fmt"

	"github.com/sgrier/spinodal/internal/grid"
	"github.com/sgrier/spinodal/internal/spectral"
)

// Component selectors for the accessor API.
const (
	Real = 0
	Imag = 1
)

// Fields owns one dense complex array per registered name. Arrays are
// indexed [i][j] and transformed in place as whole fields.
type Fields struct {
	grid  *grid.Grid
	tr    spectral.Transformer
	names []string
	data  [][][]complex128
}

func New(g *grid.Grid, tr spectral.Transformer, names ...string) *Fields {
	data := make([][][]complex128, len(names))
	for f := range data {
		data[f] = make([][]complex128, g.Points)
		for i := range data[f] {
			data[f][i] = make([]complex128, g.Points)
		}
	}
	return &Fields{grid: g, tr: tr, names: append([]string(nil), names...), data: data}
}

func (f *Fields) Len() int { return len(f.data) }

func (f *Fields) Name(idx int) string { return f.names[idx] }

// Index resolves a field name to its index.
func (f *Fields) Index(name string) (int, error) {
	for i, n := range f.names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("field: unknown field %q", name)
}

// At returns the complex value of field idx at node (i, j).
func (f *Fields) At(idx, i, j int) complex128 { return f.data[idx][i][j] }

// SetAt writes the complex value of field idx at node (i, j).
func (f *Fields) SetAt(idx, i, j int, v complex128) { f.data[idx][i][j] = v }

// Get reads one component (Real or Imag) of field idx at node (i, j).
func (f *Fields) Get(idx, i, j, comp int) float64 {
	if comp == Imag {
		return imag(f.data[idx][i][j])
	}
	return real(f.data[idx][i][j])
}

// Set writes one component of field idx at node (i, j), preserving the
// other component.
func (f *Fields) Set(idx, i, j, comp int, v float64) {
	old := f.data[idx][i][j]
	if comp == Imag {
		f.data[idx][i][j] = complex(real(old), v)
	} else {
		f.data[idx][i][j] = complex(v, imag(old))
	}
}

// Forward replaces field idx with its discrete Fourier transform.
func (f *Fields) Forward(idx int) { f.data[idx] = f.tr.Forward(f.data[idx]) }

// Inverse replaces field idx with its inverse discrete Fourier transform.
func (f *Fields) Inverse(idx int) { f.data[idx] = f.tr.Inverse(f.data[idx]) }

// Component copies one component of field idx out as a real matrix,
// the shape the run store and the exporters consume.
func (f *Fields) Component(idx, comp int) [][]float64 {
	n := f.grid.Points
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = f.Get(idx, i, j, comp)
		}
	}
	return out
}
