package analysis

import (
	"math"
	"testing"

	"github.com/sgrier/spinodal/internal/spectral"
)

func TestStructureFactor_SingleMode(t *testing.T) {
	n := 32
	k := 4
	c := make([][]float64, n)
	for i := range c {
		c[i] = make([]float64, n)
		for j := range c[i] {
			c[i][j] = 0.5 + 0.1*math.Cos(2*math.Pi*float64(k)*float64(i)/float64(n))
		}
	}

	s := StructureFactor(c, spectral.NewDSP())

	if s[0] != 0 {
		t.Errorf("mean-removed spectrum must have empty zero bin, got %g", s[0])
	}

	peak := 0
	for i := 1; i < len(s); i++ {
		if s[i] > s[peak] {
			peak = i
		}
	}
	if peak != k {
		t.Errorf("expected peak at wavenumber %d, got %d", k, peak)
	}
}

func TestStructureFactor_UniformField(t *testing.T) {
	n := 16
	c := make([][]float64, n)
	for i := range c {
		c[i] = make([]float64, n)
		for j := range c[i] {
			c[i][j] = 0.54
		}
	}

	s := StructureFactor(c, spectral.NewDSP())
	for k, v := range s {
		if v > 1e-20 {
			t.Errorf("uniform field should have empty spectrum, bin %d = %g", k, v)
		}
	}
}

func TestDominantWavelength(t *testing.T) {
	s := []float64{0, 1, 5, 2, 1}
	if got := DominantWavelength(s, 200.0); got != 100.0 {
		t.Errorf("expected wavelength 100, got %g", got)
	}

	flat := []float64{0, 0, 0}
	if got := DominantWavelength(flat, 200.0); got != 0 {
		t.Errorf("expected 0 for flat spectrum, got %g", got)
	}
}
