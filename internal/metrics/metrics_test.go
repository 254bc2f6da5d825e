package metrics

import (
	"math"
	"testing"

	"github.com/sgrier/spinodal/internal/solver"
)

func uniformField(n int, v float64) [][]float64 {
	c := make([][]float64, n)
	for i := range c {
		c[i] = make([]float64, n)
		for j := range c[i] {
			c[i][j] = v
		}
	}
	return c
}

func TestMass(t *testing.T) {
	m := NewMass()
	m.Observe(uniformField(8, 0.53), 0)

	if math.Abs(m.Value()-0.53) > 1e-15 {
		t.Errorf("expected mass 0.53, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMassDrift(t *testing.T) {
	m := NewMassDrift()
	m.Observe(uniformField(8, 0.5), 0)
	m.Observe(uniformField(8, 0.5), 1)

	if m.Value() != 0 {
		t.Errorf("expected zero drift for constant mass, got %g", m.Value())
	}

	m.Observe(uniformField(8, 0.55), 2)
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected drift 0.1, got %g", m.Value())
	}

	// drift is a high-water mark
	m.Observe(uniformField(8, 0.5), 3)
	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("drift should not decrease, got %g", m.Value())
	}
}

func TestFreeEnergy_UniformPhases(t *testing.T) {
	p := solver.DefaultParams()
	cell := p.Size / 8

	// a pure phase has zero bulk and zero gradient energy
	for _, phase := range []float64{p.CAlpha, p.CBeta} {
		if e := Functional(uniformField(8, phase), p, cell); e != 0 {
			t.Errorf("phase %f: expected zero energy, got %g", phase, e)
		}
	}

	// a uniform mixture sits on the energy barrier
	mixed := Functional(uniformField(8, 0.5), p, cell)
	if mixed <= 0 {
		t.Errorf("expected positive barrier energy, got %g", mixed)
	}
}

func TestFreeEnergy_GradientPenalty(t *testing.T) {
	p := solver.DefaultParams()
	n := 16
	cell := p.Size / float64(n)

	striped := uniformField(n, p.CAlpha)
	for i := n / 2; i < n; i++ {
		for j := 0; j < n; j++ {
			striped[i][j] = p.CBeta
		}
	}

	uniform := Functional(uniformField(n, p.CAlpha), p, cell)
	if got := Functional(striped, p, cell); got <= uniform {
		t.Errorf("interfaces must cost energy: striped %g vs uniform %g", got, uniform)
	}
}
