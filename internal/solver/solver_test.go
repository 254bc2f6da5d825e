package solver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sgrier/spinodal/internal/grid"
	"github.com/sgrier/spinodal/internal/seeds"
	"github.com/sgrier/spinodal/internal/solver"
	"github.com/sgrier/spinodal/internal/spectral"
)

func newSolver(points int, dt float64, st solver.Stepper) *solver.Solver {
	g, err := grid.New(points, solver.DefaultParams().Size)
	Expect(err).NotTo(HaveOccurred())
	s, err := solver.New(g, spectral.NewDSP(), seeds.NewBenchmark(), st, dt)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Wavenumber folding", func() {
	It("folds the Nyquist index to zero", func() {
		Expect(solver.Wavenumber(48, 96)).To(Equal(0.0))
	})

	It("folds the last index to -1", func() {
		Expect(solver.Wavenumber(95, 96)).To(Equal(-1.0))
	})

	It("keeps low indices as-is", func() {
		Expect(solver.Wavenumber(0, 96)).To(Equal(0.0))
		Expect(solver.Wavenumber(1, 96)).To(Equal(1.0))
		Expect(solver.Wavenumber(47, 96)).To(Equal(47.0))
	})

	It("is symmetric about the Nyquist index", func() {
		Expect(solver.Wavenumber(49, 96)).To(Equal(-47.0))
	})
})

var _ = Describe("Spectral Laplacian", func() {
	It("is non-positive everywhere with a zero mode at the origin", func() {
		s := newSolver(32, 0.5, nil)
		s.Initialize()

		Expect(real(s.Laplacian(0, 0))).To(Equal(0.0))
		for i := 0; i < 32; i++ {
			for j := 0; j < 32; j++ {
				l := s.Laplacian(i, j)
				Expect(real(l)).To(BeNumerically("<=", 0))
				Expect(imag(l)).To(Equal(0.0))
			}
		}
	})

	It("keeps the semi-implicit denominator at or above one", func() {
		s := newSolver(32, 10.0, nil)
		s.Initialize()
		p := s.Params

		for i := 0; i < 32; i++ {
			for j := 0; j < 32; j++ {
				l := s.Laplacian(i, j)
				denom := 1 + complex(s.Dt*p.M*p.Kappa, 0)*l*l
				Expect(real(denom)).To(BeNumerically(">=", 1))
			}
		}
	})
})

var _ = Describe("Chemical potential", func() {
	p := solver.DefaultParams()

	It("vanishes at both equilibrium compositions", func() {
		Expect(p.ChemicalPotential(complex(p.CAlpha, 0))).To(Equal(complex(0, 0)))
		Expect(p.ChemicalPotential(complex(p.CBeta, 0))).To(Equal(complex(0, 0)))
	})

	It("pushes the midpoint composition nowhere", func() {
		// The double well is symmetric about (cAlpha+cBeta)/2.
		mid := complex((p.CAlpha+p.CBeta)/2, 0)
		Expect(cmplxAbs(p.ChemicalPotential(mid))).To(BeNumerically("<", 1e-15))
	})

	It("is negative between the midpoint and the beta phase", func() {
		Expect(real(p.ChemicalPotential(complex(0.6, 0)))).To(BeNumerically("<", 0))
	})
})

var _ = Describe("Semi-implicit stepping", func() {
	It("rejects a negative dt", func() {
		g, err := grid.New(32, 200.0)
		Expect(err).NotTo(HaveOccurred())
		_, err = solver.New(g, spectral.NewDSP(), seeds.NewBenchmark(), nil, -0.1)
		Expect(err).To(MatchError(solver.ErrTimestep))
	})

	It("leaves the field unchanged for dt = 0", func() {
		s := newSolver(32, 0, nil)
		s.Initialize()
		before := s.Concentration()

		s.Step()

		for i := range before {
			for j := range before[i] {
				Expect(s.C(i, j)).To(BeNumerically("~", before[i][j], 1e-10))
			}
		}
	})

	It("conserves mass across steps", func() {
		s := newSolver(48, 2.0, nil)
		s.Initialize()
		before := s.Mass()

		for n := 0; n < 5; n++ {
			s.Step()
		}

		Expect(s.Mass()).To(BeNumerically("~", before, 1e-10))
	})

	It("returns c to real space after each step", func() {
		s := newSolver(32, 1.0, nil)
		s.Initialize()
		s.Step()

		g := s.Grid
		for i := 0; i < g.Points; i++ {
			for j := 0; j < g.Points; j++ {
				// imaginary residue is transform noise only
				Expect(math.Abs(imag(s.CComplex(i, j)))).To(BeNumerically("<", 1e-9))
			}
		}
	})

	It("remains bounded for a large dt", func() {
		s := newSolver(32, 100.0, nil)
		s.Initialize()
		for n := 0; n < 10; n++ {
			s.Step()
		}
		for i := 0; i < 32; i++ {
			for j := 0; j < 32; j++ {
				Expect(math.IsNaN(s.C(i, j))).To(BeFalse())
				Expect(s.C(i, j)).To(BeNumerically(">", -1))
				Expect(s.C(i, j)).To(BeNumerically("<", 2))
			}
		}
	})

	It("agrees with the explicit stepper in the small-dt limit", func() {
		si := newSolver(32, 1e-6, solver.NewSemiImplicit())
		ex := newSolver(32, 1e-6, solver.NewExplicit())
		si.Initialize()
		ex.Initialize()

		si.Step()
		ex.Step()

		for i := 0; i < 32; i++ {
			for j := 0; j < 32; j++ {
				Expect(si.C(i, j)).To(BeNumerically("~", ex.C(i, j), 1e-9))
			}
		}
	})
})

var _ = Describe("Output labeling", func() {
	It("combines seed identity, resolution and dt", func() {
		s := newSolver(96, 0.5, nil)
		Expect(s.Label()).To(Equal("1aBenchmark_N96_DT5.000e-01"))
	})
})

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
