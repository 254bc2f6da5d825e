package solver

import (
	"errors"
	"fmt"

	"github.com/sgrier/spinodal/internal/field"
	"github.com/sgrier/spinodal/internal/grid"
	"github.com/sgrier/spinodal/internal/seeds"
	"github.com/sgrier/spinodal/internal/spectral"
)

// ErrTimestep indicates a negative time increment at construction.
var ErrTimestep = errors.New("solver: dt must be non-negative")

// Field indices inside the solver's container.
const (
	CField    = 0
	DfDcField = 1
)

// Solver owns the concentration and chemical-potential fields and
// advances them with a fixed time increment. Initialize and Step are the
// only mutators and must not be called concurrently; the Laplacian is
// read-only after Initialize.
type Solver struct {
	Grid   *grid.Grid
	Params Params
	Dt     float64

	vars      *field.Fields
	laplacian [][]complex128
	seed      seeds.Seed
	stepper   Stepper
}

func New(g *grid.Grid, tr spectral.Transformer, seed seeds.Seed, stepper Stepper, dt float64) (*Solver, error) {
	if dt < 0 {
		return nil, fmt.Errorf("%w (got %f)", ErrTimestep, dt)
	}
	if stepper == nil {
		stepper = NewSemiImplicit()
	}
	return &Solver{
		Grid:    g,
		Params:  DefaultParams(),
		Dt:      dt,
		vars:    field.New(g, tr, "c", "df_dc"),
		seed:    seed,
		stepper: stepper,
	}, nil
}

// Initialize builds the spectral Laplacian and seeds the concentration
// field. It must run once before the first Step.
func (s *Solver) Initialize() {
	s.laplacian = BuildLaplacian(s.Grid)
	s.seed.Populate(s.Grid, s.vars, CField)
}

// calcDfDc refreshes the chemical potential from the current real-space
// concentration. Stale values are never read: every step overwrites the
// whole field before use.
func (s *Solver) calcDfDc() {
	p := s.Params
	s.Grid.ParallelMap(func(i, j int) {
		s.vars.SetAt(DfDcField, i, j, p.ChemicalPotential(s.vars.At(CField, i, j)))
	})
}

// Step advances the concentration by one time increment: refresh df_dc,
// transform both fields forward, apply the stepper mode by mode, and
// bring c back to real space. df_dc stays in frequency space; it is
// recomputed from scratch next step, so its inverse transform is skipped.
func (s *Solver) Step() {
	s.calcDfDc()

	s.vars.Forward(CField)
	s.vars.Forward(DfDcField)

	dt, p, st := s.Dt, s.Params, s.stepper
	s.Grid.ParallelMap(func(i, j int) {
		cHat := s.vars.At(CField, i, j)
		dfdcHat := s.vars.At(DfDcField, i, j)
		s.vars.SetAt(CField, i, j, st.Update(cHat, dfdcHat, s.laplacian[i][j], dt, p))
	})

	s.vars.Inverse(CField)
}

// C returns the real component of the concentration at node (i, j).
func (s *Solver) C(i, j int) float64 { return s.vars.Get(CField, i, j, field.Real) }

// CComplex returns the full complex concentration value at node (i, j).
// Outside a step the imaginary part is transform noise only.
func (s *Solver) CComplex(i, j int) complex128 { return s.vars.At(CField, i, j) }

// Concentration copies out the real component of the concentration field.
func (s *Solver) Concentration() [][]float64 { return s.vars.Component(CField, field.Real) }

// Laplacian exposes the spectral operator value at node (i, j).
// Valid only after Initialize.
func (s *Solver) Laplacian(i, j int) complex128 { return s.laplacian[i][j] }

// Mass returns the grid average of the concentration. Cahn-Hilliard
// dynamics conserve it: the zero mode has laplacian 0 and maps through
// the update untouched.
func (s *Solver) Mass() float64 {
	sum := 0.0
	n := s.Grid.Points
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += s.vars.Get(CField, i, j, field.Real)
		}
	}
	return sum / float64(n*n)
}

// SeedName reports the identity of the initial condition variant.
func (s *Solver) SeedName() string { return s.seed.Name() }

// StepperName reports the active time-stepping scheme.
func (s *Solver) StepperName() string { return s.stepper.Name() }

// Label is the output naming convention for persisted snapshots:
// subproblem name, grid resolution, and dt in 3-decimal scientific form.
func (s *Solver) Label() string {
	return fmt.Sprintf("%s_N%d_DT%.3e", s.seed.Name(), s.Grid.Points, s.Dt)
}
