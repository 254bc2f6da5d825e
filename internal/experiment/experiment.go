package experiment

import (
	"context"
	"fmt"

	"github.com/sgrier/spinodal/internal/grid"
	"github.com/sgrier/spinodal/internal/metrics"
	"github.com/sgrier/spinodal/internal/solver"
	"github.com/sgrier/spinodal/internal/spectral"
)

type Config struct {
	Seed          string
	Coeffs        [10]int
	Stepper       string
	GridPoints    int
	Dt            float64
	Steps         int
	SnapshotEvery int
}

// Snapshot is one persisted copy of the concentration field, labeled by
// the solver's output naming convention plus the step count.
type Snapshot struct {
	Step  int
	Time  float64
	Label string
	Data  [][]float64
}

type Result struct {
	Times      []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	Snapshots  []Snapshot
	StepsTaken int
}

// Experiment wires a solver, its metrics, and the snapshot schedule into
// one run. Setup then Run; experiments are single-use.
type Experiment struct {
	cfg     Config
	solver  *solver.Solver
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(reg *Registry, tr spectral.Transformer) error {
	seed, err := reg.GetSeed(e.cfg.Seed, e.cfg.Coeffs)
	if err != nil {
		return err
	}
	stepper, err := reg.GetStepper(e.cfg.Stepper)
	if err != nil {
		return err
	}

	g, err := grid.New(e.cfg.GridPoints, solver.DefaultParams().Size)
	if err != nil {
		return err
	}

	s, err := solver.New(g, tr, seed, stepper, e.cfg.Dt)
	if err != nil {
		return err
	}

	e.solver = s
	e.metrics = reg.DefaultMetrics(s.Params, g.CellSize)
	return nil
}

func (e *Experiment) Solver() *solver.Solver { return e.solver }

// Run initializes the field, advances Steps steps, observes the metrics
// after each one, and collects snapshots at the configured interval plus
// the initial and final states. Steps run strictly sequentially; the
// context is the only way to stop a run early.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	result := &Result{
		Times:   make([]float64, 0, e.cfg.Steps+1),
		Series:  make(map[string][]float64, len(e.metrics)),
		Metrics: make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, e.cfg.Steps+1)
	}

	e.solver.Initialize()
	e.observe(result, 0, 0.0)
	e.snapshot(result, 0, 0.0)

	for step := 1; step <= e.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.solver.Step()

		t := float64(step) * e.cfg.Dt
		e.observe(result, step, t)

		if (e.cfg.SnapshotEvery > 0 && step%e.cfg.SnapshotEvery == 0) || step == e.cfg.Steps {
			e.snapshot(result, step, t)
		}
		result.StepsTaken++
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (e *Experiment) observe(result *Result, step int, t float64) {
	c := e.solver.Concentration()
	result.Times = append(result.Times, t)
	for _, m := range e.metrics {
		m.Observe(c, t)
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
}

func (e *Experiment) snapshot(result *Result, step int, t float64) {
	result.Snapshots = append(result.Snapshots, Snapshot{
		Step:  step,
		Time:  t,
		Label: fmt.Sprintf("%s_step%06d", e.solver.Label(), step),
		Data:  e.solver.Concentration(),
	})
}
