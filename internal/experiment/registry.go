package experiment

import (
	"fmt"
	"sort"

	"github.com/sgrier/spinodal/internal/metrics"
	"github.com/sgrier/spinodal/internal/seeds"
	"github.com/sgrier/spinodal/internal/solver"
)

// Registry maps the CLI names to seed and stepper constructors.
type Registry struct {
	seeds    map[string]func(coeffs [10]int) seeds.Seed
	steppers map[string]func() solver.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		seeds:    make(map[string]func(coeffs [10]int) seeds.Seed),
		steppers: make(map[string]func() solver.Stepper),
	}

	r.seeds["benchmark"] = func([10]int) seeds.Seed { return seeds.NewBenchmark() }
	r.seeds["custom"] = func(coeffs [10]int) seeds.Seed { return seeds.NewCustom(coeffs) }
	r.seeds["chimad2023"] = func([10]int) seeds.Seed { return seeds.NewCHiMaD2023() }

	r.steppers["semi-implicit"] = func() solver.Stepper { return solver.NewSemiImplicit() }
	r.steppers["explicit"] = func() solver.Stepper { return solver.NewExplicit() }

	return r
}

func (r *Registry) GetSeed(name string, coeffs [10]int) (seeds.Seed, error) {
	fn, ok := r.seeds[name]
	if !ok {
		return nil, fmt.Errorf("unknown seed: %s", name)
	}
	return fn(coeffs), nil
}

func (r *Registry) GetStepper(name string) (solver.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListSeeds() []string {
	names := make([]string, 0, len(r.seeds))
	for name := range r.seeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListSteppers() []string {
	names := make([]string, 0, len(r.steppers))
	for name := range r.steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the observation set attached to every run.
func (r *Registry) DefaultMetrics(p solver.Params, cellSize float64) []metrics.Metric {
	return []metrics.Metric{
		metrics.NewMass(),
		metrics.NewMassDrift(),
		metrics.NewFreeEnergy(p, cellSize),
	}
}
