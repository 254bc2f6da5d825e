// Package metrics provides per-step observations over the concentration
// field: mean composition, its drift, and the total free energy.
package metrics

// Metric observes the real-space concentration field once per step.
type Metric interface {
	Name() string
	Observe(c [][]float64, t float64)
	Value() float64
	Reset()
}
