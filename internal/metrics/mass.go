package metrics

import "math"

// Mass tracks the grid average of the concentration, the conserved
// quantity of Cahn-Hilliard dynamics.
type Mass struct {
	current float64
	samples int
}

func NewMass() *Mass { return &Mass{} }

func (m *Mass) Name() string { return "mass" }

func (m *Mass) Observe(c [][]float64, t float64) {
	m.current = mean(c)
	m.samples++
}

func (m *Mass) Value() float64 { return m.current }

func (m *Mass) Reset() {
	m.current = 0
	m.samples = 0
}

// MassDrift records the worst relative deviation of the mean
// concentration from its initial value. Anything above transform noise
// indicates a broken update.
type MassDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift { return &MassDrift{} }

func (m *MassDrift) Name() string { return "mass_drift" }

func (m *MassDrift) Observe(c [][]float64, t float64) {
	avg := mean(c)
	if m.samples == 0 {
		m.initial = avg
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(avg-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

func mean(c [][]float64) float64 {
	sum := 0.0
	count := 0
	for i := range c {
		for j := range c[i] {
			sum += c[i][j]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
