package solver

// Params are the physical constants of the PFHub 1a model. They are
// shared by every initial-condition variant.
type Params struct {
	Size   float64 // physical side length of the square domain
	Kappa  float64 // interface energy coefficient
	M      float64 // mobility
	Rho    float64 // free-energy curvature scale
	CAlpha float64 // equilibrium composition of the alpha phase
	CBeta  float64 // equilibrium composition of the beta phase
}

// DefaultParams returns the benchmark constants.
func DefaultParams() Params {
	return Params{
		Size:   200.0,
		Kappa:  2.0,
		M:      5.0,
		Rho:    5.0,
		CAlpha: 0.3,
		CBeta:  0.7,
	}
}
