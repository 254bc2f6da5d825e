package solver

// Stepper advances one frequency mode by dt. cHat and dfdcHat are the
// transformed concentration and chemical potential at the mode, lap the
// precomputed spectral Laplacian value there.
type Stepper interface {
	Name() string
	Update(cHat, dfdcHat, lap complex128, dt float64, p Params) complex128
}

// SemiImplicit treats the stiff fourth-order term implicitly and the
// nonlinear term explicitly. The denominator's real part is >= 1 for
// every mode, which is what makes the scheme stable for any dt.
type SemiImplicit struct{}

func NewSemiImplicit() *SemiImplicit { return &SemiImplicit{} }

func (*SemiImplicit) Name() string { return "semi-implicit" }

func (*SemiImplicit) Update(cHat, dfdcHat, lap complex128, dt float64, p Params) complex128 {
	dtM := complex(dt*p.M, 0)
	kappa := complex(p.Kappa, 0)
	return (cHat + dtM*lap*dfdcHat) / (1 + dtM*kappa*lap*lap)
}

// Explicit is the fully explicit spectral Euler update from the older
// formulation of this scheme. It is conditionally stable and kept only
// for side-by-side comparison with the semi-implicit stepper.
type Explicit struct{}

func NewExplicit() *Explicit { return &Explicit{} }

func (*Explicit) Name() string { return "explicit" }

func (*Explicit) Update(cHat, dfdcHat, lap complex128, dt float64, p Params) complex128 {
	dtM := complex(dt*p.M, 0)
	kappa := complex(p.Kappa, 0)
	return cHat + dtM*lap*(dfdcHat-kappa*lap*cHat)
}
