package solver

// ChemicalPotential evaluates the derivative of the double-well free
// energy f(c) = rho*(c-cAlpha)^2*(cBeta-c)^2 at a single node, in
// complex arithmetic. It vanishes exactly at both equilibrium
// compositions.
func (p Params) ChemicalPotential(c complex128) complex128 {
	ca := complex(p.CAlpha, 0)
	cb := complex(p.CBeta, 0)
	rho := complex(p.Rho, 0)
	return rho * (2*(c-ca)*(cb-c)*(cb-c) - 2*(cb-c)*(c-ca)*(c-ca))
}
