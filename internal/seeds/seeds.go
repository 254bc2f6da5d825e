// Package seeds provides the initial-condition family for the spinodal
// decomposition problem. Every seed fills the concentration field in real
// space and reports a stable identity used to label output artifacts.
package seeds

import (
	"github.com/sgrier/spinodal/internal/field"
	"github.com/sgrier/spinodal/internal/grid"
)

// Seed populates a real-space concentration field. Populate must leave
// the imaginary component exactly zero at every node.
type Seed interface {
	Name() string
	Populate(g *grid.Grid, f *field.Fields, idx int)
}
