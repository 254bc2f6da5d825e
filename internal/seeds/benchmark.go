package seeds

import (
	"math"

	"github.com/sgrier/spinodal/internal/field"
	"github.com/sgrier/spinodal/internal/grid"
)

// Benchmark is the PFHub 1a initial condition: a fixed superposition of
// incommensurate cosines around the mean composition 0.5.
type Benchmark struct{}

func NewBenchmark() *Benchmark { return &Benchmark{} }

func (*Benchmark) Name() string { return "1aBenchmark" }

func (*Benchmark) Populate(g *grid.Grid, f *field.Fields, idx int) {
	g.ParallelMap(func(i, j int) {
		x := g.X(i)
		y := g.Y(j)
		c := 0.5 + 0.01*(math.Cos(0.105*x)*math.Cos(0.11*y)+
			math.Cos(0.13*x)*math.Cos(0.087*y)*math.Cos(0.13*x)*math.Cos(0.087*y)+
			math.Cos(0.025*x-0.15*y)*math.Cos(0.07*x-0.02*y))
		f.SetAt(idx, i, j, complex(c, 0))
	})
}
