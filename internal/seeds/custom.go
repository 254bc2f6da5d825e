package seeds

import (
	"fmt"
	"math"
	"strings"

	"github.com/sgrier/spinodal/internal/field"
	"github.com/sgrier/spinodal/internal/grid"
)

// CHiMaD2023Coeffs is the periodic seed proposed at the August 2023
// CHiMaD meeting as an alternative benchmark initial condition.
var CHiMaD2023Coeffs = [10]int{3, 4, 8, 6, 1, 5, 2, 1, 0, 0}

// Custom is the ten-coefficient initial condition. N1..N8 set cosine
// periods, N9 and N10 set sine periods; a zero coefficient removes its
// sine term since sin(0) = 0.
type Custom struct {
	N [10]int

	// label overrides the coefficient-derived identity for named presets.
	label string
}

func NewCustom(coeffs [10]int) *Custom { return &Custom{N: coeffs} }

// NewCHiMaD2023 is the custom seed pinned to the CHiMaD 2023 tuple.
func NewCHiMaD2023() *Custom {
	return &Custom{N: CHiMaD2023Coeffs, label: "1aCHiMaD2023"}
}

func (c *Custom) Name() string {
	if c.label != "" {
		return c.label
	}
	parts := make([]string, len(c.N))
	for i, n := range c.N {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "1aCustom_" + strings.Join(parts, "_")
}

func (c *Custom) Populate(g *grid.Grid, f *field.Fields, idx int) {
	n := c.N
	g.ParallelMap(func(i, j int) {
		x := g.X(i)
		y := g.Y(j)
		v := 0.5 + 0.01*(math.Cos(float64(n[0])*math.Pi*x/100)*math.Cos(float64(n[1])*math.Pi*y/100)+
			math.Cos(float64(n[2])*math.Pi*x/200)*math.Cos(float64(n[2])*math.Pi*x/200)*
				math.Cos(float64(n[3])*math.Pi*y/200)*math.Cos(float64(n[3])*math.Pi*y/200)+
			math.Cos(float64(n[4])*math.Pi*x/100-float64(n[5])*math.Pi*y/100)*
				math.Cos(float64(n[6])*math.Pi*x/100-float64(n[7])*math.Pi*y/100)+
			math.Sin(float64(n[8])*math.Pi*x/100)+
			math.Sin(float64(n[9])*math.Pi*y/100))
		f.SetAt(idx, i, j, complex(v, 0))
	})
}
