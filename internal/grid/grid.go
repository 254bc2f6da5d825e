// Package grid provides the periodic square domain and the data-parallel
// node map used by every pointwise kernel in the solver.
package grid

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

var (
	// ErrPoints indicates an unusable grid resolution. The transform and
	// the Nyquist fold both assume a positive, even number of points.
	ErrPoints = errors.New("grid: points must be positive and even")

	// ErrSize indicates a non-positive physical domain length.
	ErrSize = errors.New("grid: size must be positive")
)

// Grid is an immutable Points x Points periodic domain of physical
// side length Size.
type Grid struct {
	Points   int
	Size     float64
	CellSize float64

	workers int
}

func New(points int, size float64) (*Grid, error) {
	if points <= 0 || points%2 != 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrPoints, points)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w (got %f)", ErrSize, size)
	}
	return &Grid{
		Points:   points,
		Size:     size,
		CellSize: size / float64(points),
		workers:  runtime.NumCPU(),
	}, nil
}

// X returns the physical x coordinate of column i.
func (g *Grid) X(i int) float64 { return g.CellSize * float64(i) }

// Y returns the physical y coordinate of row j.
func (g *Grid) Y(j int) float64 { return g.CellSize * float64(j) }

// ParallelMap applies fn to every (i, j) node. Rows are chunked across
// workers; fn must not depend on visiting order or touch another node's
// output. ParallelMap returns only after every node has been visited.
func (g *Grid) ParallelMap(fn func(i, j int)) {
	n := g.Points
	workers := g.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				fn(i, j)
			}
		}
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				for j := 0; j < n; j++ {
					fn(i, j)
				}
			}
		}(start, end)
	}
	wg.Wait()
}
