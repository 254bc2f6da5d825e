// Package export renders saved concentration snapshots to portable
// image formats.
package export

import (
	"fmt"
	"io"
	"strings"
)

// fieldRange finds the value bounds of a snapshot, widening degenerate
// ranges so a uniform field renders mid-scale instead of dividing by
// zero.
func fieldRange(data [][]float64) (min, max float64) {
	min, max = data[0][0], data[0][0]
	for _, row := range data {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if max == min {
		min -= 0.5
		max += 0.5
	}
	return min, max
}

// HeatmapSVG renders a concentration matrix as an SVG grid of cells,
// cellPx pixels each, on a cold-to-hot ramp (alpha phase dark blue,
// beta phase yellow).
func HeatmapSVG(data [][]float64, cellPx int) string {
	if len(data) == 0 {
		return ""
	}
	n := len(data)
	side := n * cellPx

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, side, side, side, side))

	min, max := fieldRange(data)
	for i, row := range data {
		for j, v := range row {
			frac := (v - min) / (max - min)
			r, g, b := ramp(frac)
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="#%02x%02x%02x"/>
`, i*cellPx, j*cellPx, cellPx, cellPx, r, g, b))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ramp maps [0,1] to a blue-magenta-yellow gradient.
func ramp(frac float64) (r, g, b uint8) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	switch {
	case frac < 0.5:
		t := frac * 2
		return uint8(40 + 180*t), uint8(40 * (1 - t)), uint8(120 + 60*t)
	default:
		t := (frac - 0.5) * 2
		return uint8(220 + 35*t), uint8(220 * t), uint8(180 * (1 - t))
	}
}

// WritePGM writes the snapshot as a plain-text PGM (P2) grayscale image,
// the simplest format every scientific plotting tool reads.
func WritePGM(w io.Writer, data [][]float64) error {
	if len(data) == 0 {
		return fmt.Errorf("export: empty field")
	}
	n := len(data)
	if _, err := fmt.Fprintf(w, "P2\n%d %d\n255\n", n, n); err != nil {
		return err
	}

	min, max := fieldRange(data)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			level := int(255 * (data[i][j] - min) / (max - min))
			sep := " "
			if i == n-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%d%s", level, sep); err != nil {
				return err
			}
		}
	}
	return nil
}
