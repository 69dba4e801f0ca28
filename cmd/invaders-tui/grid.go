package main

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Visible world rectangle. Enemies start between y 5 and 9 and shots live
// up to y 15; the player sits at y -10.
var worldView = cp.BB{L: -10, B: -11, R: 10, T: 15}

// grid maps world positions onto terminal cells, leaving the top row for
// the score line.
type grid struct {
	width, height int
}

func newGrid(width, height int) grid {
	return grid{width: width, height: height}
}

func (g grid) cell(p cp.Vector) (int, int, bool) {
	if g.width <= 0 || g.height <= 1 || !worldView.ContainsVect(p) {
		return 0, 0, false
	}
	fx := (p.X - worldView.L) / (worldView.R - worldView.L)
	fy := (worldView.T - p.Y) / (worldView.T - worldView.B)
	x := int(math.Round(fx * float64(g.width-1)))
	y := 1 + int(math.Round(fy*float64(g.height-2)))
	return x, y, true
}

// fraction is the horizontal position of column x as a fraction of the
// terminal width.
func (g grid) fraction(x int) float64 {
	if g.width <= 1 {
		return 0.5
	}
	return cp.Clamp(float64(x)/float64(g.width-1), 0, 1)
}
