package system

import "github.com/jakecoffman/cp"

// View maps simulation units onto screen pixels. Simulation y grows upward,
// screen y downward.
type View struct {
	PixelsPerUnit float64
	OriginX       float64
	OriginY       float64
}

func (v View) ToScreen(p cp.Vector) (float64, float64) {
	return v.OriginX + p.X*v.PixelsPerUnit, v.OriginY - p.Y*v.PixelsPerUnit
}

func (v View) ToWorld(x, y float64) cp.Vector {
	if v.PixelsPerUnit == 0 {
		return cp.Vector{}
	}
	return cp.Vector{X: (x - v.OriginX) / v.PixelsPerUnit, Y: (v.OriginY - y) / v.PixelsPerUnit}
}
