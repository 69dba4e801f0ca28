package component

// Transform is a screen-space placement. Entities mirrored from the
// simulation get it rewritten every frame from their world position.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
