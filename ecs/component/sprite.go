package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image   *ebiten.Image
	OriginX float64
	OriginY float64
	// Tint multiplies the image colour; nil draws it unchanged.
	Tint color.Color
	// Fade is how far the sprite has faded out, 0 opaque and 1 invisible.
	Fade float64
}

var SpriteComponent = NewComponent[Sprite]()

// RenderLayer orders drawing; lower indices are drawn first and ties fall
// back to entity order.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
