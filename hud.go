package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) Draw(screen *ebiten.Image, score int, status string) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(20, 16)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, fmt.Sprintf("Score: %d", score), h.face, op)

	if status == "" {
		return
	}
	op = &ebtext.DrawOptions{}
	op.GeoM.Translate(20, 50)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff})
	ebtext.Draw(screen, status, h.face, op)
}
