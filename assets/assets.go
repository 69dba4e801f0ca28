// Package assets generates the game's images and sound cues in memory. The
// game has no image or audio files; shapes and tones are described by the
// prefabs and built here on first use.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var (
	imageMu    sync.Mutex
	imageCache = map[string]*ebiten.Image{}

	audioOnce    sync.Once
	audioContext *audio.Context

	pcmMu    sync.Mutex
	pcmCache = map[Tone][]byte{}
)

// ShapeImage returns a cached w x h image of the given shape ("rect" or
// "circle") filled with c.
func ShapeImage(shape string, w, h int, c color.Color) (*ebiten.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: shape %q: size %dx%d must be positive", shape, w, h)
	}
	if c == nil {
		c = color.White
	}
	r, g, b, a := c.RGBA()
	key := fmt.Sprintf("%s/%dx%d/%04x%04x%04x%04x", shape, w, h, r, g, b, a)

	imageMu.Lock()
	defer imageMu.Unlock()
	if img, ok := imageCache[key]; ok {
		return img, nil
	}

	src, err := RasterizeShape(shape, w, h, c)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	imageCache[key] = img
	return img, nil
}

// RasterizeShape draws a shape into a CPU image.
func RasterizeShape(shape string, w, h int, c color.Color) (*image.NRGBA, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	switch shape {
	case "", "rect":
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(x, y, c)
			}
		}
	case "circle":
		cx := float64(w) / 2
		cy := float64(h) / 2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := (float64(x) + 0.5 - cx) / cx
				dy := (float64(y) + 0.5 - cy) / cy
				if dx*dx+dy*dy <= 1 {
					dst.Set(x, y, c)
				}
			}
		}
	default:
		return nil, fmt.Errorf("assets: unknown shape %q", shape)
	}
	return dst, nil
}

func audioCtx() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// TonePCM returns the rendered PCM of t, synthesizing it once per tone.
// Callers must not modify the returned slice.
func TonePCM(t Tone) ([]byte, error) {
	pcmMu.Lock()
	defer pcmMu.Unlock()

	if pcm, ok := pcmCache[t]; ok {
		return pcm, nil
	}
	pcm, err := t.PCM()
	if err != nil {
		return nil, err
	}
	pcmCache[t] = pcm
	return pcm, nil
}

// LoadTonePlayer wraps the cached PCM of a tone in a new audio player. The
// caller owns the player and closes it when done.
func LoadTonePlayer(t Tone) (*audio.Player, error) {
	pcm, err := TonePCM(t)
	if err != nil {
		return nil, err
	}
	return audioCtx().NewPlayerFromBytes(pcm), nil
}
