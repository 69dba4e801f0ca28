package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named sound cues. Systems request a cue by setting Play[i];
// AudioSystem starts it and clears the flag.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
}

var AudioComponent = NewComponent[Audio]()

// Request flags the cue called name for playback and reports whether the
// entity has such a cue.
func (a *Audio) Request(name string) bool {
	if a == nil {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

// Close releases every player. The component is unusable afterwards.
func (a *Audio) Close() {
	if a == nil {
		return
	}
	for _, p := range a.Players {
		if p != nil {
			_ = p.Close()
		}
	}
	a.Players = nil
	a.Names = nil
	a.Volume = nil
	a.Play = nil
}
