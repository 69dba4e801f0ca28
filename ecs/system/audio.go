package system

import (
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
)

type AudioSystem struct {
	muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) SetMuted(muted bool) {
	a.muted = muted
}

func (a *AudioSystem) Muted() bool {
	return a.muted
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false

			player := audioComp.Players[i]
			if a.muted || player == nil {
				continue
			}
			volume := 1.0
			if i < len(audioComp.Volume) {
				volume = audioComp.Volume[i]
			}
			player.SetVolume(volume)
			if err := player.Rewind(); err != nil {
				continue
			}
			player.Play()
		}
	})
}
