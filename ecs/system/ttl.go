package system

import (
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
)

// TTLSystem decrements frame-based TTL components, fades sprites out over the
// lifetime and destroys entities when the TTL reaches zero.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}

		if ttl.Frames > 0 {
			ttl.Frames--
			if ttl.Frames > 0 {
				if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && ttl.Total > 0 {
					elapsed := float32(ttl.Total-ttl.Frames) / float32(ttl.Total)
					sprite.Fade = float64(common.Lerp(0, 1, elapsed))
				}
				return
			}
		}

		if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
			a.Close()
		}
		ecs.DestroyEntity(w, e)
	})
}
