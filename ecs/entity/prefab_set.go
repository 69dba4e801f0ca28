package entity

import (
	"fmt"

	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/prefabs"
)

// PrefabSet holds the loaded build specs for the game's entity kinds so
// spawning a projectile does not re-read YAML every shot.
type PrefabSet struct {
	Player     prefabs.EntityBuildSpec
	Enemy      prefabs.EntityBuildSpec
	Projectile prefabs.EntityBuildSpec
	Explosion  prefabs.EntityBuildSpec

	names prefabs.PrefabSet
}

func LoadPrefabSet(names prefabs.PrefabSet) (*PrefabSet, error) {
	set := &PrefabSet{names: names}
	for _, item := range []struct {
		name string
		dst  *prefabs.EntityBuildSpec
	}{
		{names.Player, &set.Player},
		{names.Enemy, &set.Enemy},
		{names.Projectile, &set.Projectile},
		{names.Explosion, &set.Explosion},
	} {
		spec, err := prefabs.LoadEntityBuildSpec(item.name)
		if err != nil {
			return nil, fmt.Errorf("prefab set: %w", err)
		}
		*item.dst = spec
	}
	return set, nil
}

func (p *PrefabSet) build(w *ecs.World, spec prefabs.EntityBuildSpec, name string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntityFromSpec(w, spec, name)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%s: override transform: %w", name, err)
	}
	return e, nil
}

func (p *PrefabSet) NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return p.build(w, p.Player, p.names.Player, x, y)
}

func (p *PrefabSet) NewEnemyAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return p.build(w, p.Enemy, p.names.Enemy, x, y)
}

func (p *PrefabSet) NewProjectileAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return p.build(w, p.Projectile, p.names.Projectile, x, y)
}

func (p *PrefabSet) NewExplosionAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return p.build(w, p.Explosion, p.names.Explosion, x, y)
}
