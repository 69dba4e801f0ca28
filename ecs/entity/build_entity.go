package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/milk9111/invaders/assets"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
	"github.com/milk9111/invaders/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"enemy_tag":      addEnemyTag,
	"projectile_tag": addProjectileTag,
	"explosion_tag":  addExplosionTag,
	"transform":      addTransform,
	"sprite":         addSprite,
	"render_layer":   addRenderLayer,
	"ttl":            addTTL,
	"audio":          addAudio,
}

var componentBuildOrder = []string{
	"player_tag",
	"enemy_tag",
	"projectile_tag",
	"explosion_tag",
	"transform",
	"sprite",
	"render_layer",
	"ttl",
	"audio",
}

// BuildEntityFromSpec builds an already loaded prefab. Components are added
// in componentBuildOrder, then any others by name. On error the half-built
// entity is destroyed.
func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	extra := make([]string, 0, len(remaining))
	for name := range remaining {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	names = append(names, extra...)

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addProjectileTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{})
}

func addExplosionTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ExplosionTagComponent.Kind(), &component.ExplosionTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	img, err := assets.ShapeImage(spec.Shape, spec.Width, spec.Height, spec.Color.Color)
	if err != nil {
		return err
	}

	originX, originY := spec.OriginX, spec.OriginY
	if spec.CenterOriginIfZero && originX == 0 && originY == 0 {
		originX = float64(spec.Width) / 2
		originY = float64(spec.Height) / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Image:   img,
		OriginX: originX,
		OriginY: originY,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type ttlSpec = prefabs.TTLComponentSpec

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Frames <= 0 {
		return fmt.Errorf("ttl frames must be positive, got %d", spec.Frames)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames, Total: spec.Frames})
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}

	comp := &component.Audio{}
	for _, clip := range spec.Clips {
		player, err := assets.LoadTonePlayer(assets.Tone{
			Wave:     clip.Tone.Wave,
			Freq:     clip.Tone.Freq,
			EndFreq:  clip.Tone.EndFreq,
			Duration: time.Duration(clip.Tone.DurationMS) * time.Millisecond,
		})
		if err != nil {
			return fmt.Errorf("audio clip %q: %w", clip.Name, err)
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
		comp.Play = append(comp.Play, false)
	}
	for _, name := range spec.Autoplay {
		if !comp.Request(name) {
			return fmt.Errorf("autoplay %q: no such clip", name)
		}
	}

	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}
