package system

import (
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
	"github.com/milk9111/invaders/ecs/entity"
	"github.com/milk9111/invaders/sim"
)

var idleTint = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// SyncSystem mirrors the session into the world: one entity for the player
// and one per live projectile or enemy, linked by simulation ID. It also turns
// session events into explosions and sound cues.
type SyncSystem struct {
	session *SessionSystem
	prefabs *entity.PrefabSet
	view    View

	player ecs.Entity
	links  map[uint64]ecs.Entity
}

func NewSyncSystem(session *SessionSystem, prefabs *entity.PrefabSet, view View) *SyncSystem {
	return &SyncSystem{
		session: session,
		prefabs: prefabs,
		view:    view,
		links:   map[uint64]ecs.Entity{},
	}
}

// SetPrefabs swaps the prefab set after a reload. Mirrored entities are
// rebuilt on the next update.
func (s *SyncSystem) SetPrefabs(w *ecs.World, prefabs *entity.PrefabSet) {
	if s == nil || prefabs == nil {
		return
	}
	s.prefabs = prefabs
	for id, e := range s.links {
		ecs.DestroyEntity(w, e)
		delete(s.links, id)
	}
	if s.player.Valid() {
		ecs.DestroyEntity(w, s.player)
		s.player = 0
	}
}

func (s *SyncSystem) SetView(v View) {
	if s != nil {
		s.view = v
	}
}

func (s *SyncSystem) Player() ecs.Entity {
	if s == nil {
		return 0
	}
	return s.player
}

func (s *SyncSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.session == nil || s.prefabs == nil {
		return
	}
	session := s.session.Session()

	s.syncPlayer(w, session.Player)
	s.tintPlayer(w, session.State)

	live := make(map[uint64]struct{}, len(session.Projectiles)+len(session.Enemies))
	for _, p := range session.Projectiles {
		live[p.ID] = struct{}{}
		s.syncEntity(w, p, s.prefabs.NewProjectileAt)
	}
	for _, e := range session.Enemies {
		live[e.ID] = struct{}{}
		s.syncEntity(w, e, s.prefabs.NewEnemyAt)
	}
	for id, e := range s.links {
		if _, ok := live[id]; ok {
			continue
		}
		ecs.DestroyEntity(w, e)
		delete(s.links, id)
	}

	for _, evt := range w.Events().Items() {
		ev, ok := evt.Data.(sim.Event)
		if !ok {
			continue
		}
		switch ev.Kind {
		case sim.EventEnemyDestroyed:
			x, y := s.view.ToScreen(ev.Enemy.Pos)
			if _, err := s.prefabs.NewExplosionAt(w, x, y); err != nil {
				log.Printf("sync: explosion: %v", err)
			}
		case sim.EventProjectileFired:
			s.requestCue(w, "fire")
		case sim.EventGameOver:
			s.requestCue(w, "game_over")
		}
	}
}

func (s *SyncSystem) syncPlayer(w *ecs.World, pos cp.Vector) {
	x, y := s.view.ToScreen(pos)
	if !s.player.Valid() || !w.IsAlive(s.player) {
		e, err := s.prefabs.NewPlayerAt(w, x, y)
		if err != nil {
			log.Printf("sync: player: %v", err)
			return
		}
		if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
			log.Printf("sync: player input: %v", err)
		}
		s.player = e
		return
	}
	if err := entity.SetEntityTransform(w, s.player, x, y, 0); err != nil {
		log.Printf("sync: player transform: %v", err)
	}
}

type spawnFn func(w *ecs.World, x, y float64) (ecs.Entity, error)

func (s *SyncSystem) syncEntity(w *ecs.World, ent sim.Entity, spawn spawnFn) {
	x, y := s.view.ToScreen(ent.Pos)
	if e, ok := s.links[ent.ID]; ok && w.IsAlive(e) {
		if err := entity.SetEntityTransform(w, e, x, y, 0); err != nil {
			log.Printf("sync: entity %d transform: %v", ent.ID, err)
		}
		return
	}

	e, err := spawn(w, x, y)
	if err != nil {
		log.Printf("sync: entity %d: %v", ent.ID, err)
		return
	}
	if err := ecs.Add(w, e, component.SimLinkComponent.Kind(), &component.SimLink{ID: ent.ID}); err != nil {
		log.Printf("sync: entity %d link: %v", ent.ID, err)
	}
	s.links[ent.ID] = e
}

// tintPlayer dims the player while no game is running.
func (s *SyncSystem) tintPlayer(w *ecs.World, state sim.State) {
	sprite, ok := ecs.Get(w, s.player, component.SpriteComponent.Kind())
	if !ok {
		return
	}
	if state == sim.StatePlaying {
		sprite.Tint = nil
		return
	}
	sprite.Tint = idleTint
}

func (s *SyncSystem) requestCue(w *ecs.World, name string) {
	a, ok := ecs.Get(w, s.player, component.AudioComponent.Kind())
	if !ok {
		return
	}
	a.Request(name)
}
