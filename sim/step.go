package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Step advances a playing session by one frame: projectiles, then the
// formation, then collisions. Any other state is returned unchanged.
func Step(s Session) (Session, []Event) {
	if !s.Playing() {
		return s, nil
	}

	var events []Event
	s.Frame++

	s.Projectiles, events = advanceProjectiles(s.Projectiles, s.Config, events)
	s.Enemies, s.FormationSpeed, events = advanceFormation(s.Enemies, s.FormationSpeed, s.Config, events)
	s, events = resolveCollisions(s, events)

	return s, events
}

func projectileBounds(cfg Config) cp.BB {
	return cp.BB{L: math.Inf(-1), B: math.Inf(-1), R: math.Inf(1), T: cfg.ProjectileTop}
}

func formationBounds(cfg Config) cp.BB {
	return cp.BB{L: -cfg.FormationBound, B: math.Inf(-1), R: cfg.FormationBound, T: math.Inf(1)}
}

func advanceProjectiles(projectiles []Entity, cfg Config, events []Event) ([]Entity, []Event) {
	if len(projectiles) == 0 {
		return nil, events
	}
	bounds := projectileBounds(cfg)
	out := make([]Entity, 0, len(projectiles))
	for _, p := range projectiles {
		p.Pos.Y += cfg.ProjectileStep
		if !bounds.ContainsVect(p.Pos) {
			events = append(events, Event{Kind: EventProjectileExpired, Projectile: p})
			continue
		}
		out = append(out, p)
	}
	return out, events
}

// advanceFormation moves every enemy by speed. When any enemy ends up past a
// horizontal bound the whole formation drops this frame and the returned
// speed is reversed for the next one.
func advanceFormation(enemies []Entity, speed float64, cfg Config, events []Event) ([]Entity, float64, []Event) {
	if len(enemies) == 0 {
		return nil, speed, events
	}
	bounds := formationBounds(cfg)
	out := make([]Entity, len(enemies))
	reverse := false
	for i, e := range enemies {
		e.Pos.X += speed
		if !bounds.ContainsVect(e.Pos) {
			reverse = true
		}
		out[i] = e
	}
	if !reverse {
		return out, speed, events
	}

	for i := range out {
		out[i].Pos.Y -= cfg.DropStep
	}
	return out, -speed, append(events, Event{Kind: EventFormationBounced})
}

// resolveCollisions pairs each projectile with the first enemy, in list
// order, closer than the hit radius. A projectile destroys at most one enemy.
func resolveCollisions(s Session, events []Event) (Session, []Event) {
	if len(s.Projectiles) == 0 || len(s.Enemies) == 0 {
		return s, events
	}

	enemies := make([]Entity, len(s.Enemies))
	copy(enemies, s.Enemies)
	projectiles := make([]Entity, 0, len(s.Projectiles))

	for _, p := range s.Projectiles {
		hit := -1
		for j, e := range enemies {
			if p.Pos.Distance(e.Pos) < s.Config.HitRadius {
				hit = j
				break
			}
		}
		if hit < 0 {
			projectiles = append(projectiles, p)
			continue
		}

		enemy := enemies[hit]
		enemies = append(enemies[:hit], enemies[hit+1:]...)
		s.Score += s.Config.PointsPerEnemy
		events = append(events, Event{Kind: EventEnemyDestroyed, Projectile: p, Enemy: enemy, Score: s.Score})

		if len(enemies) == 0 {
			s.State = StateGameOver
			s.Dialog = Dialog{Visible: true, Title: gameOverTitle, Message: GameOverMessage(s.Score)}
			events = append(events, Event{Kind: EventGameOver, Score: s.Score})
		}
	}

	s.Projectiles = projectiles
	s.Enemies = enemies
	return s, events
}
