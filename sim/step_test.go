package sim

import (
	"math"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func playing(t *testing.T, cfg Config) Session {
	t.Helper()
	s, events := Start(NewSession(cfg))
	if len(events) != 1 || events[0].Kind != EventSessionStarted {
		t.Fatalf("expected session_started event, got %v", events)
	}
	return s
}

func TestStartBuildsGrid(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
	}{
		{"default", 3, 8},
		{"single", 1, 1},
		{"tall", 5, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Rows, cfg.Cols = c.rows, c.cols
			s := playing(t, cfg)

			if got := len(s.Enemies); got != c.rows*c.cols {
				t.Fatalf("expected %d enemies, got %d", c.rows*c.cols, got)
			}
			if len(s.Projectiles) != 0 {
				t.Fatalf("expected no projectiles, got %d", len(s.Projectiles))
			}
			if s.Score != 0 {
				t.Fatalf("expected score 0, got %d", s.Score)
			}
			if s.State != StatePlaying {
				t.Fatalf("expected playing, got %s", s.State)
			}
			if s.Dialog.Visible {
				t.Fatalf("dialog should be hidden while playing")
			}

			for i := 0; i < c.rows; i++ {
				for j := 0; j < c.cols; j++ {
					e := s.Enemies[i*c.cols+j]
					wantX := float64(j)*cfg.EnemySpacing + cfg.EnemyOriginX
					wantY := float64(i)*cfg.EnemySpacing + cfg.EnemyOriginY
					if !near(e.Pos.X, wantX) || !near(e.Pos.Y, wantY) {
						t.Fatalf("enemy (%d,%d) at %v, want (%v,%v)", i, j, e.Pos, wantX, wantY)
					}
				}
			}
		})
	}
}

func TestStartUniqueIDsAcrossRestarts(t *testing.T) {
	s := playing(t, DefaultConfig())
	s, _ = Fire(s)
	seen := map[uint64]bool{}
	for _, e := range append(append([]Entity{}, s.Enemies...), s.Projectiles...) {
		seen[e.ID] = true
	}

	s, _ = Restart(s)
	for _, e := range s.Enemies {
		if seen[e.ID] {
			t.Fatalf("id %d reused after restart", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestStepIdleIsNoop(t *testing.T) {
	s := NewSession(DefaultConfig())
	next, events := Step(s)
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
	if next.Frame != 0 || next.State != StateIdle {
		t.Fatalf("idle session advanced: frame=%d state=%s", next.Frame, next.State)
	}
	if !next.Dialog.Visible || next.Dialog.Title != "Welcome" {
		t.Fatalf("expected welcome dialog, got %+v", next.Dialog)
	}
}

func TestStepEmptyCollections(t *testing.T) {
	s := playing(t, DefaultConfig())
	s.Enemies = nil
	next, events := Step(s)
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
	if len(next.Enemies) != 0 || len(next.Projectiles) != 0 {
		t.Fatalf("expected empty collections")
	}
	if next.FormationSpeed != s.FormationSpeed {
		t.Fatalf("speed changed on empty formation")
	}
}

func TestProjectilePrune(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name  string
		y     float64
		alive bool
	}{
		{"well_below", 0, true},
		{"lands_on_top", cfg.ProjectileTop - cfg.ProjectileStep, true},
		{"crosses_top", cfg.ProjectileTop - cfg.ProjectileStep/2, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := []Entity{{ID: 1, Pos: cp.Vector{X: 0, Y: c.y}}}
			out, events := advanceProjectiles(in, cfg, nil)
			if c.alive {
				if len(out) != 1 || !near(out[0].Pos.Y, c.y+cfg.ProjectileStep) {
					t.Fatalf("expected projectile at %v, got %v", c.y+cfg.ProjectileStep, out)
				}
				return
			}
			if len(out) != 0 {
				t.Fatalf("expected projectile pruned, got %v", out)
			}
			if len(events) != 1 || events[0].Kind != EventProjectileExpired {
				t.Fatalf("expected projectile_expired, got %v", events)
			}
		})
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	s := playing(t, DefaultConfig())
	s, _ = Fire(s)
	before := s.Enemies[0].Pos
	beforeP := s.Projectiles[0].Pos

	_, _ = Step(s)

	if s.Enemies[0].Pos != before || s.Projectiles[0].Pos != beforeP {
		t.Fatalf("Step wrote through to the caller's slices")
	}
}

func TestFormationBounce(t *testing.T) {
	cfg := DefaultConfig()
	enemies := []Entity{
		{ID: 1, Pos: cp.Vector{X: 8.99, Y: 5}},
		{ID: 2, Pos: cp.Vector{X: 0, Y: 7}},
	}

	out, speed, events := advanceFormation(enemies, 0.02, cfg, nil)

	if !near(speed, -0.02) {
		t.Fatalf("expected speed -0.02, got %v", speed)
	}
	if !near(out[0].Pos.X, 9.01) || !near(out[0].Pos.Y, 4.5) {
		t.Fatalf("edge enemy at %v, want (9.01, 4.5)", out[0].Pos)
	}
	if !near(out[1].Pos.X, 0.02) || !near(out[1].Pos.Y, 6.5) {
		t.Fatalf("inner enemy at %v, want (0.02, 6.5)", out[1].Pos)
	}
	if len(events) != 1 || events[0].Kind != EventFormationBounced {
		t.Fatalf("expected formation_bounced, got %v", events)
	}

	// next frame moves left with the reversed speed and does not drop again
	out, speed, events = advanceFormation(out, speed, cfg, nil)
	if !near(out[0].Pos.X, 8.99) || !near(out[0].Pos.Y, 4.5) {
		t.Fatalf("edge enemy at %v after reversal, want (8.99, 4.5)", out[0].Pos)
	}
	if !near(speed, -0.02) || len(events) != 0 {
		t.Fatalf("unexpected second bounce: speed=%v events=%v", speed, events)
	}
}

func TestStepBounds(t *testing.T) {
	cfg := DefaultConfig()
	shots := projectileBounds(cfg)
	if !shots.ContainsVect(cp.Vector{X: -1e6, Y: cfg.ProjectileTop}) || shots.ContainsVect(cp.Vector{Y: cfg.ProjectileTop + eps}) {
		t.Fatalf("projectile bounds %+v should end exactly at y=%v", shots, cfg.ProjectileTop)
	}
	formation := formationBounds(cfg)
	if !formation.ContainsVect(cp.Vector{X: cfg.FormationBound, Y: -1e6}) || formation.ContainsVect(cp.Vector{X: -cfg.FormationBound - eps}) {
		t.Fatalf("formation bounds %+v should end exactly at x=±%v", formation, cfg.FormationBound)
	}
}

func TestFormationLeftBound(t *testing.T) {
	cfg := DefaultConfig()
	enemies := []Entity{{ID: 1, Pos: cp.Vector{X: -8.99, Y: 5}}}
	_, speed, _ := advanceFormation(enemies, -0.02, cfg, nil)
	if !near(speed, 0.02) {
		t.Fatalf("expected reversal at left bound, got %v", speed)
	}
}

func TestFormationStaysNearBounds(t *testing.T) {
	cfg := DefaultConfig()
	s := playing(t, cfg)
	limit := cfg.FormationBound + math.Abs(cfg.FormationSpeed) + eps

	for frame := 0; frame < 5000; frame++ {
		s, _ = Step(s)
		for _, e := range s.Enemies {
			if math.Abs(e.Pos.X) > limit {
				t.Fatalf("frame %d: enemy %d at x=%v beyond %v", frame, e.ID, e.Pos.X, limit)
			}
		}
	}
}

func TestProjectilesNeverAboveTop(t *testing.T) {
	cfg := DefaultConfig()
	s := playing(t, cfg)

	for frame := 0; frame < 600; frame++ {
		if frame%7 == 0 {
			s, _ = Fire(s)
		}
		s, _ = Step(s)
		for _, p := range s.Projectiles {
			if p.Pos.Y > cfg.ProjectileTop {
				t.Fatalf("frame %d: projectile %d at y=%v above %v", frame, p.ID, p.Pos.Y, cfg.ProjectileTop)
			}
		}
	}
}

func TestCollisionThreshold(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		hit      bool
	}{
		{"inside", 0.4, true},
		{"outside", 0.6, false},
		{"exactly_radius", 0.5, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := playing(t, DefaultConfig())
			enemy := s.Enemies[0]
			s.Projectiles = []Entity{{ID: 1000, Pos: cp.Vector{X: enemy.Pos.X, Y: enemy.Pos.Y - c.distance}}}
			total := len(s.Enemies)

			next, events := resolveCollisions(s, nil)

			if !c.hit {
				if len(next.Projectiles) != 1 || len(next.Enemies) != total || next.Score != 0 {
					t.Fatalf("unexpected removal at distance %v", c.distance)
				}
				return
			}
			if len(next.Projectiles) != 0 {
				t.Fatalf("projectile survived the hit")
			}
			if len(next.Enemies) != total-1 {
				t.Fatalf("expected %d enemies, got %d", total-1, len(next.Enemies))
			}
			for _, e := range next.Enemies {
				if e.ID == enemy.ID {
					t.Fatalf("struck enemy still present")
				}
			}
			if next.Score != 100 {
				t.Fatalf("expected score 100, got %d", next.Score)
			}
			if len(events) != 1 || events[0].Kind != EventEnemyDestroyed || events[0].Enemy.ID != enemy.ID {
				t.Fatalf("expected enemy_destroyed for %d, got %v", enemy.ID, events)
			}
		})
	}
}

func TestCollisionFirstMatchWins(t *testing.T) {
	s := playing(t, DefaultConfig())
	s.Enemies = []Entity{
		{ID: 1, Pos: cp.Vector{X: 0, Y: 0}},
		{ID: 2, Pos: cp.Vector{X: 0.3, Y: 0}},
		{ID: 3, Pos: cp.Vector{X: 5, Y: 5}},
	}
	s.Projectiles = []Entity{{ID: 10, Pos: cp.Vector{X: 0.15, Y: 0}}}

	next, _ := resolveCollisions(s, nil)

	if len(next.Enemies) != 2 || next.Enemies[0].ID != 2 {
		t.Fatalf("expected only enemy 1 destroyed, got %v", next.Enemies)
	}
	if next.Score != 100 {
		t.Fatalf("one projectile must destroy at most one enemy, score=%d", next.Score)
	}
}

func TestLastEnemyEndsGame(t *testing.T) {
	s := playing(t, DefaultConfig())
	s.Enemies = []Entity{{ID: 1, Pos: cp.Vector{X: 0, Y: 0}}}
	s.Score = 2300
	s.Projectiles = []Entity{
		{ID: 10, Pos: cp.Vector{X: 0, Y: -0.1}},
		{ID: 11, Pos: cp.Vector{X: 0, Y: 0.1}},
	}

	next, events := resolveCollisions(s, nil)

	if next.State != StateGameOver {
		t.Fatalf("expected game_over, got %s", next.State)
	}
	if len(events) != 2 || events[1].Kind != EventGameOver || events[1].Score != 2400 {
		t.Fatalf("expected enemy_destroyed then game_over(2400), got %v", events)
	}
	if !next.Dialog.Visible || next.Dialog.Title != "Game Over" || !strings.Contains(next.Dialog.Message, "2400") {
		t.Fatalf("unexpected end dialog %+v", next.Dialog)
	}
	if len(next.Projectiles) != 1 || next.Projectiles[0].ID != 11 {
		t.Fatalf("second projectile should survive, got %v", next.Projectiles)
	}

	halted, events := Step(next)
	if len(events) != 0 || halted.Frame != next.Frame {
		t.Fatalf("step should halt after game over")
	}
}

func TestScoreMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	// static formation keeps the autopilot deterministic
	cfg.FormationSpeed = 0
	s := playing(t, cfg)
	destroyed := 0
	last := 0

	for frame := 0; frame < 20000 && s.Playing(); frame++ {
		// track the lowest enemy in the player's column
		if len(s.Enemies) > 0 {
			s = DragTo(s, (s.Enemies[0].Pos.X+cfg.TouchHalfSpan)/(2*cfg.TouchHalfSpan))
		}
		if frame%5 == 0 {
			s, _ = Fire(s)
		}
		var events []Event
		s, events = Step(s)
		for _, ev := range events {
			if ev.Kind == EventEnemyDestroyed {
				destroyed++
			}
		}
		if s.Score < last {
			t.Fatalf("score decreased from %d to %d", last, s.Score)
		}
		if s.Score != destroyed*cfg.PointsPerEnemy {
			t.Fatalf("score %d after %d kills", s.Score, destroyed)
		}
		last = s.Score
	}

	if s.State != StateGameOver {
		t.Fatalf("expected autopilot to clear the grid, %d enemies left", len(s.Enemies))
	}
	if s.Score != cfg.Rows*cfg.Cols*cfg.PointsPerEnemy {
		t.Fatalf("expected final score %d, got %d", cfg.Rows*cfg.Cols*cfg.PointsPerEnemy, s.Score)
	}
}
