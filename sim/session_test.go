package sim

import (
	"errors"
	"testing"
)

func TestPlayerClamp(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name  string
		start float64
		move  func(Session) Session
		want  float64
	}{
		{"right_step", 0, MoveRight, 0.2},
		{"left_step", 0, MoveLeft, -0.2},
		{"right_edge", 8.9, MoveRight, 9},
		{"left_edge", -8.9, MoveLeft, -9},
		{"drag_left_edge", 3, func(s Session) Session { return DragTo(s, 0) }, -9},
		{"drag_center", 3, func(s Session) Session { return DragTo(s, 0.5) }, 0},
		{"drag_quarter", 3, func(s Session) Session { return DragTo(s, 0.25) }, -5},
		{"drag_right_edge", 3, func(s Session) Session { return DragTo(s, 1) }, 9},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := playing(t, cfg)
			s.Player.X = c.start
			s = c.move(s)
			if !near(s.Player.X, c.want) {
				t.Fatalf("expected x=%v, got %v", c.want, s.Player.X)
			}
		})
	}
}

func TestInputIgnoredWhenNotPlaying(t *testing.T) {
	s := NewSession(DefaultConfig())

	s = MoveRight(s)
	if s.Player.X != 0 {
		t.Fatalf("idle player moved to %v", s.Player.X)
	}
	s, events := Fire(s)
	if len(s.Projectiles) != 0 || len(events) != 0 {
		t.Fatalf("idle session fired a projectile")
	}
}

func TestFireUnbounded(t *testing.T) {
	s := playing(t, DefaultConfig())
	s.Player.X = 2.5

	for i := 0; i < 50; i++ {
		var events []Event
		s, events = Fire(s)
		if len(events) != 1 || events[0].Kind != EventProjectileFired {
			t.Fatalf("expected projectile_fired, got %v", events)
		}
	}
	if len(s.Projectiles) != 50 {
		t.Fatalf("expected 50 projectiles, got %d", len(s.Projectiles))
	}
	p := s.Projectiles[0]
	if !near(p.Pos.X, 2.5) || !near(p.Pos.Y, s.Player.Y+1) {
		t.Fatalf("projectile spawned at %v", p.Pos)
	}
}

func TestApplyCommands(t *testing.T) {
	s := NewSession(DefaultConfig())
	s, events := ApplyAll(s, []Command{
		{Kind: CommandStart},
		{Kind: CommandMoveRight},
		{Kind: CommandMoveRight},
		{Kind: CommandFire},
		{Kind: CommandDrag, Fraction: 0.75},
	})

	if s.State != StatePlaying {
		t.Fatalf("expected playing, got %s", s.State)
	}
	if len(events) != 2 || events[0].Kind != EventSessionStarted || events[1].Kind != EventProjectileFired {
		t.Fatalf("unexpected events %v", events)
	}
	if !near(s.Projectiles[0].Pos.X, 0.4) {
		t.Fatalf("projectile fired from %v, want x=0.4", s.Projectiles[0].Pos)
	}
	if !near(s.Player.X, 5) {
		t.Fatalf("expected drag to x=5, got %v", s.Player.X)
	}
}

func TestRestartFromGameOver(t *testing.T) {
	s := playing(t, DefaultConfig())
	s.State = StateGameOver
	s.Score = 900
	s.Enemies = nil

	s, _ = Apply(s, Command{Kind: CommandStart})
	if s.State != StatePlaying || s.Score != 0 || len(s.Enemies) != 24 || s.Dialog.Visible {
		t.Fatalf("restart did not reset session: %+v", s)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero_rows", func(c *Config) { c.Rows = 0 }, false},
		{"zero_bound", func(c *Config) { c.FormationBound = 0 }, false},
		{"negative_points", func(c *Config) { c.PointsPerEnemy = -1 }, false},
		{"zero_radius", func(c *Config) { c.HitRadius = 0 }, false},
		{"static_formation", func(c *Config) { c.FormationSpeed = 0 }, true},
		{"zero_spacing", func(c *Config) { c.EnemySpacing = 0 }, false},
		{"negative_spacing", func(c *Config) { c.EnemySpacing = -2 }, false},
		{"grid_too_wide", func(c *Config) { c.Cols = 12 }, false},
		{"origin_outside_bound", func(c *Config) { c.EnemyOriginX = -9.5 }, false},
		{"grid_touches_bound", func(c *Config) { c.Cols = 9 }, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if StateGameOver.String() != "game_over" || StateIdle.String() != "idle" {
		t.Fatalf("unexpected state names %s %s", StateGameOver, StateIdle)
	}
	if EventEnemyDestroyed.String() != "enemy_destroyed" {
		t.Fatalf("unexpected event name %s", EventEnemyDestroyed)
	}
}
