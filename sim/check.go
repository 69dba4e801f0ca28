package sim

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvariant = errors.New("sim: invariant violated")

// Check verifies the properties every reachable session holds. It is meant
// for tests and the headless verifier, not for the frame loop.
func Check(s Session) error {
	cfg := s.Config

	if math.Abs(s.Player.X) > cfg.PlayerBound {
		return fmt.Errorf("%w: player x %v outside ±%v", ErrInvariant, s.Player.X, cfg.PlayerBound)
	}

	seen := make(map[uint64]struct{}, len(s.Projectiles)+len(s.Enemies))
	for _, group := range [][]Entity{s.Projectiles, s.Enemies} {
		for _, e := range group {
			if _, dup := seen[e.ID]; dup {
				return fmt.Errorf("%w: duplicate entity id %d", ErrInvariant, e.ID)
			}
			seen[e.ID] = struct{}{}
		}
	}

	for _, p := range s.Projectiles {
		if p.Pos.Y > cfg.ProjectileTop {
			return fmt.Errorf("%w: projectile %d at y %v above %v", ErrInvariant, p.ID, p.Pos.Y, cfg.ProjectileTop)
		}
	}

	limit := cfg.FormationBound + math.Abs(cfg.FormationSpeed) + 1e-9
	for _, e := range s.Enemies {
		if math.Abs(e.Pos.X) > limit {
			return fmt.Errorf("%w: enemy %d at x %v beyond ±%v", ErrInvariant, e.ID, e.Pos.X, limit)
		}
	}

	if s.State == StateIdle {
		return nil
	}

	destroyed := cfg.Rows*cfg.Cols - len(s.Enemies)
	if s.Score != destroyed*cfg.PointsPerEnemy {
		return fmt.Errorf("%w: score %d after %d kills", ErrInvariant, s.Score, destroyed)
	}
	if (s.State == StateGameOver) != (len(s.Enemies) == 0) {
		return fmt.Errorf("%w: state %s with %d enemies left", ErrInvariant, s.State, len(s.Enemies))
	}
	return nil
}
