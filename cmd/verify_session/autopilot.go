package main

import (
	"math"

	"github.com/milk9111/invaders/sim"
)

// autopilot drags under the lowest enemy, leading it by the time a shot
// needs to climb to its row, and fires on a fixed cadence.
type autopilot struct {
	fireEvery int
}

func (a autopilot) Commands(s sim.Session) []sim.Command {
	if !s.Playing() || len(s.Enemies) == 0 {
		return nil
	}

	target := s.Enemies[0]
	for _, e := range s.Enemies[1:] {
		if e.Pos.Y < target.Pos.Y || (e.Pos.Y == target.Pos.Y && math.Abs(e.Pos.X-s.Player.X) < math.Abs(target.Pos.X-s.Player.X)) {
			target = e
		}
	}

	cfg := s.Config
	climb := (target.Pos.Y - (s.Player.Y + cfg.ProjectileOffsetY)) / cfg.ProjectileStep
	x := target.Pos.X + s.FormationSpeed*math.Max(climb, 0)
	x = math.Max(-cfg.PlayerBound, math.Min(cfg.PlayerBound, x))

	span := cfg.TouchHalfSpan
	cmds := []sim.Command{{Kind: sim.CommandDrag, Fraction: (x + span) / (2 * span)}}
	if a.fireEvery <= 1 || s.Frame%uint64(a.fireEvery) == 0 {
		cmds = append(cmds, sim.Command{Kind: sim.CommandFire})
	}
	return cmds
}
