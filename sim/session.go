// Package sim is the frame-stepped simulation behind the game: a player on one
// axis, upward projectiles and a formation of enemies that sweeps and drops.
//
// Every operation takes a Session value and returns the next one. Slices held
// by the input session are never written to, so callers may keep old
// sessions around (replays, tests) without copying.
package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

type State int

const (
	StateIdle State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Entity is a projectile or an enemy.
type Entity struct {
	ID  uint64
	Pos cp.Vector
}

// Dialog is what the presentation layer shows over the playfield.
type Dialog struct {
	Visible bool
	Title   string
	Message string
}

type Session struct {
	Config Config
	State  State

	Player         cp.Vector
	Projectiles    []Entity
	Enemies        []Entity
	FormationSpeed float64
	Score          int

	// Frame counts simulated frames since the last start.
	Frame  uint64
	Dialog Dialog

	nextID uint64
}

const (
	welcomeTitle   = "Welcome"
	welcomeMessage = "Press 'Start' to begin the game."
	gameOverTitle  = "Game Over"
)

// GameOverMessage is the end dialog body for a final score.
func GameOverMessage(score int) string {
	return fmt.Sprintf("Your score is %d. Play again?", score)
}

// NewSession returns an idle session with the welcome dialog showing.
func NewSession(cfg Config) Session {
	return Session{
		Config:         cfg,
		State:          StateIdle,
		Player:         cp.Vector{X: cfg.PlayerX, Y: cfg.PlayerY},
		FormationSpeed: cfg.FormationSpeed,
		Dialog:         Dialog{Visible: true, Title: welcomeTitle, Message: welcomeMessage},
	}
}

// Start resets entities and score and begins play. It is also the restart
// path from GameOver.
func Start(s Session) (Session, []Event) {
	cfg := s.Config
	next := Session{
		Config:         cfg,
		State:          StatePlaying,
		Player:         cp.Vector{X: cfg.PlayerX, Y: cfg.PlayerY},
		FormationSpeed: cfg.FormationSpeed,
		nextID:         s.nextID,
	}

	next.Enemies = make([]Entity, 0, cfg.Rows*cfg.Cols)
	for i := 0; i < cfg.Rows; i++ {
		for j := 0; j < cfg.Cols; j++ {
			pos := cp.Vector{
				X: float64(j)*cfg.EnemySpacing + cfg.EnemyOriginX,
				Y: float64(i)*cfg.EnemySpacing + cfg.EnemyOriginY,
			}
			next.Enemies = append(next.Enemies, next.spawn(pos))
		}
	}

	return next, []Event{{Kind: EventSessionStarted}}
}

// Restart is Start under the name the end dialog uses.
func Restart(s Session) (Session, []Event) {
	return Start(s)
}

func (s *Session) spawn(pos cp.Vector) Entity {
	s.nextID++
	return Entity{ID: s.nextID, Pos: pos}
}

func (s Session) Playing() bool {
	return s.State == StatePlaying
}

// Fire creates one projectile just above the player. There is no cooldown.
func Fire(s Session) (Session, []Event) {
	if !s.Playing() {
		return s, nil
	}
	pos := cp.Vector{X: s.Player.X, Y: s.Player.Y + s.Config.ProjectileOffsetY}
	p := s.spawn(pos)

	projectiles := make([]Entity, len(s.Projectiles), len(s.Projectiles)+1)
	copy(projectiles, s.Projectiles)
	s.Projectiles = append(projectiles, p)

	return s, []Event{{Kind: EventProjectileFired, Projectile: p}}
}

func MoveLeft(s Session) Session {
	return movePlayer(s, s.Player.X-s.Config.PlayerStep)
}

func MoveRight(s Session) Session {
	return movePlayer(s, s.Player.X+s.Config.PlayerStep)
}

// DragTo places the player from a horizontal fraction of the input surface,
// 0 being the left edge and 1 the right edge.
func DragTo(s Session, fraction float64) Session {
	span := s.Config.TouchHalfSpan
	return movePlayer(s, fraction*2*span-span)
}

func movePlayer(s Session, x float64) Session {
	if !s.Playing() {
		return s
	}
	bound := s.Config.PlayerBound
	s.Player.X = cp.Clamp(x, -bound, bound)
	return s
}
