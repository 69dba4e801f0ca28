package sim

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Config holds the tuning constants of a session. Velocities are not stored
// on entities; they are these constants applied during Step.
type Config struct {
	Rows         int
	Cols         int
	EnemySpacing float64
	EnemyOriginX float64
	EnemyOriginY float64

	FormationSpeed float64
	FormationBound float64
	DropStep       float64

	ProjectileStep    float64
	ProjectileTop     float64
	ProjectileOffsetY float64

	PlayerX       float64
	PlayerY       float64
	PlayerBound   float64
	PlayerStep    float64
	TouchHalfSpan float64

	HitRadius      float64
	PointsPerEnemy int
}

func DefaultConfig() Config {
	return Config{
		Rows:         3,
		Cols:         8,
		EnemySpacing: 2,
		EnemyOriginX: -7,
		EnemyOriginY: 5,

		FormationSpeed: 0.02,
		FormationBound: 9,
		DropStep:       0.5,

		ProjectileStep:    0.2,
		ProjectileTop:     15,
		ProjectileOffsetY: 1,

		PlayerX:       0,
		PlayerY:       -10,
		PlayerBound:   9,
		PlayerStep:    0.2,
		TouchHalfSpan: 10,

		HitRadius:      0.5,
		PointsPerEnemy: 100,
	}
}

// Validate reports the first field that would break the session invariants.
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, c.Rows, c.Cols)
	case c.EnemySpacing <= 0:
		return fmt.Errorf("%w: enemy spacing %v must be positive", ErrInvalidConfig, c.EnemySpacing)
	case c.FormationBound <= 0:
		return fmt.Errorf("%w: formation bound %v must be positive", ErrInvalidConfig, c.FormationBound)
	case math.Abs(c.EnemyOriginX) > c.FormationBound || math.Abs(c.formationRight()) > c.FormationBound:
		return fmt.Errorf("%w: formation spans x %v..%v beyond ±%v", ErrInvalidConfig, c.EnemyOriginX, c.formationRight(), c.FormationBound)
	case c.PlayerBound <= 0:
		return fmt.Errorf("%w: player bound %v must be positive", ErrInvalidConfig, c.PlayerBound)
	case c.ProjectileStep <= 0:
		return fmt.Errorf("%w: projectile step %v must be positive", ErrInvalidConfig, c.ProjectileStep)
	case c.DropStep < 0:
		return fmt.Errorf("%w: drop step %v is negative", ErrInvalidConfig, c.DropStep)
	case c.HitRadius <= 0:
		return fmt.Errorf("%w: hit radius %v must be positive", ErrInvalidConfig, c.HitRadius)
	case c.PointsPerEnemy < 0:
		return fmt.Errorf("%w: points per enemy %d is negative", ErrInvalidConfig, c.PointsPerEnemy)
	case c.TouchHalfSpan <= 0:
		return fmt.Errorf("%w: touch half span %v must be positive", ErrInvalidConfig, c.TouchHalfSpan)
	}
	return nil
}

// formationRight is the x of the rightmost column at spawn.
func (c Config) formationRight() float64 {
	return c.EnemyOriginX + float64(c.Cols-1)*c.EnemySpacing
}
