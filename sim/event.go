package sim

type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventProjectileFired
	EventProjectileExpired
	EventFormationBounced
	EventEnemyDestroyed
	EventGameOver
)

var eventNames = [...]string{
	EventSessionStarted:    "session_started",
	EventProjectileFired:   "projectile_fired",
	EventProjectileExpired: "projectile_expired",
	EventFormationBounced:  "formation_bounced",
	EventEnemyDestroyed:    "enemy_destroyed",
	EventGameOver:          "game_over",
}

func (k EventKind) String() string {
	if int(k) < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event reports something a frontend may want to animate or sound. Score is
// the session score after the event.
type Event struct {
	Kind       EventKind
	Projectile Entity
	Enemy      Entity
	Score      int
}
