package system

import (
	"log"

	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
	"github.com/milk9111/invaders/sim"
)

// SessionSystem owns the simulation session. Each frame it applies the
// commands gathered on Input components, steps the session once and
// republishes the simulation events on the world queue, typed by
// sim.EventKind.String().
type SessionSystem struct {
	session        sim.Session
	pendingConfig  *sim.Config
	startRequested bool
	debug          bool
}

func NewSessionSystem(cfg sim.Config) *SessionSystem {
	return &SessionSystem{session: sim.NewSession(cfg)}
}

// Session returns the current session value.
func (s *SessionSystem) Session() sim.Session {
	if s == nil {
		return sim.Session{}
	}
	return s.session
}

// RequestStart starts (or restarts) the session on the next update. It is a
// no-op while a session is being played.
func (s *SessionSystem) RequestStart() {
	if s == nil {
		return
	}
	s.startRequested = true
}

// SetConfig stages cfg for the next start. An idle session adopts it
// immediately so the player is placed from the new tuning.
func (s *SessionSystem) SetConfig(cfg sim.Config) {
	if s == nil {
		return
	}
	if s.session.State == sim.StateIdle {
		s.session = sim.NewSession(cfg)
		s.pendingConfig = nil
		return
	}
	s.pendingConfig = &cfg
}

func (s *SessionSystem) SetDebug(debug bool) {
	if s != nil {
		s.debug = debug
	}
}

func (s *SessionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var cmds []sim.Command
	if s.startRequested {
		cmds = append(cmds, sim.Command{Kind: sim.CommandStart})
		s.startRequested = false
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		cmds = append(cmds, input.Commands...)
		input.Commands = input.Commands[:0]
	})

	var events []sim.Event
	for _, cmd := range cmds {
		if cmd.Kind == sim.CommandStart {
			if s.session.Playing() {
				continue
			}
			if s.pendingConfig != nil {
				s.session.Config = *s.pendingConfig
				s.pendingConfig = nil
			}
		}
		var evs []sim.Event
		s.session, evs = sim.Apply(s.session, cmd)
		events = append(events, evs...)
	}

	var evs []sim.Event
	s.session, evs = sim.Step(s.session)
	events = append(events, evs...)

	for _, ev := range events {
		if s.debug && ev.Kind != sim.EventProjectileFired && ev.Kind != sim.EventProjectileExpired {
			log.Printf("session: frame=%d %s score=%d", s.session.Frame, ev.Kind, ev.Score)
		}
		w.Events().Push(ecs.Event{Type: ev.Kind.String(), Data: ev})
	}
}
