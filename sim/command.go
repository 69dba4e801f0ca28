package sim

type CommandKind int

const (
	CommandMoveLeft CommandKind = iota
	CommandMoveRight
	CommandFire
	CommandStart
	CommandDrag
)

// Command is a device-independent trigger. Fraction is only read by
// CommandDrag.
type Command struct {
	Kind     CommandKind
	Fraction float64
}

// Apply runs one command against the session. Commands that make no sense in
// the current state are dropped.
func Apply(s Session, cmd Command) (Session, []Event) {
	switch cmd.Kind {
	case CommandMoveLeft:
		return MoveLeft(s), nil
	case CommandMoveRight:
		return MoveRight(s), nil
	case CommandFire:
		return Fire(s)
	case CommandStart:
		return Start(s)
	case CommandDrag:
		return DragTo(s, cmd.Fraction), nil
	}
	return s, nil
}

// ApplyAll runs cmds in order and collects their events.
func ApplyAll(s Session, cmds []Command) (Session, []Event) {
	var events []Event
	for _, cmd := range cmds {
		var evs []Event
		s, evs = Apply(s, cmd)
		events = append(events, evs...)
	}
	return s, events
}
