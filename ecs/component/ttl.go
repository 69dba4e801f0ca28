package component

// TTL is a simple frame-based time-to-live component. Entities carrying it
// are destroyed after the given number of update ticks.
type TTL struct {
	// Frames remaining for the TTL (in update ticks)
	Frames int
	// Total is the starting value, kept for fades.
	Total int
}

var TTLComponent = NewComponent[TTL]()
