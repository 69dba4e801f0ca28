package component

import "github.com/milk9111/invaders/sim"

// Input stores the commands gathered from devices this frame.
type Input struct {
	Commands []sim.Command
}

var InputComponent = NewComponent[Input]()
