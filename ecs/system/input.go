package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
	"github.com/milk9111/invaders/sim"
)

const (
	keyRepeatDelay    = 15
	keyRepeatInterval = 2
)

// InputState is one frame of device input, already reduced to triggers.
type InputState struct {
	Left  bool
	Right bool
	Fire  bool
	Start bool
	// Drag is the horizontal position of an active touch as a fraction of the
	// screen width, or negative when nothing is being dragged.
	Drag float64
}

// Commands turns a frame of input into simulation commands. Movement comes
// before firing so a shot leaves from the updated position.
func (in InputState) Commands() []sim.Command {
	var cmds []sim.Command
	if in.Start {
		cmds = append(cmds, sim.Command{Kind: sim.CommandStart})
	}
	if in.Left {
		cmds = append(cmds, sim.Command{Kind: sim.CommandMoveLeft})
	}
	if in.Right {
		cmds = append(cmds, sim.Command{Kind: sim.CommandMoveRight})
	}
	if in.Drag >= 0 {
		cmds = append(cmds, sim.Command{Kind: sim.CommandDrag, Fraction: in.Drag})
	}
	if in.Fire {
		cmds = append(cmds, sim.Command{Kind: sim.CommandFire})
	}
	return cmds
}

type InputSystem struct {
	touches []ebiten.TouchID
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	cmds := i.read().Commands()
	if len(cmds) == 0 {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Commands = append(input.Commands, cmds...)
	})
}

func (i *InputSystem) read() InputState {
	in := InputState{
		Left:  keyRepeat(ebiten.KeyArrowLeft) || keyRepeat(ebiten.KeyA),
		Right: keyRepeat(ebiten.KeyArrowRight) || keyRepeat(ebiten.KeyD),
		Fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Start: inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Drag:  -1,
	}

	i.touches = ebiten.AppendTouchIDs(i.touches[:0])
	if len(i.touches) == 1 {
		id := i.touches[0]
		x, _ := ebiten.TouchPosition(id)
		fire, drag := touchInput(len(i.touches), inpututil.TouchPressDuration(id), x)
		in.Fire = in.Fire || fire
		in.Drag = drag
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		in.Left = in.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		in.Right = in.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		in.Fire = in.Fire || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Start = in.Start || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	return in
}

// touchInput reduces the active touches of one frame. Only a lone finger
// counts: the frame it lands fires, every later frame drags.
func touchInput(count, pressFrames, x int) (fire bool, drag float64) {
	if count != 1 || pressFrames <= 0 {
		return false, -1
	}
	if pressFrames == 1 {
		return true, -1
	}
	return false, float64(x) / common.BaseWidth
}

// keyRepeat reports a press on the first frame and then at a steady rate
// while the key is held, like keyboard auto-repeat.
func keyRepeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}
