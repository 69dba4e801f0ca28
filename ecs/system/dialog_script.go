package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

// DialogView is what the modal shows.
type DialogView struct {
	Visible bool
	Title   string
	Message string
	Button  string
}

const dialogDispatchScript = `
__result := undefined
if __call == "dialog" {
	__result = dialog(__state, __score)
} else if __call == "button" {
	__result = button(__state)
}
`

// DialogScript runs the dialog(state, score) and button(state) functions of a
// tengo script.
type DialogScript struct {
	path     string
	compiled *tengo.Compiled
}

func LoadDialogScript(path string) (*DialogScript, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("dialog script: empty path")
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("dialog script: %w", err)
	}
	return CompileDialogScript(path, src)
}

func CompileDialogScript(path string, src []byte) (*DialogScript, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + dialogDispatchScript))
	_ = script.Add("__call", "")
	_ = script.Add("__state", "")
	_ = script.Add("__score", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("dialog script %s: compile: %w", path, err)
	}
	return &DialogScript{path: path, compiled: compiled}, nil
}

func (d *DialogScript) call(fn string, state sim.State, score int) (*tengo.Variable, error) {
	if err := d.compiled.Set("__call", fn); err != nil {
		return nil, err
	}
	if err := d.compiled.Set("__state", state.String()); err != nil {
		return nil, err
	}
	if err := d.compiled.Set("__score", score); err != nil {
		return nil, err
	}
	if err := d.compiled.Run(); err != nil {
		return nil, fmt.Errorf("dialog script %s: %s: %w", d.path, fn, err)
	}
	return d.compiled.Get("__result"), nil
}

// View computes the modal for a session. Anything the script leaves undefined
// falls back to the session's own dialog text.
func (d *DialogScript) View(s sim.Session) (DialogView, error) {
	view := DefaultDialogView(s)
	if d == nil || d.compiled == nil || !view.Visible {
		return view, nil
	}

	res, err := d.call("dialog", s.State, s.Score)
	if err != nil {
		return view, err
	}
	if !res.IsUndefined() {
		m := res.Map()
		if title, ok := m["title"].(string); ok && title != "" {
			view.Title = title
		}
		if message, ok := m["message"].(string); ok && message != "" {
			view.Message = message
		}
	}

	res, err = d.call("button", s.State, s.Score)
	if err != nil {
		return view, err
	}
	if !res.IsUndefined() {
		if label := strings.TrimSpace(res.String()); label != "" {
			view.Button = label
		}
	}
	return view, nil
}

// DefaultDialogView is the modal without any script.
func DefaultDialogView(s sim.Session) DialogView {
	button := "Start"
	if s.State == sim.StateGameOver {
		button = "Play again"
	}
	return DialogView{
		Visible: s.Dialog.Visible,
		Title:   s.Dialog.Title,
		Message: s.Dialog.Message,
		Button:  button,
	}
}

// DialogSystem keeps the modal view in step with the session. The script is
// only consulted when the state or score changes.
type DialogSystem struct {
	session *SessionSystem
	script  *DialogScript

	view      DialogView
	lastState sim.State
	lastScore int
	valid     bool
}

func NewDialogSystem(session *SessionSystem, script *DialogScript) *DialogSystem {
	return &DialogSystem{session: session, script: script}
}

func (d *DialogSystem) SetScript(script *DialogScript) {
	if d == nil {
		return
	}
	d.script = script
	d.valid = false
}

func (d *DialogSystem) View() DialogView {
	if d == nil {
		return DialogView{}
	}
	return d.view
}

func (d *DialogSystem) Update(_ *ecs.World) {
	if d == nil || d.session == nil {
		return
	}
	s := d.session.Session()
	if d.valid && s.State == d.lastState && s.Score == d.lastScore {
		return
	}

	view, err := d.script.View(s)
	if err != nil {
		log.Printf("dialog: %v", err)
	}
	d.view = view
	d.lastState = s.State
	d.lastScore = s.Score
	d.valid = true
}
