// Command invaders-tui plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

const sampleRate = beep.SampleRate(44100)

type Game struct {
	screen  tcell.Screen
	session sim.Session
	grid    grid

	audioInit bool
	muted     bool
	buttons   tcell.ButtonMask
}

func NewGame(cfg sim.Config, muted bool) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	g := &Game{
		screen:  screen,
		session: sim.NewSession(cfg),
		muted:   muted,
	}
	g.grid = newGrid(screen.Size())

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("audio initialization failed: %v", err)
	} else {
		g.audioInit = true
	}
	return g, nil
}

func (g *Game) playTone(freq float64, d time.Duration) {
	if !g.audioInit || g.muted {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (g *Game) apply(cmd sim.Command) {
	if cmd.Kind == sim.CommandStart && g.session.Playing() {
		return
	}
	var events []sim.Event
	g.session, events = sim.Apply(g.session, cmd)
	g.handleEvents(events)
}

func (g *Game) handleEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventEnemyDestroyed:
			g.playTone(880, 50*time.Millisecond)
		case sim.EventGameOver:
			g.playTone(220, 400*time.Millisecond)
		}
	}
}

// handleInput returns false when the player asked to quit.
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if cmd, ok := keyCommand(ev.Key(), ev.Rune()); ok {
			g.apply(cmd)
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'm':
				g.muted = !g.muted
			}
		}

	case *tcell.EventMouse:
		x, _ := ev.Position()
		for _, cmd := range mouseCommands(g.buttons, ev.Buttons(), g.grid.fraction(x)) {
			g.apply(cmd)
		}
		g.buttons = ev.Buttons()

	case *tcell.EventResize:
		g.grid = newGrid(g.screen.Size())
		g.screen.Sync()
	}
	return true
}

func keyCommand(key tcell.Key, r rune) (sim.Command, bool) {
	switch key {
	case tcell.KeyLeft:
		return sim.Command{Kind: sim.CommandMoveLeft}, true
	case tcell.KeyRight:
		return sim.Command{Kind: sim.CommandMoveRight}, true
	case tcell.KeyEnter:
		return sim.Command{Kind: sim.CommandStart}, true
	case tcell.KeyRune:
		switch r {
		case 'a', 'h':
			return sim.Command{Kind: sim.CommandMoveLeft}, true
		case 'd', 'l':
			return sim.Command{Kind: sim.CommandMoveRight}, true
		case ' ':
			return sim.Command{Kind: sim.CommandFire}, true
		}
	}
	return sim.Command{}, false
}

// mouseCommands fires when the primary button goes down and drags while it
// stays held, so one click is one shot.
func mouseCommands(prev, cur tcell.ButtonMask, fraction float64) []sim.Command {
	if cur&tcell.Button1 == 0 {
		return nil
	}
	if prev&tcell.Button1 == 0 {
		return []sim.Command{{Kind: sim.CommandFire}}
	}
	return []sim.Command{{Kind: sim.CommandDrag, Fraction: fraction}}
}

func (g *Game) step() {
	var events []sim.Event
	g.session, events = sim.Step(g.session)
	g.handleEvents(events)
}

func (g *Game) draw() {
	g.screen.Clear()

	player := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	enemy := tcell.StyleDefault.Foreground(tcell.ColorRed)
	shot := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for _, e := range g.session.Enemies {
		if x, y, ok := g.grid.cell(e.Pos); ok {
			g.screen.SetContent(x, y, 'W', nil, enemy)
		}
	}
	for _, p := range g.session.Projectiles {
		if x, y, ok := g.grid.cell(p.Pos); ok {
			g.screen.SetContent(x, y, '|', nil, shot)
		}
	}
	if x, y, ok := g.grid.cell(g.session.Player); ok {
		g.screen.SetContent(x, y, 'A', nil, player)
	}

	g.drawText(0, 0, fmt.Sprintf("Score: %d", g.session.Score), tcell.StyleDefault)
	if d := g.session.Dialog; d.Visible {
		w, h := g.screen.Size()
		g.drawText((w-len(d.Title))/2, h/2-1, d.Title, tcell.StyleDefault.Bold(true))
		g.drawText((w-len(d.Message))/2, h/2, d.Message, tcell.StyleDefault)
		hint := "[Enter] start   [q] quit"
		g.drawText((w-len(hint))/2, h/2+2, hint, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	g.screen.Show()
}

func (g *Game) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.step()
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func main() {
	configPath := flag.String("config", "game.yaml", "game tuning file in prefabs/")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	game, err := NewGame(spec.Config(), *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
