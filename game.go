package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/invaders/common"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/entity"
	"github.com/milk9111/invaders/ecs/system"
	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
	"golang.design/x/clipboard"
)

var (
	groundColor = color.NRGBA{R: 0x30, G: 0x60, B: 0x30, A: 0xff}
	boundsColor = color.NRGBA{R: 0x60, G: 0x20, B: 0x20, A: 0xff}
)

type Game struct {
	frames int
	debug  bool

	configPath string
	spec       *prefabs.GameSpec

	world   *ecs.World
	session *system.SessionSystem
	sync    *system.SyncSystem
	dialog  *system.DialogSystem
	audio   *system.AudioSystem
	render  *system.RenderSystem

	modal *modalUI
	hud   *hud

	watcher      *prefabs.Watcher
	clipboardOK  bool
	status       string
	statusFrames int
}

type GameOptions struct {
	ConfigPath string
	Debug      bool
	Watch      bool
	Muted      bool
}

func NewGame(opts GameOptions) (*Game, error) {
	spec, err := prefabs.LoadGameSpec(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	set, err := entity.LoadPrefabSet(spec.Prefabs)
	if err != nil {
		return nil, err
	}
	log.Printf("config %s loaded from %s copy", opts.ConfigPath, prefabs.Source(opts.ConfigPath))

	g := &Game{
		debug:      opts.Debug,
		configPath: opts.ConfigPath,
		spec:       spec,
		world:      ecs.NewWorld(),
		render:     system.NewRenderSystem(),
		hud:        newHUD(),
	}

	g.session = system.NewSessionSystem(spec.Config())
	g.session.SetDebug(opts.Debug)
	g.sync = system.NewSyncSystem(g.session, set, viewOf(spec))
	g.dialog = system.NewDialogSystem(g.session, loadDialogScript(spec.DialogScript))
	g.audio = system.NewAudioSystem()
	g.audio.SetMuted(opts.Muted)

	g.world.AddSystem(system.NewInputSystem())
	g.world.AddSystem(g.session)
	g.world.AddSystem(g.sync)
	g.world.AddSystem(system.NewTTLSystem())
	g.world.AddSystem(g.audio)
	g.world.AddSystem(g.dialog)

	g.modal = newModalUI(g.session.RequestStart)

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "scripts"))
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	// Prime the player entity and the dialog before the first frame is drawn.
	g.world.Update()
	g.modal.SetView(g.dialog.View())

	return g, nil
}

func viewOf(spec *prefabs.GameSpec) system.View {
	return system.View{
		PixelsPerUnit: spec.View.PixelsPerUnit,
		OriginX:       spec.View.OriginX,
		OriginY:       spec.View.OriginY,
	}
}

func loadDialogScript(path string) *system.DialogScript {
	if path == "" {
		return nil
	}
	script, err := system.LoadDialogScript(path)
	if err != nil {
		log.Printf("dialog script %s: %v; using built-in text", path, err)
		return nil
	}
	return script
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		if changed := g.watcher.Poll(); len(changed) > 0 {
			g.reload(changed)
		}
		select {
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.audio.SetMuted(!g.audio.Muted())
		if g.audio.Muted() {
			g.setStatus("muted")
		} else {
			g.setStatus("sound on")
		}
	}

	session := g.session.Session()
	if session.State == sim.StateGameOver && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyScore(session.Score)
	}

	view := g.dialog.View()
	if view.Visible {
		g.modal.SetView(view)
		g.modal.ui.Update()
	}

	g.world.Update()

	if g.statusFrames > 0 {
		g.statusFrames--
		if g.statusFrames == 0 {
			g.status = ""
		}
	}

	return nil
}

// reload re-reads the tuning file and prefabs. When only scripts changed
// the dialog script is recompiled and nothing else is touched.
func (g *Game) reload(changed []string) {
	scriptsOnly := true
	for _, path := range changed {
		log.Printf("reload: %s changed", path)
		if !prefabs.IsScript(path) {
			scriptsOnly = false
		}
	}
	if scriptsOnly {
		g.dialog.SetScript(loadDialogScript(g.spec.DialogScript))
		g.setStatus("script reloaded")
		return
	}

	spec, err := prefabs.LoadGameSpec(g.configPath)
	if err != nil {
		log.Printf("reload: %v", err)
		g.setStatus("reload failed")
		return
	}
	set, err := entity.LoadPrefabSet(spec.Prefabs)
	if err != nil {
		log.Printf("reload: %v", err)
		g.setStatus("reload failed")
		return
	}

	g.spec = spec
	g.session.SetConfig(spec.Config())
	g.sync.SetView(viewOf(spec))
	g.sync.SetPrefabs(g.world, set)
	g.dialog.SetScript(loadDialogScript(spec.DialogScript))
	g.setStatus("reloaded")
}

func (g *Game) copyScore(score int) {
	if !g.clipboardOK {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strconv.Itoa(score)))
	g.setStatus("score copied")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusFrames = 120
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.spec.View.Background.Color != nil {
		screen.Fill(g.spec.View.Background.Color)
	}

	g.drawGround(screen)
	g.render.Draw(g.world, screen)

	session := g.session.Session()
	g.hud.Draw(screen, session.Score, g.status)

	if g.dialog.View().Visible {
		g.modal.ui.Draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    State: %s    Enemies: %d    Projectiles: %d",
			g.frames, ebiten.ActualFPS(), session.State, len(session.Enemies), len(session.Projectiles)), 0, common.BaseHeight-16)
	}
}

// drawGround marks the player's track and the formation bounds.
func (g *Game) drawGround(screen *ebiten.Image) {
	cfg := g.session.Session().Config
	view := viewOf(g.spec)
	x0, y := view.ToScreen(cp.Vector{X: -cfg.PlayerBound - 1, Y: cfg.PlayerY - 1})
	x1, _ := view.ToScreen(cp.Vector{X: cfg.PlayerBound + 1, Y: cfg.PlayerY - 1})
	vector.StrokeLine(screen, float32(x0), float32(y), float32(x1), float32(y), 2, groundColor, false)

	if !g.debug {
		return
	}
	for _, bx := range []float64{-cfg.FormationBound, cfg.FormationBound} {
		x, top := view.ToScreen(cp.Vector{X: bx, Y: cfg.ProjectileTop})
		_, bottom := view.ToScreen(cp.Vector{X: bx, Y: cfg.PlayerY})
		vector.StrokeLine(screen, float32(x), float32(top), float32(x), float32(bottom), 1, boundsColor, false)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close watcher: %v", err)
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
