package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "reload prefabs/ and prefabs/scripts/ when they change on disk")
	mute := flag.Bool("mute", false, "start with sound muted")
	configPath := flag.String("config", "game.yaml", "game tuning file in prefabs/")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("invaders")

	game, err := NewGame(GameOptions{
		ConfigPath: *configPath,
		Debug:      *debug,
		Watch:      *watch,
		Muted:      *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
