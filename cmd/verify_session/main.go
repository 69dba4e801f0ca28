// Command verify_session plays headless sessions with a simple autopilot and
// checks the simulation invariants after every frame.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/invaders/prefabs"
	"github.com/milk9111/invaders/sim"
)

func main() {
	configPath := flag.String("config", "game.yaml", "game tuning file in prefabs/")
	frames := flag.Int("frames", 20000, "maximum frames to simulate per session")
	fireEvery := flag.Int("fire-every", 12, "frames between autopilot shots")
	sessions := flag.Int("sessions", 1, "number of back-to-back sessions")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	s := sim.NewSession(spec.Config())
	failed := false
	for i := 0; i < *sessions; i++ {
		res, err := run(s, autopilot{fireEvery: *fireEvery}, *frames)
		if err != nil {
			log.Printf("session %d: frame %d: %v", i+1, res.Final.Frame, err)
			failed = true
			break
		}
		log.Printf("session %d: state=%s score=%d frames=%d shots=%d bounces=%d",
			i+1, res.Final.State, res.Final.Score, res.Final.Frame, res.Shots, res.Bounces)
		s = res.Final
	}

	if failed {
		os.Exit(1)
	}
}

type result struct {
	Final   sim.Session
	Shots   int
	Bounces int
}

// run starts s (or restarts it) and steps it until game over or the frame
// limit, checking invariants after every command and step.
func run(s sim.Session, pilot autopilot, frames int) (result, error) {
	var res result

	s, _ = sim.Start(s)
	for f := 0; f < frames && s.Playing(); f++ {
		var events []sim.Event
		s, events = sim.ApplyAll(s, pilot.Commands(s))
		res.count(events)
		if err := sim.Check(s); err != nil {
			res.Final = s
			return res, err
		}

		s, events = sim.Step(s)
		res.count(events)
		if err := sim.Check(s); err != nil {
			res.Final = s
			return res, err
		}
	}

	res.Final = s
	return res, nil
}

func (r *result) count(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventProjectileFired:
			r.Shots++
		case sim.EventFormationBounced:
			r.Bounces++
		}
	}
}
