package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/invaders/ecs"
	"github.com/milk9111/invaders/ecs/component"
)

func TestTTLSystemFadesAndDestroys(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sprite := &component.Sprite{}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 4, Total: 4}); err != nil {
		t.Fatal(err)
	}

	sys := NewTTLSystem()
	sys.Update(w)
	if sprite.Fade != 0.25 {
		t.Fatalf("expected fade 0.25, got %v", sprite.Fade)
	}
	sys.Update(w)
	sys.Update(w)
	if !w.IsAlive(e) || sprite.Fade != 0.75 {
		t.Fatalf("expected live entity at fade 0.75, got alive=%v fade=%v", w.IsAlive(e), sprite.Fade)
	}
	sys.Update(w)
	if w.IsAlive(e) {
		t.Fatalf("entity should be destroyed when ttl runs out")
	}
}

func TestTTLSystemReleasesAudio(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	a := &component.Audio{
		Names:   []string{"explosion"},
		Players: []*audio.Player{nil},
		Volume:  []float64{1},
		Play:    []bool{false},
	}
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), a); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 2, Total: 2}); err != nil {
		t.Fatal(err)
	}

	sys := NewTTLSystem()
	sys.Update(w)
	if len(a.Players) != 1 {
		t.Fatalf("audio released before the ttl ran out")
	}
	sys.Update(w)
	if w.IsAlive(e) || a.Players != nil || a.Request("explosion") {
		t.Fatalf("expected destroyed entity with released audio, got alive=%v players=%v", w.IsAlive(e), a.Players)
	}
}

func TestAudioSystemClearsRequests(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	a := &component.Audio{
		Names:   []string{"fire"},
		Players: []*audio.Player{nil},
		Volume:  []float64{1},
		Play:    []bool{false},
	}
	if err := ecs.Add(w, e, component.AudioComponent.Kind(), a); err != nil {
		t.Fatal(err)
	}
	if a.Request("missing") {
		t.Fatalf("request for unknown cue should fail")
	}
	if !a.Request("fire") {
		t.Fatalf("request for fire cue failed")
	}

	sys := NewAudioSystem()
	sys.SetMuted(true)
	sys.Update(w)
	if a.Play[0] {
		t.Fatalf("audio system left the cue pending")
	}
}

func TestRenderDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	layers := []int{3, 1, 2, 1}
	var ents []ecs.Entity
	for _, l := range layers {
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
		_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{})
		_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: l})
		ents = append(ents, e)
	}

	got := drawOrder(w)
	want := []ecs.Entity{ents[1], ents[3], ents[2], ents[0]}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw order %v, want %v", got, want)
		}
	}
}
