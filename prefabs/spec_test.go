package prefabs

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/invaders/sim"
)

func TestLoadGameSpecMatchesDefaults(t *testing.T) {
	spec, err := LoadGameSpec("game.yaml")
	if err != nil {
		t.Fatalf("load game.yaml: %v", err)
	}
	if got, want := spec.Config(), sim.DefaultConfig(); got != want {
		t.Fatalf("game.yaml drifted from defaults:\n got %+v\nwant %+v", got, want)
	}
	if spec.View.PixelsPerUnit <= 0 {
		t.Fatalf("expected positive pixels_per_unit, got %v", spec.View.PixelsPerUnit)
	}
	if spec.View.Background.Color == nil {
		t.Fatalf("expected background colour")
	}
}

func TestEntityPrefabsDeclareComponents(t *testing.T) {
	spec, err := LoadGameSpec("game.yaml")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{spec.Prefabs.Player, spec.Prefabs.Enemy, spec.Prefabs.Projectile, spec.Prefabs.Explosion} {
		t.Run(name, func(t *testing.T) {
			es, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if len(es.Components) == 0 {
				t.Fatalf("%s has no components", name)
			}
			if _, ok := es.Components["sprite"]; !ok {
				t.Fatalf("%s has no sprite", name)
			}
		})
	}
}

func TestDecodeSpriteSpec(t *testing.T) {
	raw := map[string]any{
		"shape":  "circle",
		"width":  5,
		"height": 6,
		"color":  "#ffff0080",
	}
	spec, err := DecodeComponentSpec[SpriteComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Shape != "circle" || spec.Width != 5 || spec.Height != 6 {
		t.Fatalf("unexpected spec %+v", spec)
	}
	want := color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0x80}
	if spec.Color.Color != want {
		t.Fatalf("expected %v, got %v", want, spec.Color.Color)
	}

	if _, err := DecodeComponentSpec[SpriteComponentSpec](map[string]any{"color": "#fff"}); err == nil {
		t.Fatalf("expected error for short colour")
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })

	embedded, err := Load("game.yaml")
	if err != nil {
		t.Fatal(err)
	}
	override := bytes.Replace(embedded, []byte("name: invaders"), []byte("name: override"), 1)
	if err := os.WriteFile(filepath.Join(dir, "game.yaml"), override, 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadSpec[GameSpec]("prefabs/game.yaml")
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if spec.Name != "override" {
		t.Fatalf("expected disk copy to win, got name %q", spec.Name)
	}
	if src := Source("game.yaml"); src != "disk" {
		t.Fatalf("expected disk source, got %q", src)
	}
	if src := Source("enemy.yaml"); src != "embedded" {
		t.Fatalf("expected embedded source, got %q", src)
	}
	if src := Source("nope.yaml"); src != "" {
		t.Fatalf("expected no source, got %q", src)
	}
}

func TestLoadGameSpecRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })

	bad := []byte("grid:\n  rows: 0\n  cols: 8\n")
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), bad, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGameSpec("bad.yaml"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := LoadGameSpec("missing.yaml"); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"dialog.tengo":                 "scripts/dialog.tengo",
		"scripts/dialog.tengo":         "scripts/dialog.tengo",
		"prefabs/scripts/dialog.tengo": "scripts/dialog.tengo",
		"":                             "",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}

	if b, err := LoadScript("dialog.tengo"); err != nil || len(b) == 0 {
		t.Fatalf("expected embedded dialog script, err=%v", err)
	}
}
