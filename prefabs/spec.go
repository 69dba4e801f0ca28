package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/invaders/sim"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top-level tuning file (game.yaml).
type GameSpec struct {
	Name         string         `yaml:"name"`
	Grid         GridSpec       `yaml:"grid"`
	Formation    FormationSpec  `yaml:"formation"`
	Projectile   ProjectileSpec `yaml:"projectile"`
	Player       PlayerSpec     `yaml:"player"`
	Collision    CollisionSpec  `yaml:"collision"`
	View         ViewSpec       `yaml:"view"`
	Prefabs      PrefabSet      `yaml:"prefabs"`
	DialogScript string         `yaml:"dialog_script"`
}

type GridSpec struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Spacing float64 `yaml:"spacing"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type FormationSpec struct {
	Speed float64 `yaml:"speed"`
	Bound float64 `yaml:"bound"`
	Drop  float64 `yaml:"drop"`
}

type ProjectileSpec struct {
	Step    float64 `yaml:"step"`
	Top     float64 `yaml:"top"`
	OffsetY float64 `yaml:"offset_y"`
}

type PlayerSpec struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Bound         float64 `yaml:"bound"`
	Step          float64 `yaml:"step"`
	TouchHalfSpan float64 `yaml:"touch_half_span"`
}

type CollisionSpec struct {
	HitRadius float64 `yaml:"hit_radius"`
	Points    int     `yaml:"points"`
}

// ViewSpec maps world units onto the base resolution. World y grows upward,
// screen y downward.
type ViewSpec struct {
	PixelsPerUnit float64   `yaml:"pixels_per_unit"`
	OriginX       float64   `yaml:"origin_x"`
	OriginY       float64   `yaml:"origin_y"`
	Background    YAMLColor `yaml:"background"`
}

type PrefabSet struct {
	Player     string `yaml:"player"`
	Enemy      string `yaml:"enemy"`
	Projectile string `yaml:"projectile"`
	Explosion  string `yaml:"explosion"`
}

// Config converts the tuning sections into a simulation config.
func (g GameSpec) Config() sim.Config {
	return sim.Config{
		Rows:         g.Grid.Rows,
		Cols:         g.Grid.Cols,
		EnemySpacing: g.Grid.Spacing,
		EnemyOriginX: g.Grid.OriginX,
		EnemyOriginY: g.Grid.OriginY,

		FormationSpeed: g.Formation.Speed,
		FormationBound: g.Formation.Bound,
		DropStep:       g.Formation.Drop,

		ProjectileStep:    g.Projectile.Step,
		ProjectileTop:     g.Projectile.Top,
		ProjectileOffsetY: g.Projectile.OffsetY,

		PlayerX:       g.Player.X,
		PlayerY:       g.Player.Y,
		PlayerBound:   g.Player.Bound,
		PlayerStep:    g.Player.Step,
		TouchHalfSpan: g.Player.TouchHalfSpan,

		HitRadius:      g.Collision.HitRadius,
		PointsPerEnemy: g.Collision.Points,
	}
}

// LoadGameSpec loads and validates a game tuning file.
func LoadGameSpec(filename string) (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Config().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	if spec.View.PixelsPerUnit <= 0 {
		return nil, fmt.Errorf("prefabs: %s: view.pixels_per_unit must be positive", filename)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
