package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec lists an entity's components by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SpriteComponentSpec describes a generated shape; there are no image files.
type SpriteComponentSpec struct {
	Shape              string    `yaml:"shape"`
	Width              int       `yaml:"width"`
	Height             int       `yaml:"height"`
	Color              YAMLColor `yaml:"color"`
	OriginX            float64   `yaml:"origin_x"`
	OriginY            float64   `yaml:"origin_y"`
	CenterOriginIfZero bool      `yaml:"center_origin_if_zero"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}

type ToneSpec struct {
	Wave       string  `yaml:"wave"`
	Freq       float64 `yaml:"freq"`
	EndFreq    float64 `yaml:"end_freq"`
	DurationMS int     `yaml:"duration_ms"`
}

type AudioClipSpec struct {
	Name   string   `yaml:"name"`
	Tone   ToneSpec `yaml:"tone"`
	Volume float64  `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}
