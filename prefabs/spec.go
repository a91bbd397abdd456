package prefabs

import (
	"fmt"
	"image"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Standard animation slots. Board previews use StandardSouth.
const (
	StandardNorth = iota
	StandardEast
	StandardSouth
	StandardWest
)

// PreviewFrame is the frame of the south animation shown on the board.
const PreviewFrame = 2

func LoadSpec[T any](fsys fs.FS, filename string) (T, error) {
	var zero T
	data, err := fs.ReadFile(fsys, cleanPrefabPath(filename))
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SpriteSpec struct {
	Name       string             `yaml:"name"`
	Sheet      string             `yaml:"sheet"`
	FrameW     int                `yaml:"frame_w"`
	FrameH     int                `yaml:"frame_h"`
	Animations []AnimationDefSpec `yaml:"animations"`
}

type AnimationDefSpec struct {
	Name       string  `yaml:"name"`
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

// LoadSpriteSpec reads <name>.yaml and checks that it can be sliced.
func LoadSpriteSpec(fsys fs.FS, name string) (SpriteSpec, error) {
	spec, err := LoadSpec[SpriteSpec](fsys, name+".yaml")
	if err != nil {
		return SpriteSpec{}, err
	}
	if spec.Sheet == "" {
		return SpriteSpec{}, fmt.Errorf("prefabs: sprite %s has no sheet", name)
	}
	if spec.FrameW <= 0 || spec.FrameH <= 0 {
		return SpriteSpec{}, fmt.Errorf("prefabs: sprite %s has invalid frame size %dx%d", name, spec.FrameW, spec.FrameH)
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

// FrameRect locates one frame on the sheet.
func (s SpriteSpec) FrameRect(animation, frame int) (image.Rectangle, error) {
	if animation < 0 || animation >= len(s.Animations) {
		return image.Rectangle{}, fmt.Errorf("prefabs: sprite %s has no animation %d", s.Name, animation)
	}
	def := s.Animations[animation]
	if frame < 0 || frame >= def.FrameCount {
		return image.Rectangle{}, fmt.Errorf("prefabs: sprite %s animation %s has no frame %d", s.Name, def.Name, frame)
	}
	x := (def.ColStart + frame) * s.FrameW
	y := def.Row * s.FrameH
	return image.Rect(x, y, x+s.FrameW, y+s.FrameH), nil
}
