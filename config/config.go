// Package config loads the editor's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/raster"
	"github.com/milk9111/rpgboard/render"
)

var ErrInvalid = errors.New("config: invalid")

const (
	DefaultWidth     = 20
	DefaultHeight    = 15
	DefaultUndoDepth = 100
)

type Config struct {
	// Empty directories fall back to the embedded assets and prefabs.
	AssetsDir      string        `yaml:"assets_dir"`
	PrefabsDir     string        `yaml:"prefabs_dir"`
	BoardsDir      string        `yaml:"boards_dir"`
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	SourceTileSize int           `yaml:"source_tile_size"`
	UndoDepth      int           `yaml:"undo_depth"`
	Snap           bool          `yaml:"snap"`
	Overlay        OverlayConfig `yaml:"overlay"`
	Palette        PaletteConfig `yaml:"palette"`
}

type OverlayConfig struct {
	Grid        bool `yaml:"grid"`
	Coordinates bool `yaml:"coordinates"`
	Vectors     bool `yaml:"vectors"`
	Programs    bool `yaml:"programs"`
	Sprites     bool `yaml:"sprites"`
	Start       bool `yaml:"start"`
}

// PaletteConfig overrides compositor colors. Unset entries keep the
// default palette.
type PaletteConfig struct {
	Background  *Color           `yaml:"background"`
	Grid        *Color           `yaml:"grid"`
	Coordinates *Color           `yaml:"coordinates"`
	Start       *Color           `yaml:"start"`
	Selection   *Color           `yaml:"selection"`
	Cursor      *Color           `yaml:"cursor"`
	MissingTile *Color           `yaml:"missing_tile"`
	Placeholder *Color           `yaml:"placeholder"`
	Program     *Color           `yaml:"program"`
	Vectors     map[string]Color `yaml:"vectors"`
}

// Color is a YAML scalar holding a color name or "#rrggbb[aa]".
type Color struct {
	color.RGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	rgba, err := raster.ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.RGBA = rgba
	return nil
}

func Default() Config {
	opts := render.DefaultOptions()
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		UndoDepth: DefaultUndoDepth,
		Snap:      true,
		Overlay: OverlayConfig{
			Grid:        opts.ShowGrid,
			Coordinates: opts.ShowCoordinates,
			Vectors:     opts.ShowVectors,
			Programs:    opts.ShowPrograms,
			Sprites:     opts.ShowSprites,
			Start:       opts.ShowStart,
		},
	}
}

// Load reads the config file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: board size %dx%d", ErrInvalid, c.Width, c.Height))
	}
	if c.UndoDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: undo_depth %d", ErrInvalid, c.UndoDepth))
	}
	if c.SourceTileSize < 0 {
		errs = append(errs, fmt.Errorf("%w: source_tile_size %d", ErrInvalid, c.SourceTileSize))
	}
	for name := range c.Palette.Vectors {
		if _, err := board.ParseTileType(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: palette vector %q", ErrInvalid, name))
		}
	}
	return errors.Join(errs...)
}

func (c Config) RenderOptions() render.Options {
	return render.Options{
		ShowGrid:        c.Overlay.Grid,
		ShowCoordinates: c.Overlay.Coordinates,
		ShowVectors:     c.Overlay.Vectors,
		ShowPrograms:    c.Overlay.Programs,
		ShowSprites:     c.Overlay.Sprites,
		ShowStart:       c.Overlay.Start,
	}
}

// RenderPalette applies the configured overrides to the default palette.
func (c Config) RenderPalette() render.Palette {
	p := render.DefaultPalette()
	set := func(dst *color.RGBA, src *Color) {
		if src != nil {
			*dst = src.RGBA
		}
	}
	set(&p.Background, c.Palette.Background)
	set(&p.Grid, c.Palette.Grid)
	set(&p.Coordinates, c.Palette.Coordinates)
	set(&p.Start, c.Palette.Start)
	set(&p.Selection, c.Palette.Selection)
	set(&p.Cursor, c.Palette.Cursor)
	set(&p.MissingTile, c.Palette.MissingTile)
	set(&p.Placeholder, c.Palette.Placeholder)
	set(&p.Program, c.Palette.Program)
	for name, col := range c.Palette.Vectors {
		if t, err := board.ParseTileType(name); err == nil {
			p.Vectors[t] = col.RGBA
		}
	}
	return p
}
