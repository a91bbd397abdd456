package render

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/milk9111/rpgboard/board"
)

// Palette holds every color the compositor draws with.
type Palette struct {
	Background  color.RGBA
	Grid        color.RGBA
	Coordinates color.RGBA
	Start       color.RGBA
	Selection   color.RGBA
	Cursor      color.RGBA
	MissingTile color.RGBA
	Placeholder color.RGBA
	Program     color.RGBA
	Vectors     map[board.TileType]color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background:  color.RGBA{R: 0x3c, G: 0x3c, B: 0x3c, A: 0xff},
		Grid:        colornames.Black,
		Coordinates: colornames.White,
		Start:       colornames.Cyan,
		Selection:   color.RGBA{R: 100, G: 100, B: 255, A: 255},
		Cursor:      color.RGBA{R: 100, G: 100, B: 255, A: 255},
		MissingTile: color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff},
		Placeholder: colornames.White,
		Program:     colornames.Yellow,
		Vectors: map[board.TileType]color.RGBA{
			board.TileSolid:    colornames.White,
			board.TileUnder:    colornames.Lime,
			board.TileStairs:   colornames.Magenta,
			board.TileWaypoint: colornames.Red,
			board.TileNone:     colornames.Gray,
		},
	}
}

// VectorColor is the line color for vectors of type t.
func (p Palette) VectorColor(t board.TileType) color.RGBA {
	if c, ok := p.Vectors[t]; ok {
		return c
	}
	return p.Vectors[board.TileNone]
}
