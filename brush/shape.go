package brush

import (
	"image"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/raster"
)

const ghostAlpha = 0.5

// ShapeBrush stamps one tile over a rectangle centered on the cursor. With a
// nil tile it erases.
type ShapeBrush struct {
	binding
	tile  *board.Tile
	shape image.Rectangle
}

func NewShapeBrush(tile *board.Tile, w, h int) *ShapeBrush {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &ShapeBrush{tile: tile, shape: image.Rect(0, 0, w, h)}
}

// NewEraser clears cells instead of painting them.
func NewEraser(w, h int) *ShapeBrush {
	return NewShapeBrush(nil, w, h)
}

func (s *ShapeBrush) Tile() *board.Tile {
	return s.tile
}

func (s *ShapeBrush) SetTile(t *board.Tile) {
	s.tile = t
}

func (s *ShapeBrush) DoPaint(x, y int, selection *image.Rectangle) error {
	b, layer, err := s.target()
	if err != nil {
		return err
	}
	var cells []board.Cell
	if selection != nil {
		for _, p := range selectionCells(*selection) {
			cells = append(cells, board.Cell{X: p.X, Y: p.Y, Tile: s.tile})
		}
		return commit(b, layer, cells)
	}
	x0 := x - s.shape.Dx()/2
	y0 := y - s.shape.Dy()/2
	for dy := 0; dy < s.shape.Dy(); dy++ {
		for dx := 0; dx < s.shape.Dx(); dx++ {
			cells = append(cells, board.Cell{X: x0 + dx, Y: y0 + dy, Tile: s.tile})
		}
	}
	return commit(b, layer, cells)
}

func (s *ShapeBrush) DrawPreview(dst *image.RGBA, cursor image.Point) {
	if s.tile == nil || s.tile.Image() == nil {
		return
	}
	tx, ty := common.PixelToTile(cursor.X, cursor.Y)
	x0 := tx - s.shape.Dx()/2
	y0 := ty - s.shape.Dy()/2
	for dy := 0; dy < s.shape.Dy(); dy++ {
		for dx := 0; dx < s.shape.Dx(); dx++ {
			px, py := common.TileToPixel(x0+dx, y0+dy)
			r := image.Rect(px, py, px+common.TileSize, py+common.TileSize)
			raster.Blend(dst, r, s.tile.Image(), ghostAlpha)
		}
	}
}

func (s *ShapeBrush) Bounds() image.Rectangle {
	return s.shape
}

func (s *ShapeBrush) Equal(other Brush) bool {
	o, ok := other.(*ShapeBrush)
	return ok && o.tile == s.tile && o.shape == s.shape
}
