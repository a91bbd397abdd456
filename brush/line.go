package brush

import (
	"image"
	"image/color"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/raster"
)

// LineBrush paints straight runs of one tile between successive clicks until
// the gesture is finished.
type LineBrush struct {
	binding
	tile     *board.Tile
	anchor   image.Point
	drawing  bool
	guideCol color.RGBA
}

func NewLineBrush(tile *board.Tile) *LineBrush {
	return &LineBrush{tile: tile, guideCol: color.RGBA{R: 100, G: 100, B: 255, A: 255}}
}

func (lb *LineBrush) Tile() *board.Tile {
	return lb.tile
}

func (lb *LineBrush) SetTile(t *board.Tile) {
	lb.tile = t
}

// DoPaint anchors the first click and joins every later click to the
// previous one. The selection is ignored.
func (lb *LineBrush) DoPaint(x, y int, _ *image.Rectangle) error {
	b, layer, err := lb.target()
	if err != nil {
		return err
	}
	from := image.Pt(x, y)
	if lb.drawing {
		from = lb.anchor
	}
	var cells []board.Cell
	for _, p := range BresenhamLine(from.X, from.Y, x, y) {
		cells = append(cells, board.Cell{X: p.X, Y: p.Y, Tile: lb.tile})
	}
	if err := commit(b, layer, cells); err != nil {
		return err
	}
	lb.anchor = image.Pt(x, y)
	lb.drawing = true
	return nil
}

func (lb *LineBrush) Drawing() bool {
	return lb.drawing
}

func (lb *LineBrush) Finish() {
	lb.drawing = false
}

func (lb *LineBrush) DrawPreview(dst *image.RGBA, cursor image.Point) {
	if !lb.drawing {
		return
	}
	ax, ay := common.TileToPixel(lb.anchor.X, lb.anchor.Y)
	half := common.TileSize / 2
	raster.Line(dst, ax+half, ay+half, cursor.X, cursor.Y, lb.guideCol, 1)
}

func (lb *LineBrush) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1, 1)
}

func (lb *LineBrush) Equal(other Brush) bool {
	o, ok := other.(*LineBrush)
	return ok && o.tile == lb.tile
}

// BresenhamLine returns the tiles on the line from (x0,y0) to (x1,y1).
func BresenhamLine(x0, y0, x1, y1 int) []image.Point {
	var pts []image.Point
	dx := common.Abs(x1 - x0)
	dy := -common.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		pts = append(pts, image.Pt(x0, y0))
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
