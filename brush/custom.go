package brush

import (
	"image"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/raster"
)

// CustomBrush stamps a captured block of tiles. Rows are indexed [y][x]; nil
// cells leave the board untouched.
type CustomBrush struct {
	binding
	tiles [][]*board.Tile
}

// NewCustomBrush copies tiles into a rectangular block. Short rows are padded
// with nil cells to the widest row.
func NewCustomBrush(tiles [][]*board.Tile) *CustomBrush {
	width := 0
	for _, row := range tiles {
		width = max(width, len(row))
	}
	if width == 0 {
		return &CustomBrush{}
	}
	block := make([][]*board.Tile, len(tiles))
	for y, row := range tiles {
		block[y] = make([]*board.Tile, width)
		copy(block[y], row)
	}
	return &CustomBrush{tiles: block}
}

func (c *CustomBrush) Tiles() [][]*board.Tile {
	return c.tiles
}

// DoPaint stamps the block centered on x, y, or repeats it across the
// selection starting at its top-left cell. Cells off the board are clipped.
func (c *CustomBrush) DoPaint(x, y int, selection *image.Rectangle) error {
	b, layer, err := c.target()
	if err != nil {
		return err
	}
	size := c.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil
	}
	var cells []board.Cell
	if selection != nil {
		sel := selection.Canon()
		for _, p := range selectionCells(sel) {
			t := c.tiles[(p.Y-sel.Min.Y)%size.Y][(p.X-sel.Min.X)%size.X]
			if t != nil {
				cells = append(cells, board.Cell{X: p.X, Y: p.Y, Tile: t})
			}
		}
	} else {
		x0, y0 := x-size.X/2, y-size.Y/2
		for dy, row := range c.tiles {
			for dx, t := range row {
				if t != nil {
					cells = append(cells, board.Cell{X: x0 + dx, Y: y0 + dy, Tile: t})
				}
			}
		}
	}
	if len(cells) == 0 {
		return nil
	}
	return commit(b, layer, cells)
}

func (c *CustomBrush) DrawPreview(dst *image.RGBA, cursor image.Point) {
	size := c.Bounds().Size()
	tx, ty := common.PixelToTile(cursor.X, cursor.Y)
	x0, y0 := tx-size.X/2, ty-size.Y/2
	for dy, row := range c.tiles {
		for dx, t := range row {
			if t == nil || t.Image() == nil {
				continue
			}
			px, py := common.TileToPixel(x0+dx, y0+dy)
			raster.Blend(dst, image.Rect(px, py, px+common.TileSize, py+common.TileSize), t.Image(), ghostAlpha)
		}
	}
}

func (c *CustomBrush) Bounds() image.Rectangle {
	if len(c.tiles) == 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, len(c.tiles[0]), len(c.tiles))
}

func (c *CustomBrush) Equal(other Brush) bool {
	o, ok := other.(*CustomBrush)
	if !ok || len(o.tiles) != len(c.tiles) {
		return false
	}
	for y := range c.tiles {
		if len(o.tiles[y]) != len(c.tiles[y]) {
			return false
		}
		for x := range c.tiles[y] {
			if o.tiles[y][x] != c.tiles[y][x] {
				return false
			}
		}
	}
	return true
}
