package main

import (
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/editor"
	"github.com/milk9111/rpgboard/render"
)

// paletteCols is how many tiles the palette shows per row.
const paletteCols = 7

// TilePalette shows one tileset and lets the user pick a tile or drag out a
// rectangle of tiles for a stamp.
type TilePalette struct {
	set    *board.TileSet
	sheet  *ebiten.Image
	origin image.Point

	dragging bool
	from, to image.Point
	picked   *image.Rectangle
}

func NewTilePalette(origin image.Point) *TilePalette {
	return &TilePalette{origin: origin}
}

func (p *TilePalette) TileSet() *board.TileSet {
	return p.set
}

// SetTileSet shows ts. Calling it again with the same set rebuilds the sheet
// after a reload.
func (p *TilePalette) SetTileSet(ts *board.TileSet) {
	if ts != p.set {
		p.picked = nil
	}
	p.set = ts
	tiles := ts.Tiles()
	rows := (len(tiles) + paletteCols - 1) / paletteCols
	if rows == 0 {
		p.sheet = nil
		return
	}
	rgba := image.NewRGBA(image.Rect(0, 0, paletteCols*common.TileSize, rows*common.TileSize))
	for i, t := range tiles {
		if t.Image() == nil {
			continue
		}
		r := cellRect(i%paletteCols, i/paletteCols)
		draw.Draw(rgba, r, t.Image(), t.Image().Bounds().Min, draw.Over)
	}
	p.sheet = ebiten.NewImageFromImage(rgba)
}

func cellRect(col, row int) image.Rectangle {
	x, y := common.TileToPixel(col, row)
	return image.Rect(x, y, x+common.TileSize, y+common.TileSize)
}

// Contains reports whether screen point x, y is over the palette.
func (p *TilePalette) Contains(x, y int) bool {
	if p.sheet == nil {
		return false
	}
	b := p.sheet.Bounds().Add(p.origin)
	return image.Pt(x, y).In(b)
}

func (p *TilePalette) cell(x, y int) image.Point {
	col, row := common.PixelToTile(x-p.origin.X, y-p.origin.Y)
	rows := (p.set.Len() + paletteCols - 1) / paletteCols
	return image.Pt(
		int(common.Clamp(float32(col), 0, paletteCols-1)),
		int(common.Clamp(float32(row), 0, float32(rows-1))),
	)
}

// Press, Drag and Release follow the mouse. Release hands the picked tiles
// to the editor context and reports whether a pick happened.
func (p *TilePalette) Press(x, y int) {
	if !p.Contains(x, y) {
		return
	}
	p.dragging = true
	p.from = p.cell(x, y)
	p.to = p.from
}

func (p *TilePalette) Drag(x, y int) {
	if p.dragging {
		p.to = p.cell(x, y)
	}
}

func (p *TilePalette) Release(ctx *editor.Context) bool {
	if !p.dragging {
		return false
	}
	p.dragging = false
	r := image.Rectangle{Min: p.from, Max: p.to}.Canon()
	p.picked = &r

	var tiles [][]*board.Tile
	for row := r.Min.Y; row <= r.Max.Y; row++ {
		var line []*board.Tile
		for col := r.Min.X; col <= r.Max.X; col++ {
			t, _ := p.set.Tile(row*paletteCols + col)
			line = append(line, t)
		}
		tiles = append(tiles, line)
	}
	ctx.SelectRegion(tiles)
	return true
}

func (p *TilePalette) Draw(screen *ebiten.Image, pal render.Palette) {
	if p.sheet == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(p.origin.X), float64(p.origin.Y))
	screen.DrawImage(p.sheet, op)

	sel := p.picked
	if p.dragging {
		r := image.Rectangle{Min: p.from, Max: p.to}.Canon()
		sel = &r
	}
	if sel == nil {
		return
	}
	r := render.SelectionRect(*sel).Add(p.origin)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, pal.Selection, false)
}
