package board

import (
	"fmt"
	"image"

	"github.com/milk9111/rpgboard/common"
)

// Tile is one 32x32 cell image. Grid cells compare tiles by pointer, so the
// same *Tile may be placed any number of times.
type Tile struct {
	TileSet string
	Index   int
	img     image.Image
}

func NewTile(tileSet string, index int, img image.Image) *Tile {
	return &Tile{TileSet: tileSet, Index: index, img: img}
}

// Image returns the tile's pixels, or nil if the source could not be resolved.
func (t *Tile) Image() image.Image {
	if t == nil {
		return nil
	}
	return t.img
}

// SetImage swaps the pixel source after the owning tileset was reloaded.
func (t *Tile) SetImage(img image.Image) {
	t.img = img
}

func (t *Tile) String() string {
	if t == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%s#%d", t.TileSet, t.Index)
}

// TileSet cuts a source image into row-major 32x32 tiles.
type TileSet struct {
	Name  string
	tiles []*Tile
}

func NewTileSet(name string, img image.Image) *TileSet {
	ts := &TileSet{Name: name}
	if img == nil {
		return ts
	}
	b := img.Bounds()
	cols := b.Dx() / common.TileSize
	rows := b.Dy() / common.TileSize
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			ts.tiles = append(ts.tiles, NewTile(name, len(ts.tiles), subImage(img, x, y)))
		}
	}
	return ts
}

func (ts *TileSet) Len() int {
	return len(ts.tiles)
}

func (ts *TileSet) Tile(i int) (*Tile, error) {
	if i < 0 || i >= len(ts.tiles) {
		return nil, fmt.Errorf("%w: tileset %s index %d", ErrOutOfBounds, ts.Name, i)
	}
	return ts.tiles[i], nil
}

// Placeholder returns tile i, growing the set with image-less tiles when the
// source has not been loaded yet. A later Reload fills them in place.
func (ts *TileSet) Placeholder(i int) *Tile {
	for len(ts.tiles) <= i {
		ts.tiles = append(ts.tiles, NewTile(ts.Name, len(ts.tiles), nil))
	}
	return ts.tiles[i]
}

func (ts *TileSet) Tiles() []*Tile {
	return append([]*Tile(nil), ts.tiles...)
}

// Reload replaces the pixels of every tile in place so boards that reference
// them pick up the new image without re-resolving.
func (ts *TileSet) Reload(img image.Image) {
	for _, t := range ts.tiles {
		t.SetImage(nil)
	}
	if img == nil {
		return
	}
	b := img.Bounds()
	cols := b.Dx() / common.TileSize
	rows := b.Dy() / common.TileSize
	if cols == 0 {
		return
	}
	for i, t := range ts.tiles {
		x, y := i%cols, i/cols
		if y >= rows {
			break
		}
		t.SetImage(subImage(img, x, y))
	}
	for i := len(ts.tiles); i < cols*rows; i++ {
		ts.tiles = append(ts.tiles, NewTile(ts.Name, i, subImage(img, i%cols, i/cols)))
	}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func subImage(img image.Image, tx, ty int) image.Image {
	b := img.Bounds()
	r := image.Rect(
		b.Min.X+tx*common.TileSize,
		b.Min.Y+ty*common.TileSize,
		b.Min.X+(tx+1)*common.TileSize,
		b.Min.Y+(ty+1)*common.TileSize,
	)
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	return img
}
