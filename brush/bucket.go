package brush

import (
	"image"

	"github.com/milk9111/rpgboard/board"
)

// BucketBrush flood-fills the 4-connected region that shares the clicked
// cell's tile.
type BucketBrush struct {
	binding
	pour *board.Tile
}

func NewBucketBrush(pour *board.Tile) *BucketBrush {
	return &BucketBrush{pour: pour}
}

func (bb *BucketBrush) PourTile() *board.Tile {
	return bb.pour
}

func (bb *BucketBrush) SetPourTile(t *board.Tile) {
	bb.pour = t
}

// DoPaint fills from x, y. A selection confines the fill to its cells.
func (bb *BucketBrush) DoPaint(x, y int, selection *image.Rectangle) error {
	b, layer, err := bb.target()
	if err != nil {
		return err
	}
	l, err := b.Layer(layer)
	if err != nil {
		return err
	}
	target, err := l.TileAt(x, y)
	if err != nil {
		return err
	}
	if target == bb.pour {
		return nil
	}

	area := image.Rect(0, 0, b.Width(), b.Height())
	if selection != nil {
		sel := selection.Canon()
		area = area.Intersect(image.Rect(sel.Min.X, sel.Min.Y, sel.Max.X+1, sel.Max.Y+1))
	}
	if !image.Pt(x, y).In(area) {
		return nil
	}

	region := FloodRegion(l, image.Pt(x, y), area)
	cells := make([]board.Cell, len(region))
	for i, p := range region {
		cells[i] = board.Cell{X: p.X, Y: p.Y, Tile: bb.pour}
	}
	return b.SetTiles(layer, cells)
}

// FloodRegion returns every cell inside area reachable from start through
// edge neighbours holding the same tile. Each cell is visited once.
func FloodRegion(l *board.Layer, start image.Point, area image.Rectangle) []image.Point {
	if !start.In(area) {
		return nil
	}
	match := l.Tiles[start.Y][start.X]
	visited := make(map[image.Point]struct{})
	queue := []image.Point{start}
	visited[start] = struct{}{}
	var out []image.Point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)
		for _, d := range [...]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := p.Add(d)
			if !n.In(area) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			if l.Tiles[n.Y][n.X] != match {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return out
}

func (bb *BucketBrush) DrawPreview(*image.RGBA, image.Point) {}

func (bb *BucketBrush) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1, 1)
}

func (bb *BucketBrush) Equal(other Brush) bool {
	o, ok := other.(*BucketBrush)
	return ok && o.pour == bb.pour
}
