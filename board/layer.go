package board

import (
	"fmt"
	"image"
)

// Layer is one z-ordered slot of a board. It refers to its board by ID only.
type Layer struct {
	Name     string
	BoardID  uint64
	Tiles    [][]*Tile
	Vectors  []*Vector
	Programs []*Program
	Sprites  []*Sprite
}

func newLayer(boardID uint64, name string, width, height int) *Layer {
	return &Layer{
		Name:    name,
		BoardID: boardID,
		Tiles:   makeGrid(width, height),
	}
}

func makeGrid(width, height int) [][]*Tile {
	grid := make([][]*Tile, height)
	for y := range grid {
		grid[y] = make([]*Tile, width)
	}
	return grid
}

func (l *Layer) Width() int {
	if len(l.Tiles) == 0 {
		return 0
	}
	return len(l.Tiles[0])
}

func (l *Layer) Height() int {
	return len(l.Tiles)
}

func (l *Layer) inBounds(x, y int) bool {
	return y >= 0 && y < len(l.Tiles) && x >= 0 && x < len(l.Tiles[y])
}

func (l *Layer) TileAt(x, y int) (*Tile, error) {
	if !l.inBounds(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, l.Width(), l.Height())
	}
	return l.Tiles[y][x], nil
}

// Region copies the tiles of the inclusive range r.Min..r.Max, so the result
// is (r.Dx()+1) columns by (r.Dy()+1) rows indexed [row][col].
func (l *Layer) Region(r image.Rectangle) ([][]*Tile, error) {
	r = r.Canon()
	if !l.inBounds(r.Min.X, r.Min.Y) || !l.inBounds(r.Max.X, r.Max.Y) {
		return nil, fmt.Errorf("%w: region %v outside %dx%d", ErrOutOfBounds, r, l.Width(), l.Height())
	}
	out := make([][]*Tile, r.Dy()+1)
	for y := range out {
		out[y] = make([]*Tile, r.Dx()+1)
		copy(out[y], l.Tiles[r.Min.Y+y][r.Min.X:r.Max.X+1])
	}
	return out, nil
}

func (l *Layer) resize(width, height int) {
	grid := makeGrid(width, height)
	for y := 0; y < height && y < len(l.Tiles); y++ {
		copy(grid[y], l.Tiles[y])
	}
	l.Tiles = grid
}

func (l *Layer) AddVector(v *Vector) {
	l.Vectors = append(l.Vectors, v)
}

// RemoveVector drops v by identity and reports whether it was present.
func (l *Layer) RemoveVector(v *Vector) bool {
	for i, cur := range l.Vectors {
		if cur == v {
			l.Vectors = append(l.Vectors[:i], l.Vectors[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Layer) AddProgram(p *Program) {
	l.Programs = append(l.Programs, p)
}

func (l *Layer) RemoveProgram(p *Program) bool {
	for i, cur := range l.Programs {
		if cur == p {
			l.Programs = append(l.Programs[:i], l.Programs[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Layer) AddSprite(s *Sprite) {
	l.Sprites = append(l.Sprites, s)
}

func (l *Layer) RemoveSprite(s *Sprite) bool {
	for i, cur := range l.Sprites {
		if cur == s {
			l.Sprites = append(l.Sprites[:i], l.Sprites[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Layer) clone(boardID uint64) *Layer {
	c := &Layer{Name: l.Name, BoardID: boardID, Tiles: makeGrid(l.Width(), l.Height())}
	for y := range l.Tiles {
		copy(c.Tiles[y], l.Tiles[y])
	}
	for _, v := range l.Vectors {
		c.Vectors = append(c.Vectors, v.Clone())
	}
	for _, p := range l.Programs {
		c.Programs = append(c.Programs, p.Clone())
	}
	for _, s := range l.Sprites {
		c.Sprites = append(c.Sprites, s.Clone())
	}
	return c
}
