package board

import (
	"fmt"
	"image"
	"strings"
)

// TileType is the gameplay meaning of a vector.
type TileType int

const (
	TileSolid TileType = iota
	TileUnder
	TileStairs
	TileWaypoint
	TileNone
)

func (t TileType) String() string {
	switch t {
	case TileSolid:
		return "solid"
	case TileUnder:
		return "under"
	case TileStairs:
		return "stairs"
	case TileWaypoint:
		return "waypoint"
	case TileNone:
		return "none"
	default:
		return fmt.Sprintf("TileType(%d)", int(t))
	}
}

func ParseTileType(s string) (TileType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solid":
		return TileSolid, nil
	case "under":
		return TileUnder, nil
	case "stairs":
		return TileStairs, nil
	case "waypoint":
		return TileWaypoint, nil
	case "none", "":
		return TileNone, nil
	}
	return TileNone, fmt.Errorf("board: unknown tile type %q", s)
}

// Vector is a polyline in board pixels. Closed vectors form a polygon.
type Vector struct {
	Points   []image.Point
	Type     TileType
	Closed   bool
	Selected bool
}

func NewVector(t TileType) *Vector {
	return &Vector{Type: t}
}

func (v *Vector) AddPoint(x, y int) {
	v.Points = append(v.Points, image.Pt(x, y))
}

func (v *Vector) PointCount() int {
	return len(v.Points)
}

// Segments returns consecutive point pairs, plus the closing pair when the
// vector is closed.
func (v *Vector) Segments() [][2]image.Point {
	n := len(v.Points)
	if n < 2 {
		return nil
	}
	segs := make([][2]image.Point, 0, n)
	for i := 0; i < n-1; i++ {
		segs = append(segs, [2]image.Point{v.Points[i], v.Points[i+1]})
	}
	if v.Closed {
		segs = append(segs, [2]image.Point{v.Points[n-1], v.Points[0]})
	}
	return segs
}

func (v *Vector) Clone() *Vector {
	c := *v
	c.Points = append([]image.Point(nil), v.Points...)
	return &c
}

// Program is a trigger region: a vector with a script attached.
type Program struct {
	Vector *Vector
	Script string
}

func NewProgram(script string) *Program {
	return &Program{Vector: NewVector(TileNone), Script: script}
}

func (p *Program) Clone() *Program {
	return &Program{Vector: p.Vector.Clone(), Script: p.Script}
}

// Sprite is a placed object at a tile position.
type Sprite struct {
	Name     string
	X, Y     float64
	Selected bool
}

func (s *Sprite) Clone() *Sprite {
	c := *s
	return &c
}
