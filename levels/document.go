package levels

import (
	"image"

	"github.com/milk9111/rpgboard/board"
)

// Document is the JSON form of a board. Tile references point into the
// Tilesets table so set names are stored once.
type Document struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	StartX   int         `json:"start_x"`
	StartY   int         `json:"start_y"`
	Tilesets []string    `json:"tilesets,omitempty"`
	Layers   []LayerData `json:"layers"`
}

type LayerData struct {
	Name string `json:"name"`
	// Tiles is row-major, Width*Height long. Empty layers may omit it.
	Tiles    []*TileRef    `json:"tiles,omitempty"`
	Vectors  []VectorData  `json:"vectors,omitempty"`
	Programs []ProgramData `json:"programs,omitempty"`
	Sprites  []SpriteData  `json:"sprites,omitempty"`
}

type TileRef struct {
	Set   int `json:"set"`
	Index int `json:"index"`
}

type VectorData struct {
	Points [][2]int `json:"points"`
	Type   string   `json:"type"`
	Closed bool     `json:"closed,omitempty"`
}

type ProgramData struct {
	Vector VectorData `json:"vector"`
	Script string     `json:"script"`
}

type SpriteData struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func vectorData(v *board.Vector) VectorData {
	d := VectorData{
		Points: make([][2]int, len(v.Points)),
		Type:   v.Type.String(),
		Closed: v.Closed,
	}
	for i, p := range v.Points {
		d.Points[i] = [2]int{p.X, p.Y}
	}
	return d
}

func (d VectorData) vector() (*board.Vector, error) {
	t, err := board.ParseTileType(d.Type)
	if err != nil {
		return nil, err
	}
	v := board.NewVector(t)
	v.Closed = d.Closed
	v.Points = make([]image.Point, len(d.Points))
	for i, p := range d.Points {
		v.Points[i] = image.Pt(p[0], p[1])
	}
	return v, nil
}
