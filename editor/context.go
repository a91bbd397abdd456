package editor

import (
	"log"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/brush"
	"github.com/milk9111/rpgboard/render"
)

// Context is the state shared by every open editor: the active brush, the
// overlay toggles and the tile last picked from a palette.
type Context struct {
	// Options are the overlay toggles applied to every editor's view.
	Options render.Options
	// Snap rounds vector and program points to the nearest tile corner.
	Snap bool

	brush    brush.Brush
	owner    *Editor
	lastTile *board.Tile
	logger   *log.Logger
}

func NewContext() *Context {
	return &Context{
		Options: render.DefaultOptions(),
		Snap:    true,
		brush:   brush.NewShapeBrush(nil, 1, 1),
		logger:  log.Default(),
	}
}

// SetLogger replaces the logger used for brush switches and recovered
// paint failures.
func (c *Context) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

func (c *Context) Brush() brush.Brush {
	return c.brush
}

// SetBrush makes b the active brush. A vector, program or line the previous
// brush was still drawing is finished first.
func (c *Context) SetBrush(b brush.Brush) {
	if b == nil || b == c.brush {
		return
	}
	c.finishGesture()
	c.brush = b
	c.logger.Printf("Switched to %s", brushName(b))
}

func (c *Context) finishGesture() {
	if g, ok := c.brush.(brush.Gesture); ok && g.Drawing() {
		g.Finish()
	}
	c.owner = nil
}

func (c *Context) LastTile() *board.Tile {
	return c.lastTile
}

// SelectTile hands a tile picked from a palette to the active brush. Brushes
// that cannot take a tile are replaced by a 1x1 shape brush.
func (c *Context) SelectTile(t *board.Tile) {
	c.lastTile = t
	switch b := c.brush.(type) {
	case *brush.ShapeBrush:
		b.SetTile(t)
	case *brush.BucketBrush:
		b.SetPourTile(t)
	case *brush.LineBrush:
		b.SetTile(t)
	default:
		c.SetBrush(brush.NewShapeBrush(t, 1, 1))
	}
}

// SelectRegion turns a rectangular pick into a stamp. A single cell behaves
// like SelectTile.
func (c *Context) SelectRegion(tiles [][]*board.Tile) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return
	}
	if len(tiles) == 1 && len(tiles[0]) == 1 {
		c.SelectTile(tiles[0][0])
		return
	}
	c.SetBrush(brush.NewCustomBrush(tiles))
}

func brushName(b brush.Brush) string {
	switch b := b.(type) {
	case *brush.ShapeBrush:
		if b.Tile() == nil {
			return "Erase tool"
		}
		return "Brush tool"
	case *brush.BucketBrush:
		return "Fill tool"
	case *brush.LineBrush:
		return "Line tool"
	case *brush.CustomBrush:
		return "Stamp tool"
	case *brush.VectorBrush:
		return "Vector tool (" + b.TileType().String() + ")"
	case *brush.ProgramBrush:
		return "Program tool"
	default:
		return "custom tool"
	}
}

// pixelBrush reports whether b works in board pixels rather than tiles.
func pixelBrush(b brush.Brush) bool {
	switch b.(type) {
	case *brush.VectorBrush, *brush.ProgramBrush:
		return true
	}
	return false
}
