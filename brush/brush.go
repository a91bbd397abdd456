// Package brush turns pointer gestures into edits of one board layer.
//
// Every brush follows the same protocol: StartPaint binds it to a layer,
// DoPaint applies one edit and may be called any number of times, EndPaint
// releases the binding. Brushes that collect input across several gestures
// (vectors, programs, lines) also implement Gesture, whose Finish closes the
// multi-click shape. EndPaint never does that on its own.
package brush

import (
	"errors"
	"fmt"
	"image"

	"github.com/milk9111/rpgboard/board"
)

var (
	ErrNotStarted = errors.New("brush: paint without start")
	ErrLocked     = errors.New("brush: layer is locked")
)

// Container is the board a brush paints into plus its lock state.
type Container interface {
	Board() *board.Board
	IsLocked(layer int) bool
}

type Brush interface {
	StartPaint(c Container, layer int) error
	// DoPaint applies one edit at x, y. Tile brushes take tile coordinates,
	// gesture brushes take pixels. A non-nil selection spreads tile edits
	// over the whole inclusive rectangle.
	DoPaint(x, y int, selection *image.Rectangle) error
	EndPaint()
	DrawPreview(dst *image.RGBA, cursor image.Point)
	// Bounds is the footprint in tiles.
	Bounds() image.Rectangle
	Equal(other Brush) bool
}

// Gesture is implemented by brushes whose shape spans several DoPaint calls.
type Gesture interface {
	Brush
	Drawing() bool
	Finish()
}

type binding struct {
	container Container
	layer     int
	active    bool
}

func (b *binding) StartPaint(c Container, layer int) error {
	if c == nil || c.Board() == nil {
		return fmt.Errorf("%w: no container", ErrNotStarted)
	}
	if _, err := c.Board().Layer(layer); err != nil {
		return err
	}
	if c.IsLocked(layer) {
		return fmt.Errorf("%w: %d", ErrLocked, layer)
	}
	b.container = c
	b.layer = layer
	b.active = true
	return nil
}

func (b *binding) EndPaint() {
	b.container = nil
	b.active = false
}

func (b *binding) target() (*board.Board, int, error) {
	if !b.active {
		return nil, 0, ErrNotStarted
	}
	return b.container.Board(), b.layer, nil
}

// selectionCells lists every tile of an inclusive selection.
func selectionCells(sel image.Rectangle) []image.Point {
	sel = sel.Canon()
	pts := make([]image.Point, 0, (sel.Dx()+1)*(sel.Dy()+1))
	for y := sel.Min.Y; y <= sel.Max.Y; y++ {
		for x := sel.Min.X; x <= sel.Max.X; x++ {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

// commit writes the in-bounds cells and drops the rest. It fails when
// nothing was left to write.
func commit(b *board.Board, layer int, cells []board.Cell) error {
	kept := cells[:0]
	for _, c := range cells {
		if b.InBounds(c.X, c.Y) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("%w: nothing to paint", board.ErrOutOfBounds)
	}
	return b.SetTiles(layer, kept)
}

var (
	_ Brush   = (*ShapeBrush)(nil)
	_ Brush   = (*BucketBrush)(nil)
	_ Brush   = (*CustomBrush)(nil)
	_ Gesture = (*LineBrush)(nil)
	_ Gesture = (*VectorBrush)(nil)
	_ Gesture = (*ProgramBrush)(nil)
)
