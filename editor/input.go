package editor

import (
	"image"

	"github.com/milk9111/rpgboard/brush"
	"github.com/milk9111/rpgboard/common"
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// PointerMoved tracks the cursor without painting.
func (e *Editor) PointerMoved(px, py int) {
	e.cursor = image.Pt(px, py)
	tx, ty := common.PixelToTile(px, py)
	e.hover = image.Pt(tx, ty)
	e.showCursor = e.board.InBounds(tx, ty)
}

// PointerPressed starts a stroke. Tile brushes paint the tile under the
// pointer; vector and program brushes add one point per press. The
// secondary button finishes the shape in progress.
func (e *Editor) PointerPressed(px, py int, button Button) {
	e.PointerMoved(px, py)
	if !e.active {
		return
	}
	b := e.ctx.Brush()
	if button == ButtonSecondary {
		if g, ok := b.(brush.Gesture); ok && g.Drawing() {
			e.ctx.finishGesture()
		}
		return
	}

	e.pressed = true
	e.stroke = false
	if pixelBrush(b) {
		x, y := e.snap(px, py)
		e.gesturePaint(b, x, y)
		return
	}
	if g, ok := b.(brush.Gesture); ok {
		e.gesturePaint(g, e.hover.X, e.hover.Y)
		return
	}
	e.strokePaint(e.hover)
}

// gesturePaint records one undo step per gesture, taken before its first
// point.
func (e *Editor) gesturePaint(b brush.Brush, x, y int) {
	if g, ok := b.(brush.Gesture); ok && g.Drawing() && e.ctx.owner == e {
		e.paint(x, y)
		return
	}
	e.DoPaint(x, y)
}

// strokePaint paints cell and folds every cell of one press-drag-release
// stroke into a single undo step.
func (e *Editor) strokePaint(cell image.Point) {
	e.lastCell = cell
	if e.stroke {
		e.paint(cell.X, cell.Y)
		return
	}
	e.stroke = e.record(func() { e.paint(cell.X, cell.Y) })
}

// PointerDragged paints once each time the pointer enters a new tile. Only
// plain tile brushes paint while dragging.
func (e *Editor) PointerDragged(px, py int) {
	e.PointerMoved(px, py)
	if !e.active || !e.pressed {
		return
	}
	b := e.ctx.Brush()
	if _, ok := b.(brush.Gesture); ok || pixelBrush(b) {
		return
	}
	if e.hover == e.lastCell {
		return
	}
	e.strokePaint(e.hover)
}

func (e *Editor) PointerReleased(px, py int, button Button) {
	e.PointerMoved(px, py)
	if button == ButtonPrimary {
		e.pressed = false
		e.stroke = false
	}
}
