package render

import (
	"image"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
)

// LayerView holds the per-layer editing state that is never saved: whether
// the layer is shown, whether brushes may touch it, and how opaque it is.
type LayerView struct {
	view    *View
	number  int
	visible bool
	locked  bool
	opacity float32
	bounds  image.Rectangle
}

func newLayerView(v *View, number int) *LayerView {
	b := v.board
	return &LayerView{
		view:    v,
		number:  number,
		visible: true,
		opacity: 1,
		bounds:  image.Rect(0, 0, b.Width(), b.Height()),
	}
}

// Number is the layer's index in the board.
func (lv *LayerView) Number() int {
	return lv.number
}

func (lv *LayerView) Layer() (*board.Layer, error) {
	return lv.view.board.Layer(lv.number)
}

func (lv *LayerView) Visible() bool {
	return lv.visible
}

// SetVisible fires a board change only when the value differs.
func (lv *LayerView) SetVisible(visible bool) {
	if lv.visible == visible {
		return
	}
	lv.visible = visible
	lv.view.board.FireBoardChanged()
}

func (lv *LayerView) Locked() bool {
	return lv.locked
}

func (lv *LayerView) SetLocked(locked bool) {
	lv.locked = locked
}

func (lv *LayerView) Opacity() float32 {
	return lv.opacity
}

// SetOpacity clamps to [0,1]. A hidden layer takes the new value silently.
func (lv *LayerView) SetOpacity(opacity float32) {
	opacity = common.Clamp(opacity, 0, 1)
	if lv.opacity == opacity {
		return
	}
	lv.opacity = opacity
	if lv.visible {
		lv.view.board.FireBoardChanged()
	}
}

// Bounds is the offset and size of the layer in tiles.
func (lv *LayerView) Bounds() image.Rectangle {
	return lv.bounds
}

func (lv *LayerView) SetBounds(r image.Rectangle) {
	lv.bounds = r
}
