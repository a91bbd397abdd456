package editor

import (
	"fmt"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/render"
)

func (e *Editor) CurrentLayer() int {
	return e.layer
}

// SetCurrentLayer picks the layer brushes paint into. A shape still being
// drawn stays on the layer it was started on and is finished first.
func (e *Editor) SetCurrentLayer(i int) error {
	if _, err := e.board.Layer(i); err != nil {
		return err
	}
	if i != e.layer && e.ctx.owner == e {
		e.ctx.finishGesture()
	}
	e.layer = i
	return nil
}

// LayerNames lists the layers bottom to top.
func (e *Editor) LayerNames() []string {
	layers := e.board.Layers()
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name
	}
	return names
}

// AddLayer appends an empty layer on top and makes it current.
func (e *Editor) AddLayer() *board.Layer {
	var l *board.Layer
	e.record(func() { l = e.board.AddLayer() })
	e.layer = e.board.LayerCount() - 1
	return l
}

func (e *Editor) RemoveLayer(i int) error {
	if _, err := e.board.Layer(i); err != nil {
		return err
	}
	if e.board.LayerCount() == 1 {
		return ErrLastLayer
	}
	if e.ctx.owner == e {
		e.ctx.finishGesture()
	}
	var err error
	e.record(func() { err = e.board.RemoveLayer(i) })
	if err != nil {
		return err
	}
	if e.layer >= i && e.layer > 0 {
		e.layer--
	}
	return nil
}

// MoveLayerUp swaps layer idx with the one drawn above it.
func (e *Editor) MoveLayerUp(idx int) {
	if idx < 0 || idx >= e.board.LayerCount()-1 {
		return
	}
	e.moveLayer(idx, idx+1)
}

// MoveLayerDown swaps layer idx with the one drawn below it.
func (e *Editor) MoveLayerDown(idx int) {
	if idx <= 0 || idx >= e.board.LayerCount() {
		return
	}
	e.moveLayer(idx, idx-1)
}

func (e *Editor) moveLayer(from, to int) {
	var err error
	e.record(func() { err = e.board.MoveLayer(from, to) })
	if err != nil {
		e.logger.Printf("editor: move layer %d: %v", from, err)
		return
	}
	switch e.layer {
	case from:
		e.layer = to
	case to:
		e.layer = from
	}
}

func (e *Editor) RenameLayer(i int, name string) error {
	var err error
	e.record(func() { err = e.board.RenameLayer(i, name) })
	return err
}

func (e *Editor) layerView(i int) (*render.LayerView, error) {
	lv, err := e.view.LayerView(i)
	if err != nil {
		return nil, fmt.Errorf("editor: layer %d: %w", i, err)
	}
	return lv, nil
}

func (e *Editor) ToggleLayerVisibility(i int) error {
	lv, err := e.layerView(i)
	if err != nil {
		return err
	}
	lv.SetVisible(!lv.Visible())
	return nil
}

func (e *Editor) SetLayerOpacity(i int, opacity float32) error {
	lv, err := e.layerView(i)
	if err != nil {
		return err
	}
	lv.SetOpacity(opacity)
	return nil
}

func (e *Editor) SetLayerLocked(i int, locked bool) error {
	lv, err := e.layerView(i)
	if err != nil {
		return err
	}
	lv.SetLocked(locked)
	return nil
}
