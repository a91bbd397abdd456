// Package editor drives brushes from pointer input and owns the editing
// state around one board: current layer, selection, cursor and undo history.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/brush"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/levels"
	"github.com/milk9111/rpgboard/physics"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/programs"
	"github.com/milk9111/rpgboard/render"
)

var (
	ErrNoSelection = errors.New("editor: no selection")
	ErrNoPath      = errors.New("editor: board has no file")
	ErrLastLayer   = errors.New("editor: cannot remove the last layer")
)

// Reporter receives errors the user has to see, such as failed saves.
type Reporter interface {
	Report(title string, err error)
}

type ReporterFunc func(title string, err error)

func (f ReporterFunc) Report(title string, err error) { f(title, err) }

// selectRadius is how far from a shape, in pixels, a click still selects it.
const selectRadius = 6

type Option func(*Editor)

func WithLogger(logger *log.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithReporter(r Reporter) Option {
	return func(e *Editor) { e.reporter = r }
}

func WithUndoDepth(n int) Option {
	return func(e *Editor) { e.history = newHistory(n) }
}

func WithPrograms(rt *programs.Runtime) Option {
	return func(e *Editor) {
		if rt != nil {
			e.programs = rt
		}
	}
}

// WithViewOptions configures the compositor, for example its sprite
// resolver and palette.
func WithViewOptions(opts ...render.Option) Option {
	return func(e *Editor) { e.viewOpts = append(e.viewOpts, opts...) }
}

type Editor struct {
	ctx      *Context
	board    *board.Board
	view     *render.View
	viewOpts []render.Option
	history  *history
	programs *programs.Runtime
	reporter Reporter
	logger   *log.Logger

	layer     int
	selection *image.Rectangle
	active    bool

	cursor     image.Point
	hover      image.Point
	showCursor bool

	pressed  bool
	stroke   bool
	lastCell image.Point
}

func New(ctx *Context, b *board.Board, opts ...Option) *Editor {
	e := &Editor{
		ctx:      ctx,
		board:    b,
		history:  newHistory(config.DefaultUndoDepth),
		logger:   log.Default(),
		programs: programs.NewRuntime(prefabs.Scripts("")),
		active:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.view = render.NewView(b, e.viewOpts...)
	if b.LayerCount() == 0 {
		b.AddLayer()
	}
	return e
}

// NewBoard opens an editor on an empty board with one layer.
func NewBoard(ctx *Context, width, height int, opts ...Option) (*Editor, error) {
	b, err := board.NewWithLayer(width, height)
	if err != nil {
		return nil, err
	}
	return New(ctx, b, opts...), nil
}

// Open loads the board stored at path.
func Open(ctx *Context, path string, tiles levels.TileResolver, opts ...Option) (*Editor, error) {
	b, err := levels.Load(path, tiles)
	if err != nil {
		return nil, err
	}
	return New(ctx, b, opts...), nil
}

// Close detaches the editor's view from the board.
func (e *Editor) Close() {
	e.Deactivate()
	e.view.Close()
}

func (e *Editor) Board() *board.Board {
	return e.board
}

func (e *Editor) View() *render.View {
	return e.view
}

func (e *Editor) Context() *Context {
	return e.ctx
}

// IsLocked makes the editor a brush.Container.
func (e *Editor) IsLocked(layer int) bool {
	return e.view.IsLocked(layer)
}

func (e *Editor) Active() bool {
	return e.active
}

func (e *Editor) Activate() {
	e.active = true
}

// Deactivate ends any vector or program this editor was drawing. A shape
// with a single point is dropped, longer ones are kept.
func (e *Editor) Deactivate() {
	if e.ctx.owner == e {
		e.ctx.finishGesture()
	}
	e.active = false
	e.pressed = false
	e.stroke = false
	e.showCursor = false
}

// DoPaint runs one start/paint/end cycle of the active brush at x, y and
// records an undo step when the board changed. Failures are logged and
// dropped.
func (e *Editor) DoPaint(x, y int) {
	e.record(func() { e.paint(x, y) })
}

func (e *Editor) paint(x, y int) {
	b := e.ctx.Brush()
	if b == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("editor: paint at %d,%d panicked: %v", x, y, r)
		}
	}()
	// A gesture still open on another board ends before this one starts.
	if e.ctx.owner != nil && e.ctx.owner != e {
		e.ctx.finishGesture()
	}
	if err := b.StartPaint(e, e.layer); err != nil {
		e.logger.Printf("editor: paint at %d,%d: %v", x, y, err)
		return
	}
	defer b.EndPaint()
	if g, ok := b.(brush.Gesture); ok {
		e.ctx.owner = e
		defer func() {
			if !g.Drawing() {
				e.ctx.owner = nil
			}
		}()
	}
	if err := b.DoPaint(x, y, e.selection); err != nil {
		e.logger.Printf("editor: paint at %d,%d: %v", x, y, err)
	}
}

// record runs fn and keeps a snapshot of the board from before it when fn
// changed anything.
func (e *Editor) record(fn func()) bool {
	snap := e.board.Clone()
	gen := e.board.Generation()
	fn()
	if e.board.Generation() == gen {
		return false
	}
	e.history.push(snap)
	return true
}

func (e *Editor) CanUndo() bool { return len(e.history.undo) > 0 }
func (e *Editor) CanRedo() bool { return len(e.history.redo) > 0 }

func (e *Editor) Undo() bool {
	return e.step(e.history.popUndo)
}

func (e *Editor) Redo() bool {
	return e.step(e.history.popRedo)
}

func (e *Editor) step(pop func(*board.Board) (*board.Board, bool)) bool {
	if e.ctx.owner == e {
		e.ctx.finishGesture()
	}
	snap, ok := pop(e.board.Clone())
	if !ok {
		return false
	}
	states := e.layerStates()
	e.board.Restore(snap)
	e.applyLayerStates(states)
	if e.layer >= e.board.LayerCount() {
		e.layer = e.board.LayerCount() - 1
	}
	if e.layer < 0 {
		e.layer = 0
	}
	return true
}

type layerState struct {
	visible bool
	locked  bool
	opacity float32
}

func (e *Editor) layerStates() []layerState {
	views := e.view.LayerViews()
	states := make([]layerState, len(views))
	for i, lv := range views {
		states[i] = layerState{visible: lv.Visible(), locked: lv.Locked(), opacity: lv.Opacity()}
	}
	return states
}

// applyLayerStates carries view state over by index after the board's
// layers were replaced.
func (e *Editor) applyLayerStates(states []layerState) {
	for i, lv := range e.view.LayerViews() {
		if i >= len(states) {
			break
		}
		lv.SetOpacity(states[i].opacity)
		lv.SetVisible(states[i].visible)
		lv.SetLocked(states[i].locked)
	}
}

func (e *Editor) SetSelection(r image.Rectangle) {
	r = r.Canon()
	e.selection = &r
}

func (e *Editor) ClearSelection() {
	e.selection = nil
}

// Selection is the inclusive tile rectangle, if any.
func (e *Editor) Selection() (image.Rectangle, bool) {
	if e.selection == nil {
		return image.Rectangle{}, false
	}
	return *e.selection, true
}

func (e *Editor) SelectAll() {
	e.SetSelection(image.Rect(0, 0, e.board.Width()-1, e.board.Height()-1))
}

// CreateTileLayerFromRegion copies the current layer's tiles inside the
// inclusive rectangle r, indexed [row][column].
func (e *Editor) CreateTileLayerFromRegion(r image.Rectangle) ([][]*board.Tile, error) {
	l, err := e.board.Layer(e.layer)
	if err != nil {
		return nil, err
	}
	return l.Region(r.Canon())
}

// CaptureSelection copies the selected tiles and makes them the active
// stamp.
func (e *Editor) CaptureSelection() ([][]*board.Tile, error) {
	if e.selection == nil {
		return nil, ErrNoSelection
	}
	tiles, err := e.CreateTileLayerFromRegion(*e.selection)
	if err != nil {
		return nil, err
	}
	e.ctx.SelectRegion(tiles)
	return tiles, nil
}

// SetStart moves the party start marker to tile x, y.
func (e *Editor) SetStart(x, y int) error {
	if !e.board.InBounds(x, y) {
		return fmt.Errorf("%w: start %d,%d", board.ErrOutOfBounds, x, y)
	}
	e.record(func() { e.board.SetStart(x, y) })
	return nil
}

func (e *Editor) Resize(width, height int) error {
	var err error
	e.record(func() { err = e.board.Resize(width, height) })
	return err
}

// SelectAt toggles the vector or program nearest to pixel px, py on the
// visible, unlocked layers. A click on empty space clears the selection.
func (e *Editor) SelectAt(px, py int) (physics.Hit, bool) {
	ht := physics.Build(e.board, func(i int) bool {
		lv, err := e.view.LayerView(i)
		return err == nil && lv.Visible() && !lv.Locked()
	})
	hit, ok := ht.Nearest(float64(px), float64(py), selectRadius)
	if !ok {
		if e.clearShapeSelection() {
			e.board.FireBoardChanged()
		}
		return physics.Hit{}, false
	}
	v := hit.Shape()
	v.Selected = !v.Selected
	e.board.FireBoardChanged()
	return hit, true
}

func (e *Editor) clearShapeSelection() bool {
	changed := false
	for _, l := range e.board.Layers() {
		for _, v := range l.Vectors {
			changed = changed || v.Selected
			v.Selected = false
		}
		for _, p := range l.Programs {
			if p.Vector != nil {
				changed = changed || p.Vector.Selected
				p.Vector.Selected = false
			}
		}
	}
	return changed
}

// DeleteSelected removes every selected vector and program from unlocked
// layers and returns how many went.
func (e *Editor) DeleteSelected() int {
	n := 0
	e.record(func() {
		for i, l := range e.board.Layers() {
			if e.IsLocked(i) {
				continue
			}
			for _, v := range append([]*board.Vector(nil), l.Vectors...) {
				if v.Selected && l.RemoveVector(v) {
					n++
				}
			}
			for _, p := range append([]*board.Program(nil), l.Programs...) {
				if p.Vector != nil && p.Vector.Selected && l.RemoveProgram(p) {
					n++
				}
			}
		}
		if n > 0 {
			e.board.FireBoardChanged()
		}
	})
	return n
}

// ValidatePrograms compiles the script of every program on the board.
func (e *Editor) ValidatePrograms() []error {
	return e.programs.ValidateBoard(e.board)
}

// RunProgram fires p as if the party triggered it at its first point.
func (e *Editor) RunProgram(ctx context.Context, p *board.Program, event string) (programs.Result, error) {
	tr := programs.Trigger{Event: event, Layer: e.layer}
	if p != nil && p.Vector != nil && p.Vector.PointCount() > 0 {
		tr.X, tr.Y = p.Vector.Points[0].X, p.Vector.Points[0].Y
	}
	return e.programs.Run(ctx, p, tr)
}

// Render composites the board with the editor's cursor, selection and brush
// preview.
func (e *Editor) Render() (*image.RGBA, error) {
	e.view.SetOptions(e.ctx.Options)
	b := e.ctx.Brush()
	ov := render.Overlay{
		Selection:  e.selection,
		Hover:      e.hover,
		Cursor:     e.cursor,
		ShowCursor: e.active && e.showCursor && b != nil && !pixelBrush(b),
	}
	if b != nil && e.active && e.showCursor {
		ov.Brush = b
	}
	return e.view.Render(ov)
}

func (e *Editor) snap(px, py int) (int, int) {
	if e.ctx.Snap {
		return common.SnapToTile(px, py)
	}
	return px, py
}
