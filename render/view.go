package render

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
)

// SpriteResolver looks up one frame of a sprite's animation.
type SpriteResolver interface {
	Frame(name string, animation, frame int) (image.Image, error)
}

// Previewer is the part of a brush the compositor draws.
type Previewer interface {
	Bounds() image.Rectangle
	DrawPreview(dst *image.RGBA, cursor image.Point)
}

// Overlay is the editor state drawn above the board each frame.
type Overlay struct {
	Selection *image.Rectangle
	// Hover is the tile under the pointer, Cursor the pointer in pixels.
	Hover      image.Point
	Cursor     image.Point
	ShowCursor bool
	Brush      Previewer
}

// Options toggles individual passes.
type Options struct {
	ShowGrid        bool
	ShowCoordinates bool
	ShowVectors     bool
	ShowPrograms    bool
	ShowSprites     bool
	ShowStart       bool
}

func DefaultOptions() Options {
	return Options{
		ShowGrid:     true,
		ShowVectors:  true,
		ShowPrograms: true,
		ShowSprites:  true,
		ShowStart:    true,
	}
}

type Option func(*View)

func WithSprites(r SpriteResolver) Option {
	return func(v *View) { v.sprites = r }
}

func WithOptions(o Options) Option {
	return func(v *View) { v.opts = o }
}

func WithPalette(p Palette) Option {
	return func(v *View) { v.palette = p }
}

func WithLogger(logger *log.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// View composites a board into an RGBA raster. Tiles, sprites and the start
// marker are cached and only repainted after the board reports a change;
// overlays are drawn fresh on every Render.
type View struct {
	board   *board.Board
	layers  []*LayerView
	keys    []*board.Layer
	// tiles is the board size in tiles the layer bounds were sized for.
	tiles   image.Point
	opts    Options
	palette Palette
	sprites SpriteResolver
	logger  *log.Logger

	listenerID int
	dirty      bool
	base       *image.RGBA
	frame      *image.RGBA
	lastErr    string
}

func NewView(b *board.Board, opts ...Option) *View {
	v := &View{
		board:   b,
		opts:    DefaultOptions(),
		palette: DefaultPalette(),
		logger:  log.Default(),
		dirty:   true,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.Sync()
	v.listenerID = b.AddListener(v)
	return v
}

// BoardChanged marks the cached raster stale.
func (v *View) BoardChanged(*board.Board) {
	v.dirty = true
}

// Close detaches the view from its board.
func (v *View) Close() {
	v.board.RemoveListener(v.listenerID)
}

func (v *View) Board() *board.Board {
	return v.board
}

func (v *View) Options() Options {
	return v.opts
}

func (v *View) SetOptions(o Options) {
	if v.opts == o {
		return
	}
	v.opts = o
	v.dirty = true
}

func (v *View) Palette() Palette {
	return v.palette
}

// Sync rebuilds the layer views after layers were added, removed or moved,
// or the board was resized. Views follow their layer, so a moved layer keeps
// its visibility and opacity.
func (v *View) Sync() {
	old := make(map[*board.Layer]*LayerView, len(v.layers))
	for i, lv := range v.layers {
		old[v.keys[i]] = lv
	}
	layers := v.board.Layers()
	v.layers = make([]*LayerView, len(layers))
	v.keys = layers
	for i, l := range layers {
		lv, ok := old[l]
		if !ok {
			lv = newLayerView(v, i)
		}
		lv.number = i
		lv.bounds = image.Rect(lv.bounds.Min.X, lv.bounds.Min.Y, lv.bounds.Min.X+v.board.Width(), lv.bounds.Min.Y+v.board.Height())
		v.layers[i] = lv
	}
	v.tiles = image.Pt(v.board.Width(), v.board.Height())
	v.dirty = true
}

func (v *View) synced() bool {
	if v.tiles != image.Pt(v.board.Width(), v.board.Height()) {
		return false
	}
	layers := v.board.Layers()
	if len(layers) != len(v.keys) {
		return false
	}
	for i, l := range layers {
		if v.keys[i] != l {
			return false
		}
	}
	return true
}

func (v *View) LayerView(n int) (*LayerView, error) {
	if !v.synced() {
		v.Sync()
	}
	if n < 0 || n >= len(v.layers) {
		return nil, fmt.Errorf("%w: %d", ErrNoLayer, n)
	}
	return v.layers[n], nil
}

func (v *View) LayerViews() []*LayerView {
	if !v.synced() {
		v.Sync()
	}
	return append([]*LayerView(nil), v.layers...)
}

// IsLocked reports whether brushes must leave layer n alone. Unknown layers
// count as locked.
func (v *View) IsLocked(n int) bool {
	lv, err := v.LayerView(n)
	if err != nil {
		return true
	}
	return lv.locked
}

// Size is the raster size in pixels.
func (v *View) Size() image.Point {
	return image.Pt(v.board.Width()*common.TileSize, v.board.Height()*common.TileSize)
}

// Render draws the board and ov. The returned image is reused by the next
// call. Elements that failed to draw are skipped and reported together in the
// error; the image is always complete apart from them.
func (v *View) Render(ov Overlay) (*image.RGBA, error) {
	if !v.synced() {
		v.Sync()
	}
	bounds := image.Rectangle{Max: v.Size()}
	if v.base == nil || v.base.Bounds() != bounds {
		v.base = image.NewRGBA(bounds)
		v.frame = image.NewRGBA(bounds)
		v.dirty = true
	}

	var errs []error
	if v.dirty {
		v.dirty = false
		errs = append(errs, v.runPasses(basePasses, v.base, ov)...)
		// A placeholder stays on screen only until the asset shows up.
		if len(errs) > 0 {
			v.dirty = true
		}
	}
	copy(v.frame.Pix, v.base.Pix)
	errs = append(errs, v.runPasses(overlayPasses, v.frame, ov)...)

	err := errors.Join(errs...)
	v.report(err)
	return v.frame, err
}

func (v *View) runPasses(passes []pass, dst *image.RGBA, ov Overlay) []error {
	var errs []error
	for _, p := range passes {
		if p.enabled != nil && !p.enabled(v, ov) {
			continue
		}
		errs = append(errs, p.run(v, dst, ov)...)
	}
	return errs
}

func (v *View) report(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == v.lastErr {
		return
	}
	v.lastErr = msg
	if err != nil {
		v.logger.Printf("render: %v", err)
	}
}
