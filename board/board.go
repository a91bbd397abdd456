package board

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrOutOfBounds = errors.New("board: out of bounds")
	ErrInvalidSize = errors.New("board: invalid size")
)

var nextBoardID atomic.Uint64

// Listener is told every time a board's visual state goes stale.
type Listener interface {
	BoardChanged(b *Board)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(b *Board)

func (f ListenerFunc) BoardChanged(b *Board) { f(b) }

type listenerEntry struct {
	id int
	l  Listener
}

// Cell is one tile write used by SetTiles.
type Cell struct {
	X, Y int
	Tile *Tile
}

// Board owns its layers by index. Index 0 is drawn first.
type Board struct {
	ID     uint64
	Path   string
	StartX int
	StartY int

	width  int
	height int
	layers []*Layer

	listeners  []listenerEntry
	nextListen int
	generation uint64
}

func New(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Board{
		ID:     nextBoardID.Add(1),
		width:  width,
		height: height,
	}, nil
}

// NewWithLayer creates a board ready for editing with one empty layer.
func NewWithLayer(width, height int) (*Board, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}
	b.AddLayer()
	return b, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Generation increases on every change notification.
func (b *Board) Generation() uint64 { return b.generation }

func (b *Board) AddLayer() *Layer {
	l := newLayer(b.ID, fmt.Sprintf("Layer %d", len(b.layers)), b.width, b.height)
	b.layers = append(b.layers, l)
	b.FireBoardChanged()
	return l
}

// InsertLayer appends a layer built elsewhere, typically by a loader. Its grid
// must match the board size.
func (b *Board) InsertLayer(l *Layer) error {
	if l.Width() != b.width || l.Height() != b.height {
		return fmt.Errorf("%w: layer %dx%d on board %dx%d", ErrInvalidSize, l.Width(), l.Height(), b.width, b.height)
	}
	l.BoardID = b.ID
	b.layers = append(b.layers, l)
	b.FireBoardChanged()
	return nil
}

// NewLayer returns an empty layer sized for b without adding it.
func (b *Board) NewLayer(name string) *Layer {
	return newLayer(b.ID, name, b.width, b.height)
}

func (b *Board) RemoveLayer(i int) error {
	if err := b.checkLayer(i); err != nil {
		return err
	}
	b.layers = append(b.layers[:i], b.layers[i+1:]...)
	b.FireBoardChanged()
	return nil
}

func (b *Board) MoveLayer(from, to int) error {
	if err := b.checkLayer(from); err != nil {
		return err
	}
	if err := b.checkLayer(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	l := b.layers[from]
	b.layers = append(b.layers[:from], b.layers[from+1:]...)
	b.layers = append(b.layers[:to], append([]*Layer{l}, b.layers[to:]...)...)
	b.FireBoardChanged()
	return nil
}

func (b *Board) RenameLayer(i int, name string) error {
	if err := b.checkLayer(i); err != nil {
		return err
	}
	if b.layers[i].Name == name {
		return nil
	}
	b.layers[i].Name = name
	b.FireBoardChanged()
	return nil
}

func (b *Board) LayerCount() int {
	return len(b.layers)
}

func (b *Board) Layer(i int) (*Layer, error) {
	if err := b.checkLayer(i); err != nil {
		return nil, err
	}
	return b.layers[i], nil
}

// Layers returns the layers bottom to top. The slice is a copy.
func (b *Board) Layers() []*Layer {
	return append([]*Layer(nil), b.layers...)
}

func (b *Board) checkLayer(i int) error {
	if i < 0 || i >= len(b.layers) {
		return fmt.Errorf("%w: layer %d of %d", ErrOutOfBounds, i, len(b.layers))
	}
	return nil
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) TileAt(layer, x, y int) (*Tile, error) {
	l, err := b.Layer(layer)
	if err != nil {
		return nil, err
	}
	return l.TileAt(x, y)
}

func (b *Board) SetTileAt(layer, x, y int, t *Tile) error {
	l, err := b.Layer(layer)
	if err != nil {
		return err
	}
	if !l.inBounds(x, y) {
		return fmt.Errorf("%w: layer %d (%d,%d)", ErrOutOfBounds, layer, x, y)
	}
	l.Tiles[y][x] = t
	b.FireBoardChanged()
	return nil
}

// SetTiles writes every cell or none of them, then fires one change.
func (b *Board) SetTiles(layer int, cells []Cell) error {
	l, err := b.Layer(layer)
	if err != nil {
		return err
	}
	for _, c := range cells {
		if !l.inBounds(c.X, c.Y) {
			return fmt.Errorf("%w: layer %d (%d,%d)", ErrOutOfBounds, layer, c.X, c.Y)
		}
	}
	if len(cells) == 0 {
		return nil
	}
	for _, c := range cells {
		l.Tiles[c.Y][c.X] = c.Tile
	}
	b.FireBoardChanged()
	return nil
}

// Resize reallocates every layer grid, keeping cells by coordinate.
func (b *Board) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == b.width && height == b.height {
		return nil
	}
	for _, l := range b.layers {
		l.resize(width, height)
	}
	b.width = width
	b.height = height
	b.FireBoardChanged()
	return nil
}

func (b *Board) SetWidth(width int) error {
	return b.Resize(width, b.height)
}

func (b *Board) SetHeight(height int) error {
	return b.Resize(b.width, height)
}

func (b *Board) SetStart(x, y int) {
	if b.StartX == x && b.StartY == y {
		return
	}
	b.StartX = x
	b.StartY = y
	b.FireBoardChanged()
}

// AddListener registers l and returns an id for RemoveListener.
func (b *Board) AddListener(l Listener) int {
	b.nextListen++
	b.listeners = append(b.listeners, listenerEntry{id: b.nextListen, l: l})
	return b.nextListen
}

func (b *Board) RemoveListener(id int) {
	for i, e := range b.listeners {
		if e.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// FireBoardChanged notifies every listener in registration order. Calls are
// never merged.
func (b *Board) FireBoardChanged() {
	b.generation++
	for _, e := range append([]listenerEntry(nil), b.listeners...) {
		e.l.BoardChanged(b)
	}
}

// Clone deep-copies the layer data. Tiles are shared, listeners are not.
func (b *Board) Clone() *Board {
	c := &Board{
		ID:     b.ID,
		Path:   b.Path,
		StartX: b.StartX,
		StartY: b.StartY,
		width:  b.width,
		height: b.height,
	}
	for _, l := range b.layers {
		c.layers = append(c.layers, l.clone(c.ID))
	}
	return c
}

// Restore replaces b's content with snap's and fires one change. Listeners
// and identity of b are kept.
func (b *Board) Restore(snap *Board) {
	b.Path = snap.Path
	b.StartX = snap.StartX
	b.StartY = snap.StartY
	b.width = snap.width
	b.height = snap.height
	b.layers = b.layers[:0]
	for _, l := range snap.layers {
		b.layers = append(b.layers, l.clone(b.ID))
	}
	b.FireBoardChanged()
}
