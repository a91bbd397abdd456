package assets

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"path"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/prefabs"
)

var ErrNotFound = errors.New("assets: not found")

type Option func(*Library)

// WithSourceTileSize scales tilesets drawn at another cell size up or down to
// the board's 32px cells.
func WithSourceTileSize(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.sourceTile = n
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

type sheet struct {
	spec prefabs.SpriteSpec
	img  image.Image
}

// Library resolves tiles and sprite frames by name. Only successful loads are
// cached; a failed tileset keeps image-less placeholder tiles that are filled
// in by the next successful lookup.
type Library struct {
	images     fs.FS
	specs      fs.FS
	sourceTile int
	logger     *log.Logger

	sets   map[string]*board.TileSet
	loaded map[string]bool
	sheets map[string]sheet
}

func NewLibrary(images, specs fs.FS, opts ...Option) *Library {
	l := &Library{
		images:     images,
		specs:      specs,
		sourceTile: common.TileSize,
		logger:     log.Default(),
		sets:       make(map[string]*board.TileSet),
		loaded:     make(map[string]bool),
		sheets:     make(map[string]sheet),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TileSet returns the named tileset, loading it on first use.
func (l *Library) TileSet(name string) (*board.TileSet, error) {
	name = cleanAssetPath(name)
	ts, ok := l.sets[name]
	if !ok {
		ts = board.NewTileSet(name, nil)
		l.sets[name] = ts
	}
	if l.loaded[name] {
		return ts, nil
	}
	img, err := l.decodeTiles(name)
	if err != nil {
		return ts, fmt.Errorf("%w: tileset %s: %v", ErrNotFound, name, err)
	}
	ts.Reload(img)
	l.loaded[name] = true
	return ts, nil
}

// Tile resolves one tile. When the tileset cannot be loaded the returned tile
// is a placeholder with no image together with an ErrNotFound error; callers
// may keep the tile, which keeps its identity once the set loads.
func (l *Library) Tile(set string, index int) (*board.Tile, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: tileset %s index %d", board.ErrOutOfBounds, set, index)
	}
	ts, err := l.TileSet(set)
	if err != nil {
		return ts.Placeholder(index), err
	}
	if index >= ts.Len() {
		return ts.Placeholder(index), fmt.Errorf("%w: tileset %s index %d", ErrNotFound, ts.Name, index)
	}
	return ts.Tile(index)
}

func (l *Library) decodeTiles(name string) (image.Image, error) {
	img, err := DecodeImage(l.images, name)
	if err != nil {
		return nil, err
	}
	if l.sourceTile == common.TileSize {
		return img, nil
	}
	b := img.Bounds()
	w := b.Dx() / l.sourceTile * common.TileSize
	h := b.Dy() / l.sourceTile * common.TileSize
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("tileset %s smaller than one %dpx tile", name, l.sourceTile)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := image.Rect(b.Min.X, b.Min.Y, b.Min.X+b.Dx()/l.sourceTile*l.sourceTile, b.Min.Y+b.Dy()/l.sourceTile*l.sourceTile)
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst, nil
}

// Frame returns one frame of a sprite's animation.
func (l *Library) Frame(name string, animation, frame int) (image.Image, error) {
	sh, ok := l.sheets[name]
	if !ok {
		spec, err := prefabs.LoadSpriteSpec(l.specs, name)
		if err != nil {
			return nil, fmt.Errorf("%w: sprite %s: %v", ErrNotFound, name, err)
		}
		img, err := DecodeImage(l.images, spec.Sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: sprite %s sheet %s: %v", ErrNotFound, name, spec.Sheet, err)
		}
		sh = sheet{spec: spec, img: img}
		l.sheets[name] = sh
	}
	r, err := sh.spec.FrameRect(animation, frame)
	if err != nil {
		return nil, err
	}
	r = r.Add(sh.img.Bounds().Min)
	if !r.In(sh.img.Bounds()) {
		return nil, fmt.Errorf("%w: sprite %s frame %v outside sheet", ErrNotFound, name, r)
	}
	sub, ok := sh.img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("sprite %s: sheet cannot be sliced", name)
	}
	return sub.SubImage(r), nil
}

// Invalidate drops cached data for an asset that changed on disk. Tilesets
// are reloaded in place so existing board cells pick up the new pixels.
func (l *Library) Invalidate(name string) {
	name = cleanAssetPath(name)
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		delete(l.sheets, strings.TrimSuffix(path.Base(name), path.Ext(name)))
		l.logger.Printf("assets: sprite spec %s changed", name)
	case ".png", ".bmp":
		for key, sh := range l.sheets {
			if cleanAssetPath(sh.spec.Sheet) == name {
				delete(l.sheets, key)
			}
		}
		if _, ok := l.sets[name]; ok {
			l.loaded[name] = false
			if _, err := l.TileSet(name); err != nil {
				l.sets[name].Reload(nil)
				l.logger.Printf("assets: reload %s: %v", name, err)
				return
			}
			l.logger.Printf("assets: reloaded tileset %s", name)
		}
	}
}
