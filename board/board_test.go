package board

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solidTile(set string, index int, c color.Color) *Tile {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	return NewTile(set, index, img)
}

func countFires(b *Board) *int {
	n := 0
	b.AddListener(ListenerFunc(func(*Board) { n++ }))
	return &n
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := New(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d,%d) err = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestNewWithLayer(t *testing.T) {
	b, err := NewWithLayer(3, 2)
	if err != nil {
		t.Fatalf("NewWithLayer: %v", err)
	}
	if b.LayerCount() != 1 {
		t.Fatalf("layer count = %d, want 1", b.LayerCount())
	}
	l, _ := b.Layer(0)
	if l.Width() != 3 || l.Height() != 2 {
		t.Fatalf("layer size = %dx%d, want 3x2", l.Width(), l.Height())
	}
	if l.BoardID != b.ID {
		t.Fatalf("layer board id = %d, want %d", l.BoardID, b.ID)
	}
}

func TestSetTileAtRoundTrip(t *testing.T) {
	b, _ := NewWithLayer(4, 3)
	b.AddLayer()
	grass := solidTile("grass", 0, color.RGBA{G: 255, A: 255})

	for layer := 0; layer < b.LayerCount(); layer++ {
		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				if err := b.SetTileAt(layer, x, y, grass); err != nil {
					t.Fatalf("SetTileAt(%d,%d,%d): %v", layer, x, y, err)
				}
				got, err := b.TileAt(layer, x, y)
				if err != nil {
					t.Fatalf("TileAt(%d,%d,%d): %v", layer, x, y, err)
				}
				if got != grass {
					t.Fatalf("TileAt(%d,%d,%d) = %v, want %v", layer, x, y, got, grass)
				}
			}
		}
	}
}

func TestSetTileAtOutOfBounds(t *testing.T) {
	b, _ := NewWithLayer(2, 2)
	grass := solidTile("grass", 0, color.White)
	fires := countFires(b)

	tests := []struct {
		name        string
		layer, x, y int
	}{
		{name: "negative x", layer: 0, x: -1, y: 0},
		{name: "x past width", layer: 0, x: 2, y: 0},
		{name: "y past height", layer: 0, x: 0, y: 2},
		{name: "missing layer", layer: 1, x: 0, y: 0},
		{name: "negative layer", layer: -1, x: 0, y: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.SetTileAt(tt.layer, tt.x, tt.y, grass); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("SetTileAt err = %v, want ErrOutOfBounds", err)
			}
			if _, err := b.TileAt(tt.layer, tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("TileAt err = %v, want ErrOutOfBounds", err)
			}
		})
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if tile, _ := b.TileAt(0, x, y); tile != nil {
				t.Fatalf("cell (%d,%d) modified: %v", x, y, tile)
			}
		}
	}
	if *fires != 0 {
		t.Fatalf("fires = %d, want 0", *fires)
	}
}

func TestSetTilesIsAtomic(t *testing.T) {
	b, _ := NewWithLayer(3, 3)
	grass := solidTile("grass", 0, color.White)
	fires := countFires(b)

	err := b.SetTiles(0, []Cell{{X: 0, Y: 0, Tile: grass}, {X: 3, Y: 0, Tile: grass}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetTiles err = %v, want ErrOutOfBounds", err)
	}
	if tile, _ := b.TileAt(0, 0, 0); tile != nil {
		t.Fatalf("partial write committed")
	}

	if err := b.SetTiles(0, []Cell{{X: 0, Y: 0, Tile: grass}, {X: 2, Y: 2, Tile: grass}}); err != nil {
		t.Fatalf("SetTiles: %v", err)
	}
	if *fires != 1 {
		t.Fatalf("fires = %d, want 1", *fires)
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{name: "grow", w: 6, h: 5},
		{name: "shrink", w: 2, h: 2},
		{name: "wider shorter", w: 5, h: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := NewWithLayer(4, 3)
			b.AddLayer()
			tiles := map[[3]int]*Tile{}
			for layer := 0; layer < 2; layer++ {
				for y := 0; y < 3; y++ {
					for x := 0; x < 4; x++ {
						tile := solidTile("set", layer*100+y*4+x, color.White)
						tiles[[3]int{layer, x, y}] = tile
						_ = b.SetTileAt(layer, x, y, tile)
					}
				}
			}

			if err := b.Resize(tt.w, tt.h); err != nil {
				t.Fatalf("Resize: %v", err)
			}
			if b.Width() != tt.w || b.Height() != tt.h {
				t.Fatalf("size = %dx%d", b.Width(), b.Height())
			}
			for layer := 0; layer < 2; layer++ {
				l, _ := b.Layer(layer)
				if l.Width() != tt.w || l.Height() != tt.h {
					t.Fatalf("layer %d size = %dx%d", layer, l.Width(), l.Height())
				}
				for y := 0; y < tt.h; y++ {
					for x := 0; x < tt.w; x++ {
						got, err := b.TileAt(layer, x, y)
						if err != nil {
							t.Fatalf("TileAt: %v", err)
						}
						want := tiles[[3]int{layer, x, y}]
						if x >= 4 || y >= 3 {
							want = nil
						}
						if got != want {
							t.Fatalf("layer %d (%d,%d) = %v, want %v", layer, x, y, got, want)
						}
					}
				}
			}
			if _, err := b.TileAt(0, tt.w, 0); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("cell past new width still reachable")
			}
		})
	}
}

func TestListenersFireInOrderWithoutCoalescing(t *testing.T) {
	b, _ := New(2, 2)
	var order []string
	b.AddListener(ListenerFunc(func(*Board) { order = append(order, "a") }))
	id := b.AddListener(ListenerFunc(func(*Board) { order = append(order, "b") }))

	b.FireBoardChanged()
	b.FireBoardChanged()
	if got := len(order); got != 4 {
		t.Fatalf("notifications = %d, want 4", got)
	}
	if order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v", order)
	}

	b.RemoveListener(id)
	order = nil
	b.FireBoardChanged()
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after remove order = %v", order)
	}
	if b.Generation() != 3 {
		t.Fatalf("generation = %d, want 3", b.Generation())
	}
}

func TestMoveAndRemoveLayer(t *testing.T) {
	b, _ := NewWithLayer(2, 2)
	b.AddLayer()
	b.AddLayer()
	bottom, _ := b.Layer(0)

	if err := b.MoveLayer(0, 2); err != nil {
		t.Fatalf("MoveLayer: %v", err)
	}
	if top, _ := b.Layer(2); top != bottom {
		t.Fatalf("layer not moved to top")
	}
	if err := b.MoveLayer(0, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("MoveLayer err = %v", err)
	}
	if err := b.RemoveLayer(2); err != nil {
		t.Fatalf("RemoveLayer: %v", err)
	}
	for _, l := range b.Layers() {
		if l == bottom {
			t.Fatalf("removed layer still present")
		}
	}
	if err := b.RenameLayer(0, "Ground"); err != nil {
		t.Fatalf("RenameLayer: %v", err)
	}
	if l, _ := b.Layer(0); l.Name != "Ground" {
		t.Fatalf("name = %q", l.Name)
	}
}

func TestRegionIsInclusive(t *testing.T) {
	b, _ := NewWithLayer(4, 4)
	l, _ := b.Layer(0)
	a := solidTile("set", 1, color.White)
	c := solidTile("set", 2, color.Black)
	_ = b.SetTileAt(0, 1, 1, a)
	_ = b.SetTileAt(0, 3, 2, c)

	got, err := l.Region(image.Rect(1, 1, 3, 2))
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if len(got) != 2 || len(got[0]) != 3 {
		t.Fatalf("region size = %dx%d, want 3x2", len(got[0]), len(got))
	}
	if got[0][0] != a || got[1][2] != c {
		t.Fatalf("region content wrong: %v", got)
	}
	if _, err := l.Region(image.Rect(2, 2, 4, 3)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Region err = %v, want ErrOutOfBounds", err)
	}
}

func TestCloneAndRestore(t *testing.T) {
	b, _ := NewWithLayer(2, 2)
	grass := solidTile("grass", 0, color.White)
	_ = b.SetTileAt(0, 0, 0, grass)
	l, _ := b.Layer(0)
	v := NewVector(TileSolid)
	v.AddPoint(0, 0)
	v.AddPoint(32, 0)
	l.AddVector(v)

	snap := b.Clone()
	_ = b.SetTileAt(0, 0, 0, nil)
	v.AddPoint(64, 64)

	fires := countFires(b)
	b.Restore(snap)
	if *fires != 1 {
		t.Fatalf("restore fires = %d", *fires)
	}
	if tile, _ := b.TileAt(0, 0, 0); tile != grass {
		t.Fatalf("tile not restored")
	}
	l, _ = b.Layer(0)
	if got := l.Vectors[0].PointCount(); got != 2 {
		t.Fatalf("vector points = %d, want 2", got)
	}
	if l.BoardID != b.ID {
		t.Fatalf("restored layer board id = %d", l.BoardID)
	}
}

func TestVectorSegments(t *testing.T) {
	v := NewVector(TileSolid)
	v.AddPoint(0, 0)
	v.AddPoint(10, 0)
	v.AddPoint(10, 10)
	if got := len(v.Segments()); got != 2 {
		t.Fatalf("open segments = %d, want 2", got)
	}
	v.Closed = true
	segs := v.Segments()
	if len(segs) != 3 {
		t.Fatalf("closed segments = %d, want 3", len(segs))
	}
	if segs[2][0] != image.Pt(10, 10) || segs[2][1] != image.Pt(0, 0) {
		t.Fatalf("closing segment = %v", segs[2])
	}
}

func TestParseTileType(t *testing.T) {
	for _, tt := range []TileType{TileSolid, TileUnder, TileStairs, TileWaypoint, TileNone} {
		got, err := ParseTileType(tt.String())
		if err != nil || got != tt {
			t.Fatalf("ParseTileType(%q) = %v, %v", tt.String(), got, err)
		}
	}
	if _, err := ParseTileType("lava"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestTileSetSlicesImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 96, 64))
	img.Set(40, 5, color.RGBA{R: 255, A: 255})
	ts := NewTileSet("dungeon", img)
	if ts.Len() != 6 {
		t.Fatalf("tiles = %d, want 6", ts.Len())
	}
	tile, err := ts.Tile(1)
	if err != nil {
		t.Fatalf("Tile: %v", err)
	}
	if got := tile.Image().Bounds(); got != image.Rect(32, 0, 64, 32) {
		t.Fatalf("tile bounds = %v", got)
	}
	if _, err := ts.Tile(6); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Tile(6) err = %v", err)
	}

	ts.Reload(nil)
	if tile.Image() != nil {
		t.Fatalf("reload with nil kept image")
	}
	ts.Reload(img)
	if tile.Image() == nil {
		t.Fatalf("reload did not restore image")
	}
}

func TestTileSetPlaceholderKeepsIdentity(t *testing.T) {
	ts := NewTileSet("later", nil)
	p := ts.Placeholder(3)
	if p.Image() != nil || ts.Len() != 4 {
		t.Fatalf("placeholder = %v, len %d", p.Image(), ts.Len())
	}
	ts.Reload(image.NewRGBA(image.Rect(0, 0, 64, 64)))
	got, err := ts.Tile(3)
	if err != nil {
		t.Fatalf("Tile: %v", err)
	}
	if got != p || got.Image() == nil {
		t.Fatalf("reload replaced placeholder identity or left it empty")
	}
}
