package brush

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/milk9111/rpgboard/board"
)

type testContainer struct {
	b      *board.Board
	locked map[int]bool
}

func (c *testContainer) Board() *board.Board { return c.b }

func (c *testContainer) IsLocked(layer int) bool { return c.locked[layer] }

func newContainer(t *testing.T, w, h int) *testContainer {
	t.Helper()
	b, err := board.NewWithLayer(w, h)
	if err != nil {
		t.Fatalf("NewWithLayer: %v", err)
	}
	return &testContainer{b: b, locked: map[int]bool{}}
}

func tile(index int) *board.Tile {
	return board.NewTile("test", index, image.NewRGBA(image.Rect(0, 0, 32, 32)))
}

func paint(t *testing.T, br Brush, c Container, x, y int, sel *image.Rectangle) error {
	t.Helper()
	if err := br.StartPaint(c, 0); err != nil {
		t.Fatalf("StartPaint: %v", err)
	}
	defer br.EndPaint()
	return br.DoPaint(x, y, sel)
}

func countFires(b *board.Board) *int {
	n := 0
	b.AddListener(board.ListenerFunc(func(*board.Board) { n++ }))
	return &n
}

func TestDoPaintWithoutStart(t *testing.T) {
	brushes := map[string]Brush{
		"shape":   NewShapeBrush(tile(1), 1, 1),
		"bucket":  NewBucketBrush(tile(1)),
		"custom":  NewCustomBrush([][]*board.Tile{{tile(1)}}),
		"line":    NewLineBrush(tile(1)),
		"vector":  NewVectorBrush(board.TileSolid),
		"program": NewProgramBrush("door.tengo"),
	}
	for name, br := range brushes {
		t.Run(name, func(t *testing.T) {
			if err := br.DoPaint(0, 0, nil); !errors.Is(err, ErrNotStarted) {
				t.Fatalf("DoPaint err = %v, want ErrNotStarted", err)
			}
			c := newContainer(t, 2, 2)
			if err := br.StartPaint(c, 0); err != nil {
				t.Fatalf("StartPaint: %v", err)
			}
			br.EndPaint()
			if err := br.DoPaint(0, 0, nil); !errors.Is(err, ErrNotStarted) {
				t.Fatalf("DoPaint after EndPaint err = %v", err)
			}
		})
	}
}

func TestStartPaintRejectsLockedAndMissingLayers(t *testing.T) {
	c := newContainer(t, 2, 2)
	br := NewShapeBrush(tile(1), 1, 1)
	if err := br.StartPaint(c, 3); !errors.Is(err, board.ErrOutOfBounds) {
		t.Fatalf("missing layer err = %v", err)
	}
	c.locked[0] = true
	if err := br.StartPaint(c, 0); !errors.Is(err, ErrLocked) {
		t.Fatalf("locked layer err = %v", err)
	}
	if err := br.StartPaint(nil, 0); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("nil container err = %v", err)
	}
}

func TestShapeBrush(t *testing.T) {
	grass := tile(1)
	tests := []struct {
		name    string
		w, h    int
		x, y    int
		sel     *image.Rectangle
		want    []image.Point
		wantErr error
	}{
		{name: "single", w: 1, h: 1, x: 2, y: 1, want: []image.Point{{2, 1}}},
		{name: "centered three", w: 3, h: 1, x: 2, y: 2, want: []image.Point{{1, 2}, {2, 2}, {3, 2}}},
		{name: "clipped at edge", w: 3, h: 3, x: 0, y: 0, want: []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
		{name: "selection", w: 1, h: 1, x: 0, y: 0, sel: &image.Rectangle{Min: image.Pt(1, 1), Max: image.Pt(2, 3)},
			want: []image.Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {1, 3}, {2, 3}}},
		{name: "off board", w: 1, h: 1, x: 9, y: 9, wantErr: board.ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer(t, 4, 4)
			err := paint(t, NewShapeBrush(grass, tt.w, tt.h), c, tt.x, tt.y, tt.sel)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DoPaint: %v", err)
			}
			want := map[image.Point]bool{}
			for _, p := range tt.want {
				want[p] = true
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					got, _ := c.b.TileAt(0, x, y)
					if want[image.Pt(x, y)] != (got == grass) {
						t.Fatalf("cell (%d,%d) = %v", x, y, got)
					}
				}
			}
		})
	}
}

func TestEraser(t *testing.T) {
	c := newContainer(t, 3, 3)
	_ = c.b.SetTileAt(0, 1, 1, tile(1))
	if err := paint(t, NewEraser(1, 1), c, 1, 1, nil); err != nil {
		t.Fatalf("DoPaint: %v", err)
	}
	if got, _ := c.b.TileAt(0, 1, 1); got != nil {
		t.Fatalf("cell not erased: %v", got)
	}
}

func TestBucketFillsUniformRegion(t *testing.T) {
	for _, n := range []int{1, 5, 16} {
		c := newContainer(t, n, n)
		fires := countFires(c.b)
		pour := tile(7)
		if err := paint(t, NewBucketBrush(pour), c, n/2, n/2, nil); err != nil {
			t.Fatalf("n=%d DoPaint: %v", n, err)
		}
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if got, _ := c.b.TileAt(0, x, y); got != pour {
					t.Fatalf("n=%d cell (%d,%d) not filled", n, x, y)
				}
			}
		}
		if *fires != 1 {
			t.Fatalf("n=%d fires = %d, want 1", n, *fires)
		}
	}
}

func TestFloodRegionVisitsOnce(t *testing.T) {
	c := newContainer(t, 6, 6)
	l, _ := c.b.Layer(0)
	region := FloodRegion(l, image.Pt(0, 0), image.Rect(0, 0, 6, 6))
	if len(region) != 36 {
		t.Fatalf("region = %d cells, want 36", len(region))
	}
	seen := map[image.Point]bool{}
	for _, p := range region {
		if seen[p] {
			t.Fatalf("cell %v visited twice", p)
		}
		seen[p] = true
	}
}

func TestBucketRespectsBordersAndSelection(t *testing.T) {
	wall := tile(2)
	pour := tile(3)
	c := newContainer(t, 5, 5)
	for y := 0; y < 5; y++ {
		_ = c.b.SetTileAt(0, 2, y, wall)
	}

	if err := paint(t, NewBucketBrush(pour), c, 0, 0, nil); err != nil {
		t.Fatalf("DoPaint: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			got, _ := c.b.TileAt(0, x, y)
			switch {
			case x < 2 && got != pour:
				t.Fatalf("left cell (%d,%d) not filled", x, y)
			case x == 2 && got != wall:
				t.Fatalf("wall (%d,%d) overwritten", x, y)
			case x > 2 && got != nil:
				t.Fatalf("fill leaked through wall at (%d,%d)", x, y)
			}
		}
	}

	sel := image.Rect(3, 0, 4, 1)
	if err := paint(t, NewBucketBrush(pour), c, 3, 0, &sel); err != nil {
		t.Fatalf("DoPaint with selection: %v", err)
	}
	if got, _ := c.b.TileAt(0, 4, 1); got != pour {
		t.Fatalf("selected cell not filled")
	}
	if got, _ := c.b.TileAt(0, 3, 2); got != nil {
		t.Fatalf("fill escaped selection")
	}
}

func TestBucketSameTileIsNoop(t *testing.T) {
	pour := tile(3)
	c := newContainer(t, 2, 2)
	_ = c.b.SetTiles(0, []board.Cell{{X: 0, Y: 0, Tile: pour}, {X: 1, Y: 0, Tile: pour}, {X: 0, Y: 1, Tile: pour}, {X: 1, Y: 1, Tile: pour}})
	fires := countFires(c.b)
	if err := paint(t, NewBucketBrush(pour), c, 0, 0, nil); err != nil {
		t.Fatalf("DoPaint: %v", err)
	}
	if *fires != 0 {
		t.Fatalf("fires = %d, want 0", *fires)
	}
	if err := paint(t, NewBucketBrush(pour), c, 5, 0, nil); !errors.Is(err, board.ErrOutOfBounds) {
		t.Fatalf("off-board fill err = %v", err)
	}
}

func TestCustomBrushStampsAndClips(t *testing.T) {
	a, b := tile(1), tile(2)
	stamp := [][]*board.Tile{
		{a, b, a},
		{b, nil, b},
	}
	c := newContainer(t, 4, 4)
	keep := tile(9)
	_ = c.b.SetTileAt(0, 1, 1, keep)

	br := NewCustomBrush(stamp)
	if got := br.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Bounds = %v", got)
	}
	if err := paint(t, br, c, 1, 1, nil); err != nil {
		t.Fatalf("DoPaint: %v", err)
	}
	wants := map[image.Point]*board.Tile{
		{0, 0}: a, {1, 0}: b, {2, 0}: a,
		{0, 1}: b, {1, 1}: keep, {2, 1}: b,
	}
	for p, want := range wants {
		if got, _ := c.b.TileAt(0, p.X, p.Y); got != want {
			t.Fatalf("cell %v = %v, want %v", p, got, want)
		}
	}

	c = newContainer(t, 4, 4)
	if err := paint(t, br, c, 3, 3, nil); err != nil {
		t.Fatalf("clipped DoPaint: %v", err)
	}
	if got, _ := c.b.TileAt(0, 2, 2); got != a {
		t.Fatalf("clipped stamp origin = %v", got)
	}
	if got, _ := c.b.TileAt(0, 3, 3); got != nil {
		t.Fatalf("transparent cell painted")
	}
}

func TestCustomBrushRepeatsAcrossSelection(t *testing.T) {
	a, b := tile(1), tile(2)
	c := newContainer(t, 4, 4)
	sel := image.Rect(0, 0, 3, 0)
	if err := paint(t, NewCustomBrush([][]*board.Tile{{a, b}}), c, 0, 0, &sel); err != nil {
		t.Fatalf("DoPaint: %v", err)
	}
	for x, want := range []*board.Tile{a, b, a, b} {
		if got, _ := c.b.TileAt(0, x, 0); got != want {
			t.Fatalf("cell %d = %v, want %v", x, got, want)
		}
	}
}

func TestCustomBrushPadsRaggedRows(t *testing.T) {
	c := newContainer(t, 4, 4)
	a, b := tile(1), tile(2)
	br := NewCustomBrush([][]*board.Tile{{a, b}, {a}})
	if got := br.Bounds(); got != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Bounds = %v, want 2x2", got)
	}
	if got := br.Tiles()[1][1]; got != nil {
		t.Fatalf("padded cell = %v, want nil", got)
	}

	sel := image.Rect(0, 0, 3, 3)
	if err := paint(t, br, c, 0, 0, &sel); err != nil {
		t.Fatalf("paint: %v", err)
	}
	for _, tt := range []struct {
		x, y int
		want *board.Tile
	}{
		{0, 0, a}, {1, 0, b}, {2, 0, a}, {0, 1, a}, {1, 1, nil}, {3, 3, nil}, {1, 2, b},
	} {
		got, _ := c.b.TileAt(0, tt.x, tt.y)
		if got != tt.want {
			t.Fatalf("tile at %d,%d = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if got := NewCustomBrush([][]*board.Tile{{}, {}}).Bounds(); !got.Empty() {
		t.Fatalf("empty block Bounds = %v", got)
	}
}

func TestVectorGesture(t *testing.T) {
	tests := []struct {
		name      string
		points    []image.Point
		wantKept  bool
		wantCount int
	}{
		{name: "single point discarded", points: []image.Point{{10, 10}}},
		{name: "two points kept", points: []image.Point{{0, 0}, {32, 0}}, wantKept: true, wantCount: 2},
		{name: "five points in order", points: []image.Point{{0, 0}, {32, 0}, {32, 32}, {64, 32}, {64, 64}}, wantKept: true, wantCount: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContainer(t, 4, 4)
			vb := NewVectorBrush(board.TileStairs)
			for i, p := range tt.points {
				if err := paint(t, vb, c, p.X, p.Y, nil); err != nil {
					t.Fatalf("point %d: %v", i, err)
				}
				if !vb.Drawing() {
					t.Fatalf("not drawing after point %d", i)
				}
			}
			l, _ := c.b.Layer(0)
			if len(l.Vectors) != 1 {
				t.Fatalf("vectors during gesture = %d, want 1", len(l.Vectors))
			}

			vb.Finish()
			if vb.Drawing() || vb.Vector() != nil {
				t.Fatalf("state not reset after Finish")
			}
			if !tt.wantKept {
				if len(l.Vectors) != 0 {
					t.Fatalf("short vector kept")
				}
				return
			}
			if len(l.Vectors) != 1 {
				t.Fatalf("vectors = %d, want 1", len(l.Vectors))
			}
			v := l.Vectors[0]
			if v.PointCount() != tt.wantCount || v.Type != board.TileStairs {
				t.Fatalf("vector = %+v", v)
			}
			for i, p := range tt.points {
				if v.Points[i] != p {
					t.Fatalf("point %d = %v, want %v", i, v.Points[i], p)
				}
			}
		})
	}
}

func TestEndPaintDoesNotFinishVector(t *testing.T) {
	c := newContainer(t, 4, 4)
	vb := NewVectorBrush(board.TileSolid)
	_ = paint(t, vb, c, 0, 0, nil)
	first := vb.Vector()
	if !vb.Drawing() {
		t.Fatalf("EndPaint closed the gesture")
	}
	_ = paint(t, vb, c, 32, 0, nil)
	if vb.Vector() != first {
		t.Fatalf("second click started a new vector")
	}

	vb.Finish()
	_ = paint(t, vb, c, 64, 64, nil)
	if vb.Vector() == first {
		t.Fatalf("new gesture reused finished vector")
	}
	l, _ := c.b.Layer(0)
	if len(l.Vectors) != 2 {
		t.Fatalf("vectors = %d, want 2", len(l.Vectors))
	}
}

func TestVectorPointsFireChanges(t *testing.T) {
	c := newContainer(t, 4, 4)
	fires := countFires(c.b)
	vb := NewVectorBrush(board.TileSolid)
	_ = paint(t, vb, c, 0, 0, nil)
	_ = paint(t, vb, c, 10, 0, nil)
	if *fires != 2 {
		t.Fatalf("fires = %d, want 2", *fires)
	}
	vb.Finish()
	if *fires != 2 {
		t.Fatalf("keeping a vector fired again")
	}
}

func TestClosedVector(t *testing.T) {
	c := newContainer(t, 4, 4)
	vb := NewVectorBrush(board.TileUnder)
	vb.SetClosed(true)
	for _, p := range []image.Point{{0, 0}, {32, 0}, {32, 32}} {
		_ = paint(t, vb, c, p.X, p.Y, nil)
	}
	vb.Finish()
	l, _ := c.b.Layer(0)
	if !l.Vectors[0].Closed {
		t.Fatalf("vector not closed")
	}
}

func TestProgramGesture(t *testing.T) {
	c := newContainer(t, 4, 4)
	pb := NewProgramBrush("door.tengo")
	_ = paint(t, pb, c, 0, 0, nil)
	if pb.Program() == nil || pb.Program().Script != "door.tengo" {
		t.Fatalf("program = %+v", pb.Program())
	}
	pb.Finish()
	l, _ := c.b.Layer(0)
	if len(l.Programs) != 0 {
		t.Fatalf("single point program kept")
	}

	for _, p := range []image.Point{{0, 0}, {32, 0}, {32, 32}} {
		_ = paint(t, pb, c, p.X, p.Y, nil)
	}
	pb.Finish()
	if len(l.Programs) != 1 || l.Programs[0].Vector.PointCount() != 3 {
		t.Fatalf("programs = %+v", l.Programs)
	}
	if len(l.Vectors) != 0 {
		t.Fatalf("program brush created a plain vector")
	}
	if pb.Program() != nil {
		t.Fatalf("program still reported after Finish")
	}
}

func TestFinishWithoutPointsIsNoop(t *testing.T) {
	vb := NewVectorBrush(board.TileSolid)
	vb.Finish()
	if vb.Drawing() {
		t.Fatalf("drawing after idle Finish")
	}
}

func TestLineBrush(t *testing.T) {
	c := newContainer(t, 5, 5)
	stone := tile(4)
	lb := NewLineBrush(stone)
	if err := paint(t, lb, c, 0, 0, nil); err != nil {
		t.Fatalf("anchor: %v", err)
	}
	if err := paint(t, lb, c, 4, 2, nil); err != nil {
		t.Fatalf("second click: %v", err)
	}
	for _, p := range BresenhamLine(0, 0, 4, 2) {
		if got, _ := c.b.TileAt(0, p.X, p.Y); got != stone {
			t.Fatalf("line cell %v missing", p)
		}
	}
	if got, _ := c.b.TileAt(0, 0, 4); got != nil {
		t.Fatalf("unexpected tile off line")
	}
	lb.Finish()
	if lb.Drawing() {
		t.Fatalf("line still drawing")
	}
}

func TestBresenhamLine(t *testing.T) {
	pts := BresenhamLine(0, 0, 3, 0)
	if len(pts) != 4 || pts[3] != image.Pt(3, 0) {
		t.Fatalf("horizontal = %v", pts)
	}
	pts = BresenhamLine(2, 2, 0, 0)
	if len(pts) != 3 || pts[0] != image.Pt(2, 2) || pts[2] != image.Pt(0, 0) {
		t.Fatalf("diagonal = %v", pts)
	}
}

func TestVectorPreview(t *testing.T) {
	c := newContainer(t, 4, 4)
	vb := NewVectorBrush(board.TileWaypoint)
	dst := image.NewRGBA(image.Rect(0, 0, 128, 128))
	vb.DrawPreview(dst, image.Pt(60, 10))
	if dst.RGBAAt(30, 10) != (color.RGBA{}) {
		t.Fatalf("idle brush drew a preview")
	}
	_ = paint(t, vb, c, 10, 10, nil)
	vb.DrawPreview(dst, image.Pt(60, 10))
	if dst.RGBAAt(30, 10) != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("preview = %v", dst.RGBAAt(30, 10))
	}
	if vb.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("Bounds = %v", vb.Bounds())
	}
}

func TestEqual(t *testing.T) {
	a, b := tile(1), tile(2)
	tests := []struct {
		name string
		x, y Brush
		want bool
	}{
		{name: "shape same", x: NewShapeBrush(a, 2, 2), y: NewShapeBrush(a, 2, 2), want: true},
		{name: "shape size", x: NewShapeBrush(a, 2, 2), y: NewShapeBrush(a, 1, 2)},
		{name: "shape tile", x: NewShapeBrush(a, 1, 1), y: NewShapeBrush(b, 1, 1)},
		{name: "bucket same", x: NewBucketBrush(a), y: NewBucketBrush(a), want: true},
		{name: "bucket vs shape", x: NewBucketBrush(a), y: NewShapeBrush(a, 1, 1)},
		{name: "custom same", x: NewCustomBrush([][]*board.Tile{{a, b}}), y: NewCustomBrush([][]*board.Tile{{a, b}}), want: true},
		{name: "custom differs", x: NewCustomBrush([][]*board.Tile{{a, b}}), y: NewCustomBrush([][]*board.Tile{{b, a}})},
		{name: "vector idle", x: NewVectorBrush(board.TileSolid), y: NewVectorBrush(board.TileSolid), want: true},
		{name: "vector type", x: NewVectorBrush(board.TileSolid), y: NewVectorBrush(board.TileUnder)},
		{name: "program script", x: NewProgramBrush("a.tengo"), y: NewProgramBrush("b.tengo")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.Equal(tt.y); got != tt.want {
				t.Fatalf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}
