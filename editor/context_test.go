package editor

import (
	"testing"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/brush"
)

func TestSelectTile(t *testing.T) {
	tile := testTile("a.png")
	tests := []struct {
		name  string
		start brush.Brush
		check func(t *testing.T, b brush.Brush)
	}{
		{
			name:  "shape brush takes the tile",
			start: brush.NewShapeBrush(nil, 2, 2),
			check: func(t *testing.T, b brush.Brush) {
				s, ok := b.(*brush.ShapeBrush)
				if !ok || s.Tile() != tile || s.Bounds().Dx() != 2 {
					t.Fatalf("brush = %#v", b)
				}
			},
		},
		{
			name:  "bucket pours the tile",
			start: brush.NewBucketBrush(nil),
			check: func(t *testing.T, b brush.Brush) {
				if bb, ok := b.(*brush.BucketBrush); !ok || bb.PourTile() != tile {
					t.Fatalf("brush = %#v", b)
				}
			},
		},
		{
			name:  "line draws with the tile",
			start: brush.NewLineBrush(nil),
			check: func(t *testing.T, b brush.Brush) {
				if lb, ok := b.(*brush.LineBrush); !ok || lb.Tile() != tile {
					t.Fatalf("brush = %#v", b)
				}
			},
		},
		{
			name:  "vector brush is replaced",
			start: brush.NewVectorBrush(board.TileSolid),
			check: func(t *testing.T, b brush.Brush) {
				s, ok := b.(*brush.ShapeBrush)
				if !ok || s.Tile() != tile || s.Bounds().Dx() != 1 {
					t.Fatalf("brush = %#v", b)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext()
			ctx.SetLogger(quietLogger())
			ctx.SetBrush(tt.start)
			ctx.SelectTile(tile)
			tt.check(t, ctx.Brush())
			if ctx.LastTile() != tile {
				t.Fatalf("LastTile = %v", ctx.LastTile())
			}
		})
	}
}

func TestSelectRegion(t *testing.T) {
	a, b := testTile("a.png"), testTile("b.png")
	ctx := NewContext()
	ctx.SetLogger(quietLogger())

	ctx.SelectRegion(nil)
	if _, ok := ctx.Brush().(*brush.ShapeBrush); !ok {
		t.Fatalf("empty region changed the brush to %T", ctx.Brush())
	}
	ctx.SelectRegion([][]*board.Tile{{a}})
	if s := ctx.Brush().(*brush.ShapeBrush); s.Tile() != a {
		t.Fatalf("single cell region did not act like SelectTile")
	}
	ctx.SelectRegion([][]*board.Tile{{a, b}})
	if _, ok := ctx.Brush().(*brush.CustomBrush); !ok {
		t.Fatalf("brush = %T, want custom", ctx.Brush())
	}
}

func TestHistoryDepth(t *testing.T) {
	h := newHistory(2)
	b1, _ := board.New(1, 1)
	b2, _ := board.New(2, 2)
	b3, _ := board.New(3, 3)
	cur, _ := board.New(4, 4)
	h.push(b1)
	h.push(b2)
	h.push(b3)
	if len(h.undo) != 2 || h.undo[0] != b2 {
		t.Fatalf("oldest snapshot not dropped")
	}
	snap, ok := h.popUndo(cur)
	if !ok || snap != b3 || len(h.redo) != 1 {
		t.Fatalf("popUndo = %v %v", snap, ok)
	}
	h.push(b1)
	if len(h.redo) != 0 {
		t.Fatalf("push kept redo entries")
	}

	off := newHistory(0)
	off.push(b1)
	if _, ok := off.popUndo(cur); ok {
		t.Fatalf("zero depth history recorded a snapshot")
	}
}
