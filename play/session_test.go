package play

import (
	"context"
	"errors"
	"testing"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/levels"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/programs"
)

type noTiles struct{}

func (noTiles) Tile(set string, index int) (*board.Tile, error) {
	return board.NewTile(set, index, nil), nil
}

func village(t *testing.T) *Session {
	t.Helper()
	b, err := levels.LoadFromFS(nil, "village.json", noTiles{})
	if err != nil {
		t.Fatalf("LoadFromFS: %v", err)
	}
	return NewSession(b, programs.NewRuntime(prefabs.Scripts("")))
}

func TestMoveBlocked(t *testing.T) {
	tests := []struct {
		name       string
		moves      [][2]int
		wantX      int
		wantY      int
		wantFacing int
	}{
		{"free step", [][2]int{{1, 0}}, 2, 2, prefabs.StandardEast},
		{"wall", [][2]int{{0, -1}, {0, -1}}, 1, 1, prefabs.StandardNorth},
		{"edge", [][2]int{{-1, 0}, {-1, 0}}, 0, 2, prefabs.StandardWest},
		{"diagonal moves horizontally", [][2]int{{1, 1}}, 2, 2, prefabs.StandardEast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := village(t)
			var lastErr error
			for _, m := range tt.moves {
				_, lastErr = s.Move(context.Background(), m[0], m[1])
			}
			if s.X != tt.wantX || s.Y != tt.wantY || s.Facing != tt.wantFacing {
				t.Fatalf("party at %d,%d facing %d, want %d,%d facing %d", s.X, s.Y, s.Facing, tt.wantX, tt.wantY, tt.wantFacing)
			}
			if tt.name != "free step" && tt.name != "diagonal moves horizontally" && !errors.Is(lastErr, ErrBlocked) {
				t.Fatalf("last move err = %v, want ErrBlocked", lastErr)
			}
		})
	}
}

func TestStepOntoDoorWarps(t *testing.T) {
	s := village(t)
	var events []Event
	for i := 0; i < 3; i++ {
		evs, err := s.Move(context.Background(), 1, 0)
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		events = append(events, evs...)
	}
	if len(events) != 1 || events[0].Program.Script != "door.tengo" {
		t.Fatalf("events = %+v, want the door once", events)
	}
	if got := events[0].Result.Message; got != "door at (4,2) -> house.json" {
		t.Fatalf("message = %q", got)
	}
	target, ok := Warp(events)
	if !ok || target != "house.json" {
		t.Fatalf("Warp = %q, %v", target, ok)
	}

	// Standing inside the door does not fire again.
	evs, err := s.Move(context.Background(), 0, 0)
	if err != nil || len(evs) != 0 {
		t.Fatalf("turning in place fired %+v, %v", evs, err)
	}
}

func TestActivateSign(t *testing.T) {
	s := village(t)
	events, err := s.Activate(context.Background())
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if len(events) != 1 || events[0].Result.Message != "WELCOME TO THE VILLAGE" {
		t.Fatalf("events = %+v", events)
	}
	if _, ok := Warp(events); ok {
		t.Fatalf("sign should not warp")
	}
}

func TestContains(t *testing.T) {
	v := board.NewVector(board.TileNone)
	for _, p := range [][2]int{{0, 0}, {64, 0}, {64, 64}, {0, 64}} {
		v.AddPoint(p[0], p[1])
	}
	v.Closed = true
	tests := []struct {
		x, y float64
		want bool
	}{
		{16, 16, true},
		{48, 48, true},
		{80, 16, false},
		{16, -16, false},
	}
	for _, tt := range tests {
		if got := contains(v, tt.x, tt.y); got != tt.want {
			t.Fatalf("contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
