// Package play walks a party over a board the way the game would: solid
// vectors block movement and programs fire when the party steps onto them or
// activates them.
package play

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/physics"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/programs"
)

var ErrBlocked = errors.New("play: blocked")

// reach is how close, in pixels, a program edge must pass to a tile center
// for the program to cover that tile.
const reach = common.TileSize / 2

// Event is one program that ran.
type Event struct {
	Program *board.Program
	Result  programs.Result
}

type Option func(*Session)

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is the party on one board.
type Session struct {
	board  *board.Board
	rt     *programs.Runtime
	logger *log.Logger

	solids   *physics.HitTester
	triggers *physics.HitTester

	X, Y   int
	Facing int
	// inside holds the programs covering the party's tile so a step event
	// fires on entry only.
	inside map[*board.Program]bool
}

// NewSession places the party on the board's start tile facing south.
func NewSession(b *board.Board, rt *programs.Runtime, opts ...Option) *Session {
	s := &Session{
		board:  b,
		rt:     rt,
		logger: log.Default(),
		Facing: prefabs.StandardSouth,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Rebuild()
	s.X, s.Y = b.StartX, b.StartY
	s.inside = s.covering(s.X, s.Y)
	return s
}

func (s *Session) Board() *board.Board {
	return s.board
}

// Rebuild re-indexes the board's shapes after it changed.
func (s *Session) Rebuild() {
	s.solids = physics.Collect(s.board, func(h physics.Hit) bool {
		return h.Vector != nil && h.Vector.Type == board.TileSolid
	})
	s.triggers = physics.Collect(s.board, func(h physics.Hit) bool {
		return h.Program != nil
	})
}

func center(x, y int) (float64, float64) {
	px, py := common.TileToPixel(x, y)
	return float64(px + common.TileSize/2), float64(py + common.TileSize/2)
}

func facingFor(dx, dy int) int {
	switch {
	case dy < 0:
		return prefabs.StandardNorth
	case dx > 0:
		return prefabs.StandardEast
	case dx < 0:
		return prefabs.StandardWest
	}
	return prefabs.StandardSouth
}

func (s *Session) front() (int, int) {
	switch s.Facing {
	case prefabs.StandardNorth:
		return s.X, s.Y - 1
	case prefabs.StandardEast:
		return s.X + 1, s.Y
	case prefabs.StandardWest:
		return s.X - 1, s.Y
	}
	return s.X, s.Y + 1
}

// covering lists the programs over tile x, y. A closed program covers the
// tiles whose center it encloses; an open one covers the tiles on either side
// of its line.
func (s *Session) covering(x, y int) map[*board.Program]bool {
	cx, cy := center(x, y)
	out := make(map[*board.Program]bool)
	for _, h := range s.triggers.Within(cx, cy, reach+1) {
		if !closed(h.Program.Vector) {
			out[h.Program] = true
		}
	}
	for _, l := range s.board.Layers() {
		for _, p := range l.Programs {
			if closed(p.Vector) && contains(p.Vector, cx, cy) {
				out[p] = true
			}
		}
	}
	return out
}

func closed(v *board.Vector) bool {
	return v != nil && v.Closed && v.PointCount() >= 3
}

// contains is an even-odd test of x, y against the polygon v.
func contains(v *board.Vector, x, y float64) bool {
	in := false
	pts := v.Points
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		xi, yi := float64(pts[i].X), float64(pts[i].Y)
		xj, yj := float64(pts[j].X), float64(pts[j].Y)
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

// Move steps one tile. The party turns even when the step is blocked by the
// board edge or a solid vector. Programs the party walks onto get a step
// event.
func (s *Session) Move(ctx context.Context, dx, dy int) ([]Event, error) {
	dx, dy = common.Sign(dx), common.Sign(dy)
	if dx != 0 && dy != 0 {
		dy = 0
	}
	s.Facing = facingFor(dx, dy)
	if dx == 0 && dy == 0 {
		return nil, nil
	}

	nx, ny := s.X+dx, s.Y+dy
	if !s.board.InBounds(nx, ny) {
		return nil, fmt.Errorf("%w: edge of board at %d,%d", ErrBlocked, nx, ny)
	}
	ax, ay := center(s.X, s.Y)
	bx, by := center(nx, ny)
	if hits := s.solids.Crosses(ax, ay, bx, by, 0); len(hits) > 0 {
		return nil, fmt.Errorf("%w: solid vector on layer %d", ErrBlocked, hits[0].Layer)
	}
	s.X, s.Y = nx, ny

	now := s.covering(nx, ny)
	var entered []*board.Program
	for _, l := range s.board.Layers() {
		for _, p := range l.Programs {
			if now[p] && !s.inside[p] {
				entered = append(entered, p)
			}
		}
	}
	s.inside = now
	return s.run(ctx, entered, programs.EventStep, nx, ny)
}

// Activate fires the programs on the tile the party faces.
func (s *Session) Activate(ctx context.Context) ([]Event, error) {
	fx, fy := s.front()
	if !s.board.InBounds(fx, fy) {
		return nil, nil
	}
	hits := s.covering(fx, fy)
	var ps []*board.Program
	for _, l := range s.board.Layers() {
		for _, p := range l.Programs {
			if hits[p] {
				ps = append(ps, p)
			}
		}
	}
	return s.run(ctx, ps, programs.EventActivate, fx, fy)
}

func (s *Session) run(ctx context.Context, ps []*board.Program, event string, x, y int) ([]Event, error) {
	var events []Event
	var errs []error
	for _, p := range ps {
		px, py := common.TileToPixel(x, y)
		res, err := s.rt.Run(ctx, p, programs.Trigger{Event: event, X: px, Y: py, Layer: s.layerOf(p)})
		if err != nil {
			s.logger.Printf("play: %s %s: %v", event, p.Script, err)
			errs = append(errs, err)
			continue
		}
		events = append(events, Event{Program: p, Result: res})
		if res.Warp {
			break
		}
	}
	return events, errors.Join(errs...)
}

func (s *Session) layerOf(p *board.Program) int {
	for i, l := range s.board.Layers() {
		for _, q := range l.Programs {
			if q == p {
				return i
			}
		}
	}
	return -1
}

// Warp returns the first warp target among events, if any.
func Warp(events []Event) (string, bool) {
	for _, e := range events {
		if e.Result.Warp && e.Result.Target != "" {
			return e.Result.Target, true
		}
	}
	return "", false
}
