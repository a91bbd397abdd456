package brush

import (
	"image"
	"image/color"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/raster"
	"github.com/milk9111/rpgboard/render"
)

type pathGesture struct {
	board  *board.Board
	vector *board.Vector
	detach func()
}

// pathBrush is the click-per-point state machine shared by vectors and
// programs. The first DoPaint of a session creates the shape on the bound
// layer; every call adds one point.
type pathBrush struct {
	binding
	gesture *pathGesture
	attach  func(l *board.Layer) (*board.Vector, func())
	color   color.RGBA
}

func (p *pathBrush) DoPaint(x, y int, _ *image.Rectangle) error {
	b, layer, err := p.target()
	if err != nil {
		return err
	}
	if p.gesture == nil {
		l, err := b.Layer(layer)
		if err != nil {
			return err
		}
		v, detach := p.attach(l)
		p.gesture = &pathGesture{board: b, vector: v, detach: detach}
	}
	p.gesture.vector.AddPoint(x, y)
	p.gesture.board.FireBoardChanged()
	return nil
}

func (p *pathBrush) Drawing() bool {
	return p.gesture != nil
}

// Finish ends the session. A shape with fewer than two points is removed
// from its layer.
func (p *pathBrush) Finish() {
	g := p.gesture
	if g == nil {
		return
	}
	p.gesture = nil
	if g.vector.PointCount() < 2 {
		g.detach()
		g.board.FireBoardChanged()
	}
}

func (p *pathBrush) current() *board.Vector {
	if p.gesture == nil {
		return nil
	}
	return p.gesture.vector
}

func (p *pathBrush) DrawPreview(dst *image.RGBA, cursor image.Point) {
	v := p.current()
	if v == nil || v.PointCount() == 0 {
		return
	}
	last := v.Points[len(v.Points)-1]
	raster.Line(dst, last.X, last.Y, cursor.X, cursor.Y, p.color, 1)
}

func (p *pathBrush) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1, 1)
}

// VectorBrush draws collision and navigation vectors.
type VectorBrush struct {
	pathBrush
	tileType board.TileType
	closed   bool
}

func NewVectorBrush(t board.TileType) *VectorBrush {
	vb := &VectorBrush{tileType: t}
	vb.color = render.DefaultPalette().VectorColor(t)
	vb.attach = func(l *board.Layer) (*board.Vector, func()) {
		v := board.NewVector(vb.tileType)
		v.Closed = vb.closed
		l.AddVector(v)
		return v, func() { l.RemoveVector(v) }
	}
	return vb
}

func (vb *VectorBrush) TileType() board.TileType {
	return vb.tileType
}

// SetClosed makes new vectors polygons. The vector in progress is unchanged.
func (vb *VectorBrush) SetClosed(closed bool) {
	vb.closed = closed
}

// Vector is the vector being drawn, or nil between gestures.
func (vb *VectorBrush) Vector() *board.Vector {
	return vb.current()
}

func (vb *VectorBrush) Equal(other Brush) bool {
	o, ok := other.(*VectorBrush)
	return ok && o.tileType == vb.tileType && o.current() == vb.current()
}

// ProgramBrush draws trigger regions bound to a script.
type ProgramBrush struct {
	pathBrush
	script  string
	program *board.Program
}

func NewProgramBrush(script string) *ProgramBrush {
	pb := &ProgramBrush{script: script}
	pb.color = render.DefaultPalette().Program
	pb.attach = func(l *board.Layer) (*board.Vector, func()) {
		prog := board.NewProgram(pb.script)
		l.AddProgram(prog)
		pb.program = prog
		return prog.Vector, func() { l.RemoveProgram(prog) }
	}
	return pb
}

func (pb *ProgramBrush) Script() string {
	return pb.script
}

func (pb *ProgramBrush) SetScript(script string) {
	pb.script = script
}

// Program is the program being drawn, or nil between gestures.
func (pb *ProgramBrush) Program() *board.Program {
	if !pb.Drawing() {
		return nil
	}
	return pb.program
}

func (pb *ProgramBrush) Equal(other Brush) bool {
	o, ok := other.(*ProgramBrush)
	return ok && o.script == pb.script && o.Program() == pb.Program()
}
