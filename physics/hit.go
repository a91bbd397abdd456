// Package physics indexes board vectors and programs in a chipmunk space so
// the editor can find the shape nearest to a click.
package physics

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/rpgboard/board"
)

// Hit is the shape found by a query. Exactly one of Vector and Program is set.
type Hit struct {
	Layer    int
	Vector   *board.Vector
	Program  *board.Program
	Distance float64
}

// Shape returns the polyline that was hit.
func (h Hit) Shape() *board.Vector {
	if h.Program != nil {
		return h.Program.Vector
	}
	return h.Vector
}

// HitTester is a static snapshot of the board's shapes. Rebuild it after the
// board changes.
type HitTester struct {
	space  *cp.Space
	shapes map[*cp.Shape]Hit
}

// Build adds one segment per vector and program edge on every layer for which
// include returns true. A nil include takes all layers.
func Build(b *board.Board, include func(layer int) bool) *HitTester {
	if include == nil {
		return Collect(b, nil)
	}
	return Collect(b, func(h Hit) bool { return include(h.Layer) })
}

// Collect indexes only the shapes keep accepts. A nil keep takes every shape.
func Collect(b *board.Board, keep func(Hit) bool) *HitTester {
	ht := &HitTester{
		space:  cp.NewSpace(),
		shapes: make(map[*cp.Shape]Hit),
	}
	for i, l := range b.Layers() {
		for _, v := range l.Vectors {
			if h := (Hit{Layer: i, Vector: v}); keep == nil || keep(h) {
				ht.addVector(v, h)
			}
		}
		for _, p := range l.Programs {
			if p.Vector == nil {
				continue
			}
			if h := (Hit{Layer: i, Program: p}); keep == nil || keep(h) {
				ht.addVector(p.Vector, h)
			}
		}
	}
	return ht
}

func (ht *HitTester) addVector(v *board.Vector, hit Hit) {
	body := ht.space.StaticBody
	if v.PointCount() == 1 {
		p := cp.Vector{X: float64(v.Points[0].X), Y: float64(v.Points[0].Y)}
		ht.add(cp.NewCircle(body, 1, p), hit)
		return
	}
	for _, seg := range v.Segments() {
		a := cp.Vector{X: float64(seg[0].X), Y: float64(seg[0].Y)}
		bb := cp.Vector{X: float64(seg[1].X), Y: float64(seg[1].Y)}
		ht.add(cp.NewSegment(body, a, bb, 0), hit)
	}
}

func (ht *HitTester) add(shape *cp.Shape, hit Hit) {
	ht.space.AddShape(shape)
	ht.shapes[shape] = hit
}

func (ht *HitTester) Len() int {
	return len(ht.shapes)
}

// Nearest returns the shape closest to (x, y) within maxDist pixels.
func (ht *HitTester) Nearest(x, y, maxDist float64) (Hit, bool) {
	info := ht.space.PointQueryNearest(cp.Vector{X: x, Y: y}, maxDist, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return Hit{}, false
	}
	hit, ok := ht.shapes[info.Shape]
	if !ok {
		return Hit{}, false
	}
	hit.Distance = info.Distance
	return hit, true
}

// Crosses returns every shape the segment from a to b passes within radius
// of, nearest first. Distance is measured along the segment.
func (ht *HitTester) Crosses(ax, ay, bx, by, radius float64) []Hit {
	var hits []Hit
	start, end := cp.Vector{X: ax, Y: ay}, cp.Vector{X: bx, Y: by}
	length := start.Distance(end)
	ht.space.SegmentQuery(start, end, radius, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		if hit, ok := ht.shapes[shape]; ok {
			hit.Distance = alpha * length
			hits = append(hits, hit)
		}
	}, nil)
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Within returns every shape closer than maxDist to (x, y), nearest first.
func (ht *HitTester) Within(x, y, maxDist float64) []Hit {
	var hits []Hit
	p := cp.Vector{X: x, Y: y}
	ht.space.BBQuery(cp.NewBBForCircle(p, maxDist), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		hit, ok := ht.shapes[shape]
		if !ok {
			return
		}
		info := shape.PointQuery(p)
		if info.Distance >= maxDist {
			return
		}
		hit.Distance = info.Distance
		hits = append(hits, hit)
	}, nil)
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Layer < hits[j].Layer
	})
	return hits
}
