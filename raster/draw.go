package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/milk9111/rpgboard/common"
)

func alphaMask(alpha float32) image.Image {
	a := common.Clamp(alpha, 0, 1)
	return image.NewUniform(color.Alpha{A: uint8(a*255 + 0.5)})
}

// Fill paints r with col over dst.
func Fill(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// FillAlpha blends col into r at the given opacity.
func FillAlpha(dst *image.RGBA, r image.Rectangle, col color.Color, alpha float32) {
	draw.DrawMask(dst, r, image.NewUniform(col), image.Point{}, alphaMask(alpha), image.Point{}, draw.Over)
}

// Blend composites src into r at the given opacity. Pixels of src are read
// from its top-left corner; anything outside r is clipped.
func Blend(dst *image.RGBA, r image.Rectangle, src image.Image, opacity float32) {
	if src == nil || opacity <= 0 {
		return
	}
	sb := src.Bounds()
	if opacity >= 1 {
		draw.Draw(dst, r, src, sb.Min, draw.Over)
		return
	}
	draw.DrawMask(dst, r, src, sb.Min, alphaMask(opacity), image.Point{}, draw.Over)
}

// StrokeRect outlines r with lines of the given thickness drawn inward.
func StrokeRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	if thick < 1 {
		thick = 1
	}
	src := image.NewUniform(col)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
		image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(r), src, image.Point{}, draw.Over)
	}
}

// Line draws a Bresenham line with a square pen of the given thickness.
func Line(dst *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := common.Abs(x1 - x0)
	dy := -common.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		pen(dst, x0, y0, col, thick)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func pen(dst *image.RGBA, x, y int, col color.Color, thick int) {
	if thick <= 1 {
		if image.Pt(x, y).In(dst.Bounds()) {
			dst.Set(x, y, col)
		}
		return
	}
	half := thick / 2
	r := image.Rect(x-half, y-half, x-half+thick, y-half+thick).Intersect(dst.Bounds())
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// Polyline connects consecutive points and, when closed, the last to the first.
func Polyline(dst *image.RGBA, pts []image.Point, closed bool, col color.Color, thick int) {
	for i := 0; i+1 < len(pts); i++ {
		Line(dst, pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, col, thick)
	}
	if closed && len(pts) > 1 {
		last := pts[len(pts)-1]
		Line(dst, last.X, last.Y, pts[0].X, pts[0].Y, col, thick)
	}
}

// Crosshair draws a plus sign whose arms extend size pixels from center.
func Crosshair(dst *image.RGBA, center image.Point, size int, col color.Color) {
	Line(dst, center.X-size, center.Y, center.X+size, center.Y, col, 1)
	Line(dst, center.X, center.Y-size, center.X, center.Y+size, col, 1)
}

// Label draws s centered inside r.
func Label(dst *image.RGBA, r image.Rectangle, s string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	w := d.MeasureString(s).Ceil()
	m := basicfont.Face7x13.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}
