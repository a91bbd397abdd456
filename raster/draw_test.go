package raster

import (
	"image"
	"image/color"
	"testing"
)

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Bounds(), color.Black)
	return img
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{in: "#6464ff", want: color.RGBA{R: 100, G: 100, B: 255, A: 255}},
		{in: "#ff000080", want: color.RGBA{R: 255, A: 128}},
		{in: "yellow", want: color.RGBA{R: 255, G: 255, A: 255}},
		{in: " Magenta ", want: color.RGBA{R: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	for _, bad := range []string{"", "#12", "#gg0000", "notacolor"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestLineEndpointsAndThickness(t *testing.T) {
	img := newCanvas(20, 20)
	white := color.RGBA{255, 255, 255, 255}
	Line(img, 2, 2, 12, 7, white, 1)
	if img.RGBAAt(2, 2) != white || img.RGBAAt(12, 7) != white {
		t.Fatalf("endpoints not drawn")
	}
	if img.RGBAAt(2, 3) == white {
		t.Fatalf("thin line bled below start")
	}

	img = newCanvas(20, 20)
	Line(img, 5, 10, 15, 10, white, 3)
	for _, y := range []int{9, 10, 11} {
		if img.RGBAAt(10, y) != white {
			t.Fatalf("thick line missing row %d", y)
		}
	}
	if img.RGBAAt(10, 12) == white {
		t.Fatalf("thick line wider than 3")
	}
}

func TestLineClipsOutsideCanvas(t *testing.T) {
	img := newCanvas(8, 8)
	Line(img, -5, -5, 20, 20, color.White, 3)
	if img.RGBAAt(4, 4) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("diagonal not drawn inside canvas")
	}
}

func TestPolylineClosed(t *testing.T) {
	img := newCanvas(20, 20)
	red := color.RGBA{R: 255, A: 255}
	pts := []image.Point{{2, 2}, {15, 2}, {15, 15}}
	Polyline(img, pts, false, red, 1)
	if img.RGBAAt(8, 8) == red {
		t.Fatalf("open polyline drew closing edge")
	}
	Polyline(img, pts, true, red, 1)
	if img.RGBAAt(8, 8) != red {
		t.Fatalf("closed polyline missing closing edge")
	}
}

func TestFillAlphaBlends(t *testing.T) {
	img := newCanvas(4, 4)
	FillAlpha(img, img.Bounds(), color.RGBA{R: 255, A: 255}, 0.5)
	got := img.RGBAAt(1, 1)
	if got.R < 120 || got.R > 135 || got.A != 255 {
		t.Fatalf("half red over black = %v", got)
	}
}

func TestBlendOpacity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	Fill(src, src.Bounds(), color.RGBA{B: 255, A: 255})

	img := newCanvas(4, 4)
	Blend(img, image.Rect(2, 2, 4, 4), src, 1)
	if img.RGBAAt(3, 3) != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("opaque blend = %v", img.RGBAAt(3, 3))
	}
	if img.RGBAAt(1, 1) != (color.RGBA{A: 255}) {
		t.Fatalf("blend outside target touched")
	}

	img = newCanvas(4, 4)
	Blend(img, image.Rect(0, 0, 1, 1), src, 1)
	if img.RGBAAt(1, 1) != (color.RGBA{A: 255}) {
		t.Fatalf("blend not clipped to target rect")
	}

	img = newCanvas(4, 4)
	Blend(img, image.Rect(0, 0, 2, 2), src, 0)
	if img.RGBAAt(0, 0) != (color.RGBA{A: 255}) {
		t.Fatalf("zero opacity drew")
	}
}

func TestStrokeRect(t *testing.T) {
	img := newCanvas(40, 40)
	blue := color.RGBA{100, 100, 255, 255}
	StrokeRect(img, image.Rect(5, 5, 35, 35), blue, 1)
	if img.RGBAAt(5, 20) != blue || img.RGBAAt(34, 20) != blue || img.RGBAAt(20, 5) != blue || img.RGBAAt(20, 34) != blue {
		t.Fatalf("edges not drawn")
	}
	if img.RGBAAt(20, 20) == blue {
		t.Fatalf("interior filled")
	}
}

func TestLabelDrawsInsideRect(t *testing.T) {
	img := newCanvas(64, 32)
	r := image.Rect(0, 0, 64, 32)
	Label(img, r, "(1,2)", color.White)
	drawn := false
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y).R > 0 {
				drawn = true
			}
		}
	}
	if !drawn {
		t.Fatalf("label drew nothing")
	}
	for y := 0; y < 32; y++ {
		if img.RGBAAt(0, y).R > 0 || img.RGBAAt(63, y).R > 0 {
			t.Fatalf("label not centered")
		}
	}
}
