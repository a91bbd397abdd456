package render

import (
	"fmt"
	"image"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/raster"
)

const (
	startMarkerSize = 15
	overlayAlpha    = 0.2
	thinLine        = 1
	thickLine       = 3
)

type pass struct {
	name    string
	enabled func(v *View, ov Overlay) bool
	run     func(v *View, dst *image.RGBA, ov Overlay) []error
}

// Order matters: each pass may cover what the previous ones drew.
var basePasses = []pass{
	{name: "background", run: paintBackground},
	{name: "tiles", run: paintTiles},
	{name: "sprites", enabled: func(v *View, _ Overlay) bool { return v.opts.ShowSprites }, run: paintSprites},
	{name: "start", enabled: func(v *View, _ Overlay) bool { return v.opts.ShowStart }, run: paintStart},
}

var overlayPasses = []pass{
	{name: "grid", enabled: func(v *View, _ Overlay) bool { return v.opts.ShowGrid }, run: paintGrid},
	{name: "coordinates", enabled: func(v *View, _ Overlay) bool { return v.opts.ShowCoordinates }, run: paintCoordinates},
	{name: "selection", enabled: func(_ *View, ov Overlay) bool { return ov.Selection != nil }, run: paintSelection},
	{name: "cursor", enabled: func(_ *View, ov Overlay) bool { return ov.ShowCursor && ov.Brush != nil }, run: paintCursor},
	{name: "vectors", enabled: func(v *View, _ Overlay) bool { return v.opts.ShowVectors }, run: paintVectors},
	{name: "programs", enabled: func(v *View, _ Overlay) bool { return v.opts.ShowPrograms }, run: paintPrograms},
	{name: "preview", enabled: func(_ *View, ov Overlay) bool { return ov.Brush != nil }, run: paintPreview},
}

func tileRect(x, y int) image.Rectangle {
	px, py := common.TileToPixel(x, y)
	return image.Rect(px, py, px+common.TileSize, py+common.TileSize)
}

func paintBackground(v *View, dst *image.RGBA, _ Overlay) []error {
	raster.Fill(dst, dst.Bounds(), v.palette.Background)
	return nil
}

func paintTiles(v *View, dst *image.RGBA, _ Overlay) []error {
	var errs []error
	for i, lv := range v.layers {
		if !lv.visible {
			continue
		}
		l, err := v.board.Layer(i)
		if err != nil {
			errs = append(errs, &PassError{Pass: "tiles", Layer: i, Element: "layer", Err: err})
			continue
		}
		missing := 0
		for y, row := range l.Tiles {
			for x, t := range row {
				if t == nil {
					continue
				}
				r := tileRect(x, y)
				img := t.Image()
				if img == nil {
					raster.FillAlpha(dst, r, v.palette.MissingTile, lv.opacity)
					missing++
					continue
				}
				raster.Blend(dst, r, img, lv.opacity)
			}
		}
		if missing > 0 {
			errs = append(errs, &PassError{Pass: "tiles", Layer: i, Element: fmt.Sprintf("%d tiles", missing), Err: ErrMissingImage})
		}
	}
	return errs
}

func paintSprites(v *View, dst *image.RGBA, _ Overlay) []error {
	var errs []error
	for i, lv := range v.layers {
		if !lv.visible {
			continue
		}
		l, err := v.board.Layer(i)
		if err != nil {
			continue
		}
		for _, s := range l.Sprites {
			if err := v.paintSprite(dst, s, lv.opacity); err != nil {
				errs = append(errs, &PassError{Pass: "sprites", Layer: i, Element: s.Name, Err: err})
			}
		}
	}
	return errs
}

func (v *View) paintSprite(dst *image.RGBA, s *board.Sprite, opacity float32) error {
	x := int(s.X)*common.TileSize + 1
	y := int(s.Y)*common.TileSize + 1
	placeholder := image.Rect(x, y, x+common.TileSize, y+common.TileSize)

	if v.sprites == nil {
		raster.Fill(dst, placeholder, v.palette.Placeholder)
		return ErrMissingImage
	}
	img, err := v.sprites.Frame(s.Name, prefabs.StandardSouth, prefabs.PreviewFrame)
	if err != nil || img == nil {
		raster.Fill(dst, placeholder, v.palette.Placeholder)
		if err == nil {
			err = ErrMissingImage
		}
		return err
	}
	raster.Blend(dst, image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x, y).Add(img.Bounds().Size())}, img, opacity)
	return nil
}

func paintStart(v *View, dst *image.RGBA, _ Overlay) []error {
	raster.Crosshair(dst, image.Pt(v.board.StartX, v.board.StartY), startMarkerSize, v.palette.Start)
	return nil
}

func paintGrid(v *View, dst *image.RGBA, _ Overlay) []error {
	b := dst.Bounds()
	for x := b.Min.X; x < b.Max.X; x += common.TileSize {
		raster.Line(dst, x, b.Min.Y, x, b.Max.Y-1, v.palette.Grid, thinLine)
	}
	for y := b.Min.Y; y < b.Max.Y; y += common.TileSize {
		raster.Line(dst, b.Min.X, y, b.Max.X-1, y, v.palette.Grid, thinLine)
	}
	return nil
}

func paintCoordinates(v *View, dst *image.RGBA, _ Overlay) []error {
	for y := 0; y < v.board.Height(); y++ {
		for x := 0; x < v.board.Width(); x++ {
			raster.Label(dst, tileRect(x, y), fmt.Sprintf("(%d,%d)", x, y), v.palette.Coordinates)
		}
	}
	return nil
}

// SelectionRect converts an inclusive tile selection into pixels.
func SelectionRect(sel image.Rectangle) image.Rectangle {
	sel = sel.Canon()
	x, y := common.TileToPixel(sel.Min.X, sel.Min.Y)
	return image.Rect(x, y, x+(sel.Dx()+1)*common.TileSize, y+(sel.Dy()+1)*common.TileSize)
}

func paintSelection(v *View, dst *image.RGBA, ov Overlay) []error {
	r := SelectionRect(*ov.Selection)
	raster.StrokeRect(dst, r, v.palette.Selection, thinLine)
	raster.FillAlpha(dst, r.Inset(1), v.palette.Selection, overlayAlpha)
	return nil
}

// CursorRect is the outline of a brush of the given bounds hovering tile.
func CursorRect(hover image.Point, brush image.Rectangle) image.Rectangle {
	bw, bh := brush.Dx(), brush.Dy()
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}
	x := hover.X*common.TileSize - (bw/2)*common.TileSize
	y := hover.Y*common.TileSize - (bh/2)*common.TileSize
	return image.Rect(x, y, x+bw*common.TileSize, y+bh*common.TileSize)
}

func paintCursor(v *View, dst *image.RGBA, ov Overlay) []error {
	r := CursorRect(ov.Hover, ov.Brush.Bounds())
	raster.StrokeRect(dst, r, v.palette.Cursor, thinLine)
	raster.FillAlpha(dst, r.Inset(1), v.palette.Cursor, overlayAlpha)
	return nil
}

func lineWidth(selected bool) int {
	if selected {
		return thickLine
	}
	return thinLine
}

func paintVectors(v *View, dst *image.RGBA, _ Overlay) []error {
	for i, lv := range v.layers {
		if !lv.visible {
			continue
		}
		l, err := v.board.Layer(i)
		if err != nil {
			continue
		}
		for _, vec := range l.Vectors {
			raster.Polyline(dst, vec.Points, vec.Closed, v.palette.VectorColor(vec.Type), lineWidth(vec.Selected))
		}
	}
	return nil
}

func paintPrograms(v *View, dst *image.RGBA, _ Overlay) []error {
	for i, lv := range v.layers {
		if !lv.visible {
			continue
		}
		l, err := v.board.Layer(i)
		if err != nil {
			continue
		}
		for _, p := range l.Programs {
			if p.Vector == nil {
				continue
			}
			raster.Polyline(dst, p.Vector.Points, p.Vector.Closed, v.palette.Program, lineWidth(p.Vector.Selected))
		}
	}
	return nil
}

func paintPreview(v *View, dst *image.RGBA, ov Overlay) []error {
	ov.Brush.DrawPreview(dst, ov.Cursor)
	return nil
}
