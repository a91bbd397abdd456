package main

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"

	"github.com/milk9111/rpgboard/render"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copyRegion publishes the part of the composited board under the tile
// selection sel as a PNG.
func copyRegion(frame *image.RGBA, sel image.Rectangle) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}
	r := render.SelectionRect(sel).Intersect(frame.Bounds())
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.SubImage(r)); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
