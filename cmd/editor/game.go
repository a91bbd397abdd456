package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/brush"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/editor"
	"github.com/milk9111/rpgboard/levels"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/programs"
)

const (
	minZoom = 0.25
	maxZoom = 4.0
)

// toolKeys switch tools with the number row.
var toolKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9, ebiten.Key0,
}

// EditorGame is the Ebiten game for the editor.
type EditorGame struct {
	cfg     config.Config
	ctx     *editor.Context
	ed      *editor.Editor
	lib     *assets.Library
	rt      *programs.Runtime
	watcher *prefabs.Watcher
	sources []watchSource
	editOps []editor.Option

	ui      *ebitenui.UI
	eui     *EditorUI
	palette *TilePalette

	tool   Tool
	script string
	closed bool

	canvas *ebiten.Image
	frame  *image.RGBA

	zoom       float64
	panX, panY float64
	isPanning  bool
	lastPanX   int
	lastPanY   int

	painting  bool
	selecting bool
	selFrom   image.Point
	status    string
}

// watchSource maps a watched directory to the cache that needs to hear
// about it.
type watchSource struct {
	dir        string
	invalidate func(name string)
}

func (g *EditorGame) setTool(t Tool) {
	if t == g.tool && g.ctx.Brush() != nil {
		return
	}
	g.tool = t
	g.eui.ToolBar.SetTool(t)
	if b := newBrush(t, g.ctx.LastTile(), g.script, g.closed); b != nil {
		g.ctx.SetBrush(b)
		g.ed.Activate()
	} else {
		g.ed.Deactivate()
		log.Printf("Switched to %s tool", t)
	}
}

func (g *EditorGame) refreshLayers() {
	views := g.ed.View().LayerViews()
	names := g.ed.LayerNames()
	entries := make([]LayerEntry, 0, len(views))
	for i, lv := range views {
		entries = append(entries, LayerEntry{
			Index:   i,
			Name:    names[i],
			Visible: lv.Visible(),
			Locked:  lv.Locked(),
			Opacity: lv.Opacity(),
		})
	}
	g.eui.Layers.SetLayers(entries)
	g.eui.Layers.SetSelected(g.ed.CurrentLayer())
}

func (g *EditorGame) layerActions() LayerActions {
	report := func(title string, err error) {
		if err != nil {
			showError(title, err)
		}
		g.refreshLayers()
	}
	return LayerActions{
		Select: func(idx int) {
			report("Select layer", g.ed.SetCurrentLayer(idx))
		},
		New: func() {
			g.ed.AddLayer()
			g.refreshLayers()
		},
		Delete: func(idx int) {
			report("Delete layer", g.ed.RemoveLayer(idx))
		},
		MoveUp: func(idx int) {
			g.ed.MoveLayerUp(idx)
			g.refreshLayers()
		},
		MoveDown: func(idx int) {
			g.ed.MoveLayerDown(idx)
			g.refreshLayers()
		},
		Rename: func(idx int, name string) {
			report("Rename layer", g.ed.RenameLayer(idx, name))
		},
		ToggleVisible: func(idx int) {
			report("Layer visibility", g.ed.ToggleLayerVisibility(idx))
		},
		ToggleLock: func(idx int) {
			report("Lock layer", g.ed.SetLayerLocked(idx, !g.ed.IsLocked(idx)))
		},
		Fade: func(idx int, delta float32) {
			lv, err := g.ed.View().LayerView(idx)
			if err != nil {
				report("Layer opacity", err)
				return
			}
			report("Layer opacity", g.ed.SetLayerOpacity(idx, lv.Opacity()+delta))
		},
	}
}

func (g *EditorGame) uiActions() UIActions {
	return UIActions{
		Tool:     g.setTool,
		Layers:   g.layerActions(),
		Save:     g.save,
		Open:     g.open,
		Toggle:   g.toggle,
		Script:   g.setScript,
		Validate: g.validate,
		TileSet: func(asset assets.AssetInfo) {
			ts, err := g.lib.TileSet(asset.Path)
			if err != nil {
				showError("Open tileset", err)
				return
			}
			g.palette.SetTileSet(ts)
		},
	}
}

func (g *EditorGame) boardPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(g.cfg.BoardsDir, name)
}

func (g *EditorGame) save(name string) {
	path := g.boardPath(name)
	var err error
	if path == "" {
		err = g.ed.Save()
	} else {
		err = g.ed.SaveAs(path)
	}
	if err == nil {
		g.status = "Saved " + g.ed.Board().Path
	}
}

func (g *EditorGame) open(name string) {
	path := g.boardPath(name)
	if path == "" {
		picked, err := pickBoardFile(false)
		if err != nil {
			showError("Open board", err)
			return
		}
		path = picked
	}
	ed, err := editor.Open(g.ctx, path, g.lib, g.editOps...)
	if err != nil {
		showError("Open board", err)
		return
	}
	g.ed.Close()
	g.ed = ed
	g.canvas = nil
	g.refreshLayers()
	g.status = "Opened " + path
	log.Printf("Opened board: %s", path)
}

func (g *EditorGame) toggle(name string) {
	o := &g.ctx.Options
	switch name {
	case "Grid":
		o.ShowGrid = !o.ShowGrid
	case "Coords":
		o.ShowCoordinates = !o.ShowCoordinates
	case "Vectors":
		o.ShowVectors = !o.ShowVectors
	case "Programs":
		o.ShowPrograms = !o.ShowPrograms
	case "Snap":
		g.ctx.Snap = !g.ctx.Snap
	case "Closed":
		g.closed = !g.closed
		if vb, ok := g.ctx.Brush().(interface{ SetClosed(bool) }); ok {
			vb.SetClosed(g.closed)
		}
	}
}

func (g *EditorGame) setScript(script string) {
	g.script = strings.TrimSpace(script)
	if err := g.rt.Validate(board.NewProgram(g.script)); err != nil {
		showError("Program script", err)
		return
	}
	if g.tool == ToolProgram {
		g.ctx.SetBrush(newBrush(ToolProgram, nil, g.script, false))
	}
}

func (g *EditorGame) validate() {
	errs := g.ed.ValidatePrograms()
	if len(errs) == 0 {
		g.status = "All scripts compile"
		return
	}
	showError("Program scripts", errors.Join(errs...))
}

// reload passes file changes from the watcher on to the caches.
func (g *EditorGame) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	for _, p := range changed {
		for _, src := range g.sources {
			rel, err := filepath.Rel(src.dir, p)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			src.invalidate(filepath.ToSlash(rel))
		}
	}
	if len(changed) > 0 {
		if ts := g.palette.TileSet(); ts != nil {
			if fresh, err := g.lib.TileSet(ts.Name); err == nil {
				g.palette.SetTileSet(fresh)
			}
		}
		g.ed.Board().FireBoardChanged()
		log.Printf("Reloaded %d changed files", len(changed))
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			log.Printf("watch: %v", err)
		}
	default:
	}
}

func (g *EditorGame) textFocused() bool {
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func (g *EditorGame) hotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.ed.Undo()
		g.refreshLayers()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.ed.Redo()
		g.refreshLayers()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save(g.eui.FileInput.GetText())
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.ed.SelectAll()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copySelection()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD):
		if _, err := g.ed.CaptureSelection(); err != nil {
			showError("Capture selection", err)
		}
	}
	if ctrl {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.cycleLayer(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.cycleLayer(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ed.AddLayer()
		g.refreshLayers()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if n := g.ed.DeleteSelected(); n > 0 {
			g.status = fmt.Sprintf("Deleted %d shapes", n)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ed.ClearSelection()
		g.ed.Deactivate()
		g.ed.Activate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.runSelectedProgram()
	}
	for i, k := range toolKeys {
		if i < len(toolNames) && inpututil.IsKeyJustPressed(k) {
			g.setTool(Tool(i))
		}
	}
}

func (g *EditorGame) cycleLayer(dir int) {
	n := len(g.ed.LayerNames())
	if n == 0 {
		return
	}
	if err := g.ed.SetCurrentLayer((g.ed.CurrentLayer() + dir + n) % n); err != nil {
		showError("Select layer", err)
		return
	}
	g.eui.Layers.SetSelected(g.ed.CurrentLayer())
}

func (g *EditorGame) copySelection() {
	sel, ok := g.ed.Selection()
	if !ok {
		showError("Copy", editor.ErrNoSelection)
		return
	}
	frame, err := g.ed.Render()
	if err != nil {
		showError("Copy", err)
		return
	}
	if err := copyRegion(frame, sel); err != nil {
		showError("Copy", err)
		return
	}
	g.status = "Copied selection"
}

// runSelectedProgram fires the first selected program on the current layer.
func (g *EditorGame) runSelectedProgram() {
	l, err := g.ed.Board().Layer(g.ed.CurrentLayer())
	if err != nil {
		return
	}
	for _, p := range l.Programs {
		if p.Vector == nil || !p.Vector.Selected {
			continue
		}
		res, err := g.ed.RunProgram(context.Background(), p, programs.EventActivate)
		if err != nil {
			showError("Run program", err)
			return
		}
		g.status = fmt.Sprintf("%s: %q", p.Script, res.Message)
		if res.Warp {
			g.status += " -> " + res.Target
		}
		return
	}
}

func (g *EditorGame) panZoom(cx, cy int) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.lastPanX, g.lastPanY = cx, cy
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		g.panX += float64(cx - g.lastPanX)
		g.panY += float64(cy - g.lastPanY)
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}

	// Zoom on the wheel, keeping the point under the cursor still.
	if _, wy := ebiten.Wheel(); wy != 0 && !ebuiinput.UIHovered {
		oldZoom := g.zoom
		if wy > 0 {
			g.zoom *= 1.1
		} else {
			g.zoom /= 1.1
		}
		g.zoom = float64(common.Clamp(float32(g.zoom), minZoom, maxZoom))
		if g.zoom != oldZoom {
			sx := float64(cx - leftPanelWidth)
			worldX := (sx - g.panX) / oldZoom
			worldY := (float64(cy) - g.panY) / oldZoom
			g.panX = sx - worldX*g.zoom
			g.panY = float64(cy) - worldY*g.zoom
		}
	}
}

// world converts a screen position into board pixels.
func (g *EditorGame) world(sx, sy int) (int, int) {
	wx := (float64(sx-leftPanelWidth) - g.panX) / g.zoom
	wy := (float64(sy) - g.panY) / g.zoom
	return int(wx), int(wy)
}

func (g *EditorGame) mouse(cx, cy int) {
	wx, wy := g.world(cx, cy)
	g.ed.PointerMoved(wx, wy)

	overPalette := g.palette.Contains(cx, cy)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && overPalette {
		g.palette.Press(cx, cy)
	}
	g.palette.Drag(cx, cy)
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.palette.Release(g.ctx) {
		// The context already swapped in a brush for the pick; only the
		// toolbar needs to follow.
		switch g.ctx.Brush().(type) {
		case *brush.BucketBrush, *brush.LineBrush:
		default:
			g.tool = ToolBrush
			g.eui.ToolBar.SetTool(ToolBrush)
		}
		g.ed.Activate()
		return
	}
	if ebuiinput.UIHovered || overPalette {
		return
	}

	tx, ty := common.PixelToTile(wx, wy)
	if g.tool == ToolSelect {
		g.selectTool(wx, wy, image.Pt(tx, ty))
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.painting = true
		g.ed.PointerPressed(wx, wy, editor.ButtonPrimary)
	} else if g.painting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.ed.PointerDragged(wx, wy)
	}
	if g.painting && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.painting = false
		g.ed.PointerReleased(wx, wy, editor.ButtonPrimary)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			if err := g.ed.SetStart(tx, ty); err != nil {
				showError("Set start", err)
			}
			return
		}
		g.ed.PointerPressed(wx, wy, editor.ButtonSecondary)
	}
}

// selectTool drags out a tile selection. A click without movement picks the
// vector or program under the pointer instead.
func (g *EditorGame) selectTool(wx, wy int, tile image.Point) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.selecting = true
		g.selFrom = tile
	}
	if g.selecting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && tile != g.selFrom {
		g.ed.SetSelection(image.Rectangle{Min: g.selFrom, Max: tile})
	}
	if g.selecting && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.selecting = false
		if tile == g.selFrom {
			g.ed.ClearSelection()
			g.ed.SelectAt(wx, wy)
		}
	}
}

func (g *EditorGame) Update() error {
	g.reload()
	if !g.textFocused() {
		g.hotkeys()
	}
	g.ui.Update()

	cx, cy := ebiten.CursorPosition()
	g.panZoom(cx, cy)
	g.mouse(cx, cy)

	frame, err := g.ed.Render()
	if err != nil {
		// Partial frames are still drawn; the failing passes were logged.
		g.status = err.Error()
	}
	g.frame = frame
	return nil
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		b := g.frame.Bounds()
		if g.canvas == nil || g.canvas.Bounds().Size() != b.Size() {
			g.canvas = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.canvas.WritePixels(g.frame.Pix)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(g.zoom, g.zoom)
		op.GeoM.Translate(g.panX+float64(leftPanelWidth), g.panY)
		screen.DrawImage(g.canvas, op)
	}

	g.palette.Draw(screen, g.ed.View().Palette())
	g.ui.Draw(screen)

	h := screen.Bounds().Dy()
	path := g.ed.Board().Path
	if path == "" {
		path = "(unsaved)"
	}
	line := fmt.Sprintf("%s  layer %d  tool %s  zoom %.2f", path, g.ed.CurrentLayer(), g.tool, g.zoom)
	if g.status != "" {
		line += "  " + g.status
	}
	ebitenutil.DebugPrintAt(screen, line, leftPanelWidth+8, h-20)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// paletteOrigin places the tile palette under the tileset list in the right
// panel.
func paletteOrigin(screenWidth int) image.Point {
	return image.Pt(screenWidth-rightPanelWidth+4, toolbarHeight+tileListHeight+16)
}

// openBoard picks the board the editor starts on: a file on disk, an
// embedded sample, or a blank board.
func openBoard(ctx *editor.Context, cfg config.Config, name string, lib *assets.Library, opts []editor.Option) (*editor.Editor, error) {
	if name == "" {
		return editor.NewBoard(ctx, cfg.Width, cfg.Height, opts...)
	}
	path := name
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	if !filepath.IsAbs(path) && !strings.ContainsRune(path, filepath.Separator) {
		path = filepath.Join(cfg.BoardsDir, path)
	}
	ed, err := editor.Open(ctx, path, lib, opts...)
	if err == nil {
		return ed, nil
	}
	b, ferr := levels.LoadFromFS(nil, filepath.Base(path), lib)
	if ferr != nil {
		return nil, err
	}
	b.Path = path
	return editor.New(ctx, b, opts...), nil
}
