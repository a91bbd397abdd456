package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/levels"
	"github.com/milk9111/rpgboard/play"
	"github.com/milk9111/rpgboard/programs"
	"github.com/milk9111/rpgboard/render"
)

const (
	baseWidth  = 960
	baseHeight = 640

	// moveRepeat is how many frames a held direction key waits between
	// steps.
	moveRepeat = 10
)

type Game struct {
	frames int

	cfg     config.Config
	lib     *assets.Library
	rt      *programs.Runtime
	session *play.Session
	view    *render.View
	canvas  *ebiten.Image
	player  *Player

	paused    bool
	quit      bool
	pauseUI   *ebitenui.UI
	message   string
	messageUI *ebitenui.UI
	text      *widget.Text
	debug     bool
}

func NewGame(cfg config.Config, lib *assets.Library, rt *programs.Runtime, boardName, hero string) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		lib:    lib,
		rt:     rt,
		player: NewPlayer(lib, hero),
	}
	b, err := g.loadBoard(boardName)
	if err != nil {
		return nil, err
	}
	g.enter(b)
	g.pauseUI = NewPauseUI(g)
	g.messageUI, g.text = NewMessageUI(g)
	return g, nil
}

// loadBoard reads a board from the boards directory, falling back to the
// embedded samples.
func (g *Game) loadBoard(name string) (*board.Board, error) {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.cfg.BoardsDir, name)
	}
	b, err := levels.Load(path, g.lib)
	if err == nil {
		return b, nil
	}
	eb, ferr := levels.LoadFromFS(nil, filepath.Base(name), g.lib)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return eb, nil
}

func (g *Game) enter(b *board.Board) {
	if g.view != nil {
		g.view.Close()
	}
	opts := g.cfg.RenderOptions()
	opts.ShowGrid = false
	opts.ShowCoordinates = false
	opts.ShowVectors = g.debug
	opts.ShowPrograms = g.debug
	opts.ShowStart = false
	g.view = render.NewView(b,
		render.WithSprites(g.lib),
		render.WithPalette(g.cfg.RenderPalette()),
		render.WithOptions(opts),
	)
	g.session = play.NewSession(b, g.rt)
	log.Printf("Entered board %s at %d,%d", b.Path, b.StartX, b.StartY)
}

func (g *Game) showMessage(msg string) {
	g.message = msg
	g.text.Label = msg
}

func (g *Game) handle(events []play.Event, err error) {
	if err != nil && !errors.Is(err, play.ErrBlocked) {
		g.showMessage(err.Error())
		return
	}
	for _, e := range events {
		if e.Result.Message != "" {
			g.showMessage(e.Result.Message)
		}
	}
	target, ok := play.Warp(events)
	if !ok {
		return
	}
	b, lerr := g.loadBoard(target)
	if lerr != nil {
		g.showMessage(fmt.Sprintf("cannot warp to %s", target))
		log.Printf("warp %s: %v", target, lerr)
		return
	}
	g.enter(b)
}

// direction returns the held movement keys, stepping on the first frame and
// then every moveRepeat frames.
func direction() (int, int) {
	keys := []struct {
		keys   []ebiten.Key
		dx, dy int
	}{
		{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, 0, -1},
		{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, 0, 1},
		{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, -1, 0},
		{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, 1, 0},
	}
	for _, k := range keys {
		for _, key := range k.keys {
			if d := inpututil.KeyPressDuration(key); d > 0 && (d-1)%moveRepeat == 0 {
				return k.dx, k.dy
			}
		}
	}
	return 0, 0
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if g.message != "" {
		g.messageUI.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.message = ""
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		o := g.view.Options()
		o.ShowVectors, o.ShowPrograms = g.debug, g.debug
		g.view.SetOptions(o)
	}

	ctx := context.Background()
	moving := false
	if dx, dy := direction(); dx != 0 || dy != 0 {
		moving = true
		g.handle(g.session.Move(ctx, dx, dy))
	} else if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.handle(g.session.Activate(ctx))
	}
	g.player.Update(g.session.Facing, moving)
	return nil
}

// camera centers the party, clamped so the board edge stays on screen when
// the board is larger than the window.
func (g *Game) camera() (float64, float64) {
	size := g.view.Size()
	cx, cy := common.TileToPixel(g.session.X, g.session.Y)
	ox := float64(baseWidth/2 - cx - common.TileSize/2)
	oy := float64(baseHeight/2 - cy - common.TileSize/2)
	clamp := func(o float64, boardLen, screenLen int) float64 {
		if boardLen <= screenLen {
			return float64(screenLen-boardLen) / 2
		}
		return float64(common.Clamp(float32(o), float32(screenLen-boardLen), 0))
	}
	return clamp(ox, size.X, baseWidth), clamp(oy, size.Y, baseHeight)
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame, err := g.view.Render(render.Overlay{})
	if err != nil && g.frames%60 == 1 {
		log.Printf("render: %v", err)
	}
	b := frame.Bounds()
	if g.canvas == nil || g.canvas.Bounds().Size() != b.Size() {
		g.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.canvas.WritePixels(frame.Pix)

	ox, oy := g.camera()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(ox, oy)
	screen.DrawImage(g.canvas, op)

	px, py := common.TileToPixel(g.session.X, g.session.Y)
	g.player.Draw(screen, float64(px)+ox, float64(py)+oy)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    party %d,%d", g.frames, ebiten.ActualFPS(), g.session.X, g.session.Y))
	}
	if g.message != "" {
		g.messageUI.Draw(screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
