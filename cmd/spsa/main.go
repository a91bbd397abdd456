package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/prefabs"
)

const (
	screenSize = 512
	scale      = 4
)

// previewGame plays one animation of a sprite prefab. Arrow keys pick the
// facing, so the standard north/east/south/west slots can be checked before
// a sprite is placed on a board.
type previewGame struct {
	lib   *assets.Library
	specs prefabs.Source
	name  string

	spec      prefabs.SpriteSpec
	animation int
	frames    []*ebiten.Image
	current   int
	tick      int
	ticksPer  int
	watcher   *prefabs.Watcher
}

func (g *previewGame) load() error {
	spec, err := prefabs.LoadSpriteSpec(g.specs, g.name)
	if err != nil {
		return err
	}
	if g.animation >= len(spec.Animations) {
		g.animation = 0
	}
	def := spec.Animations[g.animation]
	frames := make([]*ebiten.Image, 0, def.FrameCount)
	for i := 0; i < def.FrameCount; i++ {
		img, err := g.lib.Frame(g.name, g.animation, i)
		if err != nil {
			return err
		}
		frames = append(frames, ebiten.NewImageFromImage(img))
	}
	g.spec = spec
	g.frames = frames
	g.current = 0
	g.tick = 0
	g.ticksPer = 1
	if def.FPS > 0 {
		g.ticksPer = max(1, int(60/def.FPS))
	}
	return nil
}

func (g *previewGame) Update() error {
	if g.watcher != nil {
		if paths := g.watcher.Drain(); len(paths) > 0 {
			for _, p := range paths {
				g.lib.Invalidate(filepath.ToSlash(p))
			}
			if err := g.load(); err != nil {
				log.Printf("reload %s: %v", g.name, err)
			}
		}
	}

	keys := map[ebiten.Key]int{
		ebiten.KeyArrowUp:    prefabs.StandardNorth,
		ebiten.KeyArrowRight: prefabs.StandardEast,
		ebiten.KeyArrowDown:  prefabs.StandardSouth,
		ebiten.KeyArrowLeft:  prefabs.StandardWest,
	}
	for k, anim := range keys {
		if inpututil.IsKeyJustPressed(k) && anim < len(g.spec.Animations) && anim != g.animation {
			g.animation = anim
			if err := g.load(); err != nil {
				log.Printf("load %s: %v", g.name, err)
			}
		}
	}

	if len(g.frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPer {
		g.tick = 0
		g.current++
		if g.current >= len(g.frames) {
			g.current = 0
		}
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	if len(g.frames) == 0 {
		return
	}
	fw := g.frames[0].Bounds().Dx() * scale
	fh := g.frames[0].Bounds().Dy() * scale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64((screenSize-fw)/2), float64((screenSize-fh)/2))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.frames[g.current], op)

	def := g.spec.Animations[g.animation]
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %s  frame %d/%d", g.spec.Name, def.Name, g.current+1, len(g.frames)))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenSize, screenSize
}

func main() {
	name := flag.String("sprite", "hero", "Sprite prefab name")
	assetsDir := flag.String("dir", "", "Directory containing sprite sheets (embedded assets when empty)")
	spritesDir := flag.String("prefabs", "", "Directory containing sprite specs (embedded specs when empty)")
	flag.Parse()

	images := assets.FS()
	if *assetsDir != "" {
		images = os.DirFS(*assetsDir)
	}
	specs := prefabs.Sprites(*spritesDir)
	g := &previewGame{
		lib:       assets.NewLibrary(images, specs),
		specs:     specs,
		name:      *name,
		animation: prefabs.StandardSouth,
	}
	if err := g.load(); err != nil {
		log.Fatalf("load sprite: %v", err)
	}
	if *spritesDir != "" {
		w, err := prefabs.NewWatcher(*spritesDir)
		if err != nil {
			log.Printf("file watcher disabled: %v", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(screenSize, screenSize)
	ebiten.SetWindowTitle("Sprite Preview: " + *name)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
