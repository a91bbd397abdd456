package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/prefabs"
)

// walkTicks is how many frames each walk frame stays up.
const walkTicks = 8

// Player draws the party with a sprite prefab, one animation per facing.
type Player struct {
	lib    *assets.Library
	sprite string

	facing int
	frame  int
	tick   int
	moving bool

	// frames caches uploaded frames by animation and index.
	frames map[[2]int]*ebiten.Image
	failed bool
}

func NewPlayer(lib *assets.Library, sprite string) *Player {
	return &Player{
		lib:    lib,
		sprite: sprite,
		facing: prefabs.StandardSouth,
		frames: make(map[[2]int]*ebiten.Image),
	}
}

func (p *Player) Update(facing int, moving bool) {
	if facing != p.facing {
		p.facing = facing
		p.frame = 0
		p.tick = 0
	}
	if moving {
		p.moving = true
	}
	if !p.moving {
		return
	}
	p.tick++
	if p.tick < walkTicks {
		return
	}
	p.tick = 0
	p.frame++
	if _, ok := p.image(p.facing, p.frame); !ok {
		p.frame = 0
		p.moving = moving
	}
}

func (p *Player) image(animation, frame int) (*ebiten.Image, bool) {
	key := [2]int{animation, frame}
	if img, ok := p.frames[key]; ok {
		return img, true
	}
	src, err := p.lib.Frame(p.sprite, animation, frame)
	if err != nil {
		if frame == 0 && !p.failed {
			log.Printf("player sprite %s: %v", p.sprite, err)
			p.failed = true
		}
		return nil, false
	}
	img := ebiten.NewImageFromImage(src)
	p.frames[key] = img
	return img, true
}

// Draw puts the party on the tile whose top-left screen position is x, y.
// Sprites taller than a tile stand on the tile's bottom edge.
func (p *Player) Draw(screen *ebiten.Image, x, y float64) {
	img, ok := p.image(p.facing, p.frame)
	if !ok {
		vector.DrawFilledRect(screen, float32(x)+4, float32(y)+4, common.TileSize-8, common.TileSize-8, colornames.Orange, false)
		return
	}
	size := img.Bounds().Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x+float64(common.TileSize-size.X)/2, y+float64(common.TileSize-size.Y))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}
