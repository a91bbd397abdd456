package main

import (
	"bytes"
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.design/x/clipboard"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/levels"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/render"
)

// boardpng renders a board headlessly with the editor's compositor and
// writes it out as a PNG.
func main() {
	boardPath := flag.String("board", "village.json", "Board file, or the name of an embedded sample board")
	out := flag.String("out", "", "Output PNG (defaults to the board name with .png)")
	configPath := flag.String("config", "editor.yaml", "Editor config file for overlays and palette")
	assetsDir := flag.String("dir", "", "Directory containing tileset and sprite images (embedded assets when empty)")
	copyOut := flag.Bool("clip", false, "Also copy the image to the clipboard")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}

	images := assets.FS()
	if cfg.AssetsDir != "" {
		images = os.DirFS(cfg.AssetsDir)
	}
	spritesDir := ""
	if cfg.PrefabsDir != "" {
		spritesDir = filepath.Join(cfg.PrefabsDir, "sprites")
	}
	lib := assets.NewLibrary(images, prefabs.Sprites(spritesDir), assets.WithSourceTileSize(cfg.SourceTileSize))

	b, err := loadBoard(*boardPath, lib)
	if err != nil {
		log.Fatalf("load board: %v", err)
	}

	img, err := renderBoard(b, cfg, lib)
	if err != nil {
		// A partial image is still written; the failing passes were logged.
		log.Printf("render: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("encode: %v", err)
	}
	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(filepath.Base(*boardPath), filepath.Ext(*boardPath)) + ".png"
	}
	if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("write %s: %v", dst, err)
	}
	log.Printf("Wrote %s (%dx%d)", dst, img.Bounds().Dx(), img.Bounds().Dy())

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			log.Fatalf("clipboard: %v", err)
		}
		clipboard.Write(clipboard.FmtImage, buf.Bytes())
	}
}

func loadBoard(path string, tiles levels.TileResolver) (*board.Board, error) {
	b, err := levels.Load(path, tiles)
	if err == nil {
		return b, nil
	}
	if eb, ferr := levels.LoadFromFS(nil, filepath.Base(path), tiles); ferr == nil {
		return eb, nil
	}
	return nil, err
}

// renderBoard composites b with the configured overlays and no editor
// cursor.
func renderBoard(b *board.Board, cfg config.Config, lib *assets.Library) (*image.RGBA, error) {
	v := render.NewView(b,
		render.WithSprites(lib),
		render.WithPalette(cfg.RenderPalette()),
		render.WithOptions(cfg.RenderOptions()),
	)
	defer v.Close()
	return v.Render(render.Overlay{})
}
