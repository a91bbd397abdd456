package main

import (
	"flag"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/editor"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/programs"
	"github.com/milk9111/rpgboard/render"
)

const (
	windowWidth  = 1280
	windowHeight = 800
)

var panelColor = color.RGBA{40, 40, 48, 255}

func main() {
	assetsDir := flag.String("dir", "", "Directory containing tileset and sprite images (embedded assets when empty)")
	boardName := flag.String("board", "", "Board to open from the boards directory (basename or filename, .json optional)")
	configPath := flag.String("config", "editor.yaml", "Editor config file")
	width := flag.Int("width", 0, "Width in tiles of a new board")
	height := flag.Int("height", 0, "Height in tiles of a new board")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	images := assets.FS()
	if cfg.AssetsDir != "" {
		images = os.DirFS(cfg.AssetsDir)
	}
	var spritesDir, scriptsDir string
	if cfg.PrefabsDir != "" {
		spritesDir = filepath.Join(cfg.PrefabsDir, "sprites")
		scriptsDir = filepath.Join(cfg.PrefabsDir, "scripts")
	}
	lib := assets.NewLibrary(images, prefabs.Sprites(spritesDir), assets.WithSourceTileSize(cfg.SourceTileSize))
	rt := programs.NewRuntime(prefabs.Scripts(scriptsDir))

	ctx := editor.NewContext()
	ctx.Options = cfg.RenderOptions()
	ctx.Snap = cfg.Snap

	opts := []editor.Option{
		editor.WithUndoDepth(cfg.UndoDepth),
		editor.WithPrograms(rt),
		editor.WithReporter(editor.ReporterFunc(showError)),
		editor.WithViewOptions(
			render.WithSprites(lib),
			render.WithPalette(cfg.RenderPalette()),
			render.WithOptions(cfg.RenderOptions()),
		),
	}
	ed, err := openBoard(ctx, cfg, *boardName, lib, opts)
	if err != nil {
		log.Fatalf("open board: %v", err)
	}

	tilesets, err := assets.ListTileSets(images)
	if err != nil {
		log.Printf("list tilesets: %v", err)
	}

	game := &EditorGame{
		cfg:     cfg,
		ctx:     ctx,
		ed:      ed,
		lib:     lib,
		rt:      rt,
		editOps: opts,
		palette: NewTilePalette(paletteOrigin(windowWidth)),
		zoom:    1.0,
	}
	game.eui = BuildEditorUI(tilesets, panelColor, ToolBrush, game.uiActions())
	game.ui = game.eui.UI
	if len(tilesets) > 0 {
		if ts, err := lib.TileSet(tilesets[0].Path); err == nil {
			game.palette.SetTileSet(ts)
		}
	}
	game.refreshLayers()

	game.sources = watchSources(cfg.AssetsDir, spritesDir, scriptsDir, lib, rt)
	var dirs []string
	for _, src := range game.sources {
		dirs = append(dirs, src.dir)
	}
	if len(dirs) > 0 {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("file watcher disabled: %v", err)
		} else {
			game.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Board Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// watchSources lists the on-disk directories worth watching. fsnotify does
// not recurse, so the asset subdirectories are added one by one.
func watchSources(assetsDir, spritesDir, scriptsDir string, lib *assets.Library, rt *programs.Runtime) []watchSource {
	var out []watchSource
	add := func(dir, prefix string, invalidate func(string)) {
		if dir == "" {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		out = append(out, watchSource{dir: dir, invalidate: func(name string) {
			invalidate(prefix + name)
		}})
	}
	if assetsDir != "" {
		add(filepath.Join(assetsDir, "tiles"), "tiles/", lib.Invalidate)
		add(filepath.Join(assetsDir, "sprites"), "sprites/", lib.Invalidate)
	}
	add(spritesDir, "", lib.Invalidate)
	add(scriptsDir, "", rt.Invalidate)
	return out
}
