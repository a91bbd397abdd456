package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/prefabs"
	"github.com/milk9111/rpgboard/programs"
)

func main() {
	boardName := flag.String("board", "village.json", "board to play (file in the boards directory or an embedded sample)")
	configPath := flag.String("config", "editor.yaml", "editor config file")
	hero := flag.String("hero", "hero", "sprite prefab drawn for the party")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
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

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(cfg, lib, rt, *boardName, *hero)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("rpgboard")
	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
