package main

import (
	"testing"

	"github.com/milk9111/rpgboard/assets"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/config"
	"github.com/milk9111/rpgboard/prefabs"
)

func TestRenderEmbeddedBoard(t *testing.T) {
	lib := assets.NewLibrary(assets.FS(), prefabs.Sprites(""))
	b, err := loadBoard("does/not/exist/village.json", lib)
	if err != nil {
		t.Fatalf("loadBoard: %v", err)
	}

	img, err := renderBoard(b, config.Default(), lib)
	if err != nil {
		t.Fatalf("renderBoard: %v", err)
	}
	want := [2]int{b.Width() * common.TileSize, b.Height() * common.TileSize}
	if got := [2]int{img.Bounds().Dx(), img.Bounds().Dy()}; got != want {
		t.Fatalf("image size = %v, want %v", got, want)
	}
}

func TestLoadBoardMissing(t *testing.T) {
	lib := assets.NewLibrary(assets.FS(), prefabs.Sprites(""))
	if _, err := loadBoard("nowhere.json", lib); err == nil {
		t.Fatal("expected an error for a board that exists nowhere")
	}
}
