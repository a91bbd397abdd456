package prefabs

import (
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func TestLoadSpriteSpecEmbedded(t *testing.T) {
	spec, err := LoadSpriteSpec(Sprites(""), "hero")
	if err != nil {
		t.Fatalf("LoadSpriteSpec: %v", err)
	}
	if len(spec.Animations) <= StandardSouth {
		t.Fatalf("hero has %d animations", len(spec.Animations))
	}
	if spec.Animations[StandardSouth].Name != "south" {
		t.Fatalf("slot %d = %q, want south", StandardSouth, spec.Animations[StandardSouth].Name)
	}
}

func TestLoadSpriteSpecValidation(t *testing.T) {
	fsys := fstest.MapFS{
		"nosheet.yaml":   {Data: []byte("frame_w: 32\nframe_h: 32\n")},
		"zeroframe.yaml": {Data: []byte("sheet: a.png\nframe_w: 0\nframe_h: 32\n")},
		"broken.yaml":    {Data: []byte("sheet: [\n")},
		"ok.yaml":        {Data: []byte("sheet: a.png\nframe_w: 16\nframe_h: 24\n")},
	}
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "nosheet", wantErr: true},
		{name: "zeroframe", wantErr: true},
		{name: "broken", wantErr: true},
		{name: "missing", wantErr: true},
		{name: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := LoadSpriteSpec(fsys, tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && spec.Name != tt.name {
				t.Fatalf("name defaulted to %q", spec.Name)
			}
		})
	}
}

func TestFrameRect(t *testing.T) {
	spec := SpriteSpec{
		Name:   "npc",
		FrameW: 32,
		FrameH: 48,
		Animations: []AnimationDefSpec{
			{Name: "north", Row: 0, FrameCount: 4},
			{Name: "east", Row: 1, FrameCount: 4},
			{Name: "south", Row: 2, ColStart: 1, FrameCount: 4},
		},
	}
	got, err := spec.FrameRect(StandardSouth, PreviewFrame)
	if err != nil {
		t.Fatalf("FrameRect: %v", err)
	}
	if want := image.Rect(96, 96, 128, 144); got != want {
		t.Fatalf("FrameRect = %v, want %v", got, want)
	}
	if _, err := spec.FrameRect(StandardWest, 0); err == nil {
		t.Fatalf("expected error for missing animation")
	}
	if _, err := spec.FrameRect(StandardSouth, 4); err == nil {
		t.Fatalf("expected error for missing frame")
	}
}

func TestSourcePrefersDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hero.yaml"), []byte("name: disk\nsheet: x.png\nframe_w: 8\nframe_h: 8\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := Sprites(dir)
	spec, err := LoadSpriteSpec(src, "hero")
	if err != nil {
		t.Fatalf("LoadSpriteSpec: %v", err)
	}
	if spec.Name != "disk" {
		t.Fatalf("name = %q, want disk copy", spec.Name)
	}
	if _, err := fs.ReadFile(src, "chest.yaml"); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}
	if _, ok := src.ModTime("hero.yaml"); !ok {
		t.Fatalf("ModTime missing for disk file")
	}
	rel, err := src.Rel(filepath.Join(dir, "hero.yaml"))
	if err != nil || rel != "hero.yaml" {
		t.Fatalf("Rel = %q, %v", rel, err)
	}
	if _, err := src.Rel(filepath.Join(dir, "..", "other.yaml")); err == nil {
		t.Fatalf("Rel accepted path outside source")
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"door.tengo", "scripts/door.tengo", "prefabs/scripts/door.tengo"} {
		if _, err := LoadScript(Scripts(""), name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "hero.yaml")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("name: hero\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", path)
	}
}

func TestWatched(t *testing.T) {
	tests := map[string]bool{
		"a/hero.yaml":   true,
		"a/hero.YML":    true,
		"door.tengo":    true,
		"tiles/set.png": true,
		"tiles/old.bmp": true,
		"notes.txt":     false,
		"board.json":    false,
	}
	for path, want := range tests {
		if got := Watched(path); got != want {
			t.Errorf("Watched(%q) = %v, want %v", path, got, want)
		}
	}
}
