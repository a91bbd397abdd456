package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed sprites/*.yaml
var spritesFS embed.FS

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Source reads from a directory on disk first and falls back to the embedded
// copy, so edits on disk win without a rebuild.
type Source struct {
	dir      string
	embedded fs.FS
}

var _ fs.FS = Source{}

// Sprites returns the sprite spec source rooted at dir.
func Sprites(dir string) Source {
	sub, _ := fs.Sub(spritesFS, "sprites")
	return Source{dir: dir, embedded: sub}
}

// Scripts returns the program script source rooted at dir.
func Scripts(dir string) Source {
	sub, _ := fs.Sub(scriptsFS, "scripts")
	return Source{dir: dir, embedded: sub}
}

func (s Source) Dir() string {
	return s.dir
}

func (s Source) Open(name string) (fs.File, error) {
	clean := cleanPrefabPath(name)
	if s.dir != "" {
		if f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(clean))); err == nil {
			return f, nil
		}
	}
	if s.embedded == nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return s.embedded.Open(clean)
}

func (s Source) ModTime(name string) (time.Time, bool) {
	if s.dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(cleanPrefabPath(name))))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Rel maps an absolute or dir-prefixed path reported by the watcher back to
// a name inside this source.
func (s Source) Rel(path string) (string, error) {
	if s.dir == "" {
		return "", errors.New("prefabs: source has no directory")
	}
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", errors.New("prefabs: path outside source")
	}
	return filepath.ToSlash(rel), nil
}

func LoadScript(fsys fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, cleanScriptPath(name))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	for _, prefix := range []string{"prefabs/", "sprites/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
		}
	}
	return strings.TrimPrefix(s, "/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return s
}
