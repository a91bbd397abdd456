package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

//go:embed tiles/*.png sprites/*.png
var assetsFS embed.FS

// FS is the built-in tileset and sprite sheet collection.
func FS() fs.FS {
	return assetsFS
}

// DecodeImage loads a png or bmp image by assets-relative path.
func DecodeImage(fsys fs.FS, path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", clean, err)
	}
	return img, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
