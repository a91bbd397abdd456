package assets

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// AssetInfo holds information about an asset file.
type AssetInfo struct {
	Name string
	Path string
}

// ListImages walks fsys for tileset and sprite sheet images.
func ListImages(fsys fs.FS) ([]AssetInfo, error) {
	var out []AssetInfo
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".png", ".bmp":
			out = append(out, AssetInfo{Name: d.Name(), Path: p})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, err
}

// ListTileSets returns the images under tiles/.
func ListTileSets(fsys fs.FS) ([]AssetInfo, error) {
	all, err := ListImages(fsys)
	if err != nil {
		return nil, err
	}
	var out []AssetInfo
	for _, a := range all {
		if strings.HasPrefix(a.Path, "tiles/") {
			out = append(out, a)
		}
	}
	return out, nil
}
