package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/milk9111/rpgboard/board"
)

//go:embed *.json
var BoardsFS embed.FS

// LoadFromFS decodes a board stored in fsys. A nil fsys reads the embedded
// sample boards.
func LoadFromFS(fsys fs.FS, name string, tiles TileResolver) (*board.Board, error) {
	if fsys == nil {
		fsys = BoardsFS
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	defer f.Close()

	b, err := Decode(f, tiles)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return b, nil
}
