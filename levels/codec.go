package levels

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/rpgboard/board"
)

var ErrMalformed = errors.New("levels: malformed board")

// TileResolver turns a stored tile reference back into a tile.
type TileResolver interface {
	Tile(set string, index int) (*board.Tile, error)
}

// minPoints is the smallest vector that is worth storing. Shorter ones only
// exist while a gesture is in progress.
const minPoints = 2

// NewDocument converts b into its stored form.
func NewDocument(b *board.Board) *Document {
	doc := &Document{
		Width:  b.Width(),
		Height: b.Height(),
		StartX: b.StartX,
		StartY: b.StartY,
	}
	sets := make(map[string]int)
	for _, l := range b.Layers() {
		ld := LayerData{Name: l.Name}

		var used bool
		tiles := make([]*TileRef, 0, b.Width()*b.Height())
		for _, row := range l.Tiles {
			for _, t := range row {
				if t == nil {
					tiles = append(tiles, nil)
					continue
				}
				idx, ok := sets[t.TileSet]
				if !ok {
					idx = len(doc.Tilesets)
					sets[t.TileSet] = idx
					doc.Tilesets = append(doc.Tilesets, t.TileSet)
				}
				tiles = append(tiles, &TileRef{Set: idx, Index: t.Index})
				used = true
			}
		}
		if used {
			ld.Tiles = tiles
		}

		for _, v := range l.Vectors {
			if v.PointCount() < minPoints {
				continue
			}
			ld.Vectors = append(ld.Vectors, vectorData(v))
		}
		for _, p := range l.Programs {
			if p.Vector == nil || p.Vector.PointCount() < minPoints {
				continue
			}
			ld.Programs = append(ld.Programs, ProgramData{Vector: vectorData(p.Vector), Script: p.Script})
		}
		for _, s := range l.Sprites {
			ld.Sprites = append(ld.Sprites, SpriteData{Name: s.Name, X: s.X, Y: s.Y})
		}
		doc.Layers = append(doc.Layers, ld)
	}
	return doc
}

func Encode(w io.Writer, b *board.Board) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(b))
}

// Decode reads a board. Tiles the resolver cannot find keep their reference
// with no image so the board can be saved again without losing them.
func Decode(r io.Reader, tiles TileResolver) (*board.Board, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("unmarshal board: %w", err)
	}
	return doc.Board(tiles)
}

// Board builds a board from the document.
func (doc *Document) Board(tiles TileResolver) (*board.Board, error) {
	b, err := board.New(doc.Width, doc.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	b.StartX = doc.StartX
	b.StartY = doc.StartY

	var missing []error
	for li, ld := range doc.Layers {
		l := b.NewLayer(ld.Name)
		if n := len(ld.Tiles); n != 0 && n != doc.Width*doc.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrMalformed, li, n, doc.Width*doc.Height)
		}
		for i, ref := range ld.Tiles {
			if ref == nil {
				continue
			}
			if ref.Set < 0 || ref.Set >= len(doc.Tilesets) {
				return nil, fmt.Errorf("%w: layer %d tile %d: tileset %d", ErrMalformed, li, i, ref.Set)
			}
			set := doc.Tilesets[ref.Set]
			var t *board.Tile
			if tiles != nil {
				t, err = tiles.Tile(set, ref.Index)
				if err != nil {
					missing = append(missing, err)
				}
			}
			if t == nil {
				t = board.NewTile(set, ref.Index, nil)
			}
			l.Tiles[i/doc.Width][i%doc.Width] = t
		}

		for vi, vd := range ld.Vectors {
			v, err := vd.vector()
			if err != nil {
				return nil, fmt.Errorf("%w: layer %d vector %d: %v", ErrMalformed, li, vi, err)
			}
			l.AddVector(v)
		}
		for pi, pd := range ld.Programs {
			v, err := pd.Vector.vector()
			if err != nil {
				return nil, fmt.Errorf("%w: layer %d program %d: %v", ErrMalformed, li, pi, err)
			}
			l.AddProgram(&board.Program{Vector: v, Script: pd.Script})
		}
		for _, sd := range ld.Sprites {
			l.AddSprite(&board.Sprite{Name: sd.Name, X: sd.X, Y: sd.Y})
		}
		if err := b.InsertLayer(l); err != nil {
			return nil, err
		}
	}

	if len(missing) > 0 {
		log.Printf("levels: %d tiles unresolved, first: %v", len(missing), missing[0])
	}
	return b, nil
}

// Save writes b to path and records the path on the board.
func Save(b *board.Board, path string) error {
	if path == "" {
		return fmt.Errorf("levels: save: empty path")
	}
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return fmt.Errorf("levels: encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	b.Path = path
	log.Printf("Saved board: %s", path)
	return nil
}

func Load(path string, tiles TileResolver) (*board.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	b, err := Decode(bytes.NewReader(data), tiles)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", path, err)
	}
	b.Path = path
	return b, nil
}
