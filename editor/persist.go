package editor

import (
	"fmt"
	"path/filepath"

	"github.com/milk9111/rpgboard/levels"
)

// Save writes the board back to the file it came from.
func (e *Editor) Save() error {
	if e.board.Path == "" {
		return e.fail("Save failed", ErrNoPath)
	}
	return e.SaveAs(e.board.Path)
}

// SaveAs writes the board to path, adding a .json extension when there is
// none. Scripts that do not compile are logged but do not block the save.
func (e *Editor) SaveAs(path string) error {
	if path == "" {
		return e.fail("Save failed", fmt.Errorf("%w: empty path", ErrNoPath))
	}
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	for _, err := range e.ValidatePrograms() {
		e.logger.Printf("editor: %v", err)
	}
	if err := levels.Save(e.board, path); err != nil {
		return e.fail("Save failed", err)
	}
	return nil
}

func (e *Editor) fail(title string, err error) error {
	e.logger.Printf("%s: %v", title, err)
	if e.reporter != nil {
		e.reporter.Report(title, err)
	}
	return err
}
