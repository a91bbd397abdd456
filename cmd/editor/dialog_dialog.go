//go:build dialog
// +build dialog

package main

import (
	"github.com/sqweek/dialog"
)

// showError pops a native message box.
func showError(title string, err error) {
	dialog.Message("%v", err).Title(title).Error()
}

// pickBoardFile opens the native file dialog and returns the selected path.
func pickBoardFile(save bool) (string, error) {
	b := dialog.File().Filter("Board files", "json").Title("Select board")
	if save {
		return b.Save()
	}
	return b.Load()
}
