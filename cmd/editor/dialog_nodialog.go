//go:build !dialog
// +build !dialog

package main

import (
	"errors"
	"log"
)

// showError logs instead of showing a native dialog.
func showError(title string, err error) {
	log.Printf("%s: %v", title, err)
}

// pickBoardFile is a stub used when the native dialog build tag isn't set.
func pickBoardFile(bool) (string, error) {
	return "", errors.New("native file dialog unavailable; build with -tags dialog to enable")
}
