package render

import (
	"errors"
	"fmt"
)

var (
	ErrMissingImage = errors.New("render: missing image")
	ErrNoLayer      = errors.New("render: no such layer")
)

// PassError describes one element a pass had to skip. Layer is -1 for passes
// that are not tied to a layer.
type PassError struct {
	Pass    string
	Layer   int
	Element string
	Err     error
}

func (e *PassError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("render: %s pass: %s: %v", e.Pass, e.Element, e.Err)
	}
	return fmt.Sprintf("render: %s pass: layer %d: %s: %v", e.Pass, e.Layer, e.Element, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}
