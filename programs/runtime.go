// Package programs compiles and runs the tengo scripts attached to board
// programs.
package programs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/common"
	"github.com/milk9111/rpgboard/prefabs"
)

var ErrNoScript = errors.New("programs: no script")

// Trigger events a script can react to.
const (
	EventStep     = "step"
	EventActivate = "activate"
)

const runTimeout = 500 * time.Millisecond

// Trigger is what set a program off: the event and the tile it happened on.
type Trigger struct {
	Event string
	X, Y  int
	Layer int
}

// Result is what a script reports back through its globals.
type Result struct {
	Message string
	Warp    bool
	Target  string
}

type Runtime struct {
	scripts  fs.FS
	compiled map[string]*tengo.Compiled
}

func NewRuntime(scripts fs.FS) *Runtime {
	return &Runtime{
		scripts:  scripts,
		compiled: make(map[string]*tengo.Compiled),
	}
}

// Compile loads and compiles a script once; later calls reuse it until
// Invalidate.
func (rt *Runtime) Compile(name string) (*tengo.Compiled, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNoScript
	}
	if c, ok := rt.compiled[name]; ok {
		return c, nil
	}

	src, err := prefabs.LoadScript(rt.scripts, name)
	if err != nil {
		return nil, fmt.Errorf("programs: load %s: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("__event", "")
	_ = script.Add("__x", 0)
	_ = script.Add("__y", 0)
	_ = script.Add("__layer", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("programs: compile %s: %w", name, err)
	}
	rt.compiled[name] = compiled
	return compiled, nil
}

func (rt *Runtime) Invalidate(name string) {
	delete(rt.compiled, strings.TrimSpace(name))
}

// Validate checks that a program's script exists and compiles.
func (rt *Runtime) Validate(p *board.Program) error {
	if p == nil {
		return ErrNoScript
	}
	_, err := rt.Compile(p.Script)
	return err
}

// Run executes the program's script for one trigger. The pixel position of
// the trigger is converted to tiles before it reaches the script.
func (rt *Runtime) Run(ctx context.Context, p *board.Program, tr Trigger) (Result, error) {
	if p == nil {
		return Result{}, ErrNoScript
	}
	compiled, err := rt.Compile(p.Script)
	if err != nil {
		return Result{}, err
	}

	c := compiled.Clone()
	tx, ty := common.PixelToTile(tr.X, tr.Y)
	for name, value := range map[string]any{
		"__event": tr.Event,
		"__x":     tx,
		"__y":     ty,
		"__layer": tr.Layer,
	} {
		if err := c.Set(name, value); err != nil {
			return Result{}, fmt.Errorf("programs: %s: set %s: %w", p.Script, name, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return Result{}, fmt.Errorf("programs: run %s: %w", p.Script, err)
	}

	var res Result
	if c.IsDefined("message") {
		res.Message = c.Get("message").String()
	}
	if c.IsDefined("warp") {
		res.Warp = c.Get("warp").Bool()
	}
	if c.IsDefined("target") {
		res.Target = c.Get("target").String()
	}
	return res, nil
}

// ValidateBoard compiles every program script on b.
func (rt *Runtime) ValidateBoard(b *board.Board) []error {
	var errs []error
	for i, l := range b.Layers() {
		for j, p := range l.Programs {
			if err := rt.Validate(p); err != nil {
				errs = append(errs, fmt.Errorf("layer %d program %d: %w", i, j, err))
			}
		}
	}
	return errs
}
