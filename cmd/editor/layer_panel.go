package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// LayerEntry is one row of the layer list.
type LayerEntry struct {
	Index   int
	Name    string
	Visible bool
	Locked  bool
	Opacity float32
}

// LayerActions are the layer operations the panel triggers. Index is the
// selected row.
type LayerActions struct {
	Select        func(idx int)
	New           func()
	Delete        func(idx int)
	MoveUp        func(idx int)
	MoveDown      func(idx int)
	Rename        func(idx int, name string)
	ToggleVisible func(idx int)
	ToggleLock    func(idx int)
	Fade          func(idx int, delta float32)
}

// LayerPanel holds the list widget and small helpers used by the editor UI.
type LayerPanel struct {
	list    *widget.List
	entries []any
	// suppressEvents is set while the list is filled programmatically so
	// the selection handler does not report it as a user pick.
	suppressEvents bool
}

func (lp *LayerPanel) SetLayers(layers []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(layers))
	for i, l := range layers {
		entries[i] = l
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}

func (lp *LayerPanel) selected() (int, bool) {
	entry, ok := lp.list.SelectedEntry().(LayerEntry)
	if !ok {
		return 0, false
	}
	return entry.Index, true
}

func layerLabel(entry LayerEntry) string {
	flags := ""
	if !entry.Visible {
		flags += " (hidden)"
	}
	if entry.Locked {
		flags += " (locked)"
	}
	if entry.Opacity < 1 {
		flags += fmt.Sprintf(" %d%%", int(entry.Opacity*100+0.5))
	}
	return fmt.Sprintf("%d. %s%s", entry.Index+1, entry.Name, flags)
}

func addLayersSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, actions LayerActions) *LayerPanel {
	lp := &LayerPanel{}
	parent.AddChild(newLabel("Layers", fontFace))

	lp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(LayerEntry); ok {
				return layerLabel(entry)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || lp.suppressEvents || actions.Select == nil {
				return
			}
			actions.Select(entry.Index)
		}),
	)
	parent.AddChild(lp.list)

	withSelected := func(fn func(idx int)) func() {
		return func() {
			if fn == nil {
				return
			}
			if idx, ok := lp.selected(); ok {
				fn(idx)
			}
		}
	}

	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "New", actions.New))
	row.AddChild(newButton(theme, fontFace, "Del", withSelected(actions.Delete)))
	row.AddChild(newButton(theme, fontFace, "Up", withSelected(actions.MoveUp)))
	row.AddChild(newButton(theme, fontFace, "Down", withSelected(actions.MoveDown)))
	parent.AddChild(row)

	row = newRow(6)
	row.AddChild(newButton(theme, fontFace, "Show", withSelected(actions.ToggleVisible)))
	row.AddChild(newButton(theme, fontFace, "Lock", withSelected(actions.ToggleLock)))
	row.AddChild(newButton(theme, fontFace, "-", withSelected(func(idx int) {
		if actions.Fade != nil {
			actions.Fade(idx, -0.25)
		}
	})))
	row.AddChild(newButton(theme, fontFace, "+", withSelected(func(idx int) {
		if actions.Fade != nil {
			actions.Fade(idx, 0.25)
		}
	})))
	parent.AddChild(row)

	parent.AddChild(newLabel("Rename", fontFace))
	parent.AddChild(newTextInput(fontFace, 180, func(name string) {
		if idx, ok := lp.selected(); ok && name != "" && actions.Rename != nil {
			actions.Rename(idx, name)
		}
	}))
	return lp
}
