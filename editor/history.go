package editor

import "github.com/milk9111/rpgboard/board"

// history is a bounded stack of board snapshots. Pushing a new snapshot
// clears the redo side.
type history struct {
	depth int
	undo  []*board.Board
	redo  []*board.Board
}

func newHistory(depth int) *history {
	return &history{depth: depth}
}

func (h *history) push(snap *board.Board) {
	if h.depth <= 0 {
		return
	}
	if len(h.undo) >= h.depth {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, snap)
	h.redo = nil
}

func (h *history) popUndo(current *board.Board) (*board.Board, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	idx := len(h.undo) - 1
	snap := h.undo[idx]
	h.undo = h.undo[:idx]
	h.redo = append(h.redo, current)
	return snap, true
}

func (h *history) popRedo(current *board.Board) (*board.Board, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	idx := len(h.redo) - 1
	snap := h.redo[idx]
	h.redo = h.redo[:idx]
	if len(h.undo) >= h.depth {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, current)
	return snap, true
}
