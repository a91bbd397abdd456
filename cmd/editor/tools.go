package main

import (
	"github.com/milk9111/rpgboard/board"
	"github.com/milk9111/rpgboard/brush"
)

type Tool int

const (
	ToolBrush Tool = iota
	ToolErase
	ToolFill
	ToolLine
	ToolSolid
	ToolUnder
	ToolStairs
	ToolWaypoint
	ToolProgram
	ToolSelect
)

var toolNames = []string{"Brush", "Erase", "Fill", "Line", "Solid", "Under", "Stairs", "Waypoint", "Program", "Select"}

func (t Tool) String() string {
	if int(t) >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "Unknown"
}

// newBrush builds the brush for a tool. The select tool has none; the game
// handles selection itself.
func newBrush(t Tool, tile *board.Tile, script string, closed bool) brush.Brush {
	switch t {
	case ToolBrush:
		return brush.NewShapeBrush(tile, 1, 1)
	case ToolErase:
		return brush.NewEraser(1, 1)
	case ToolFill:
		return brush.NewBucketBrush(tile)
	case ToolLine:
		return brush.NewLineBrush(tile)
	case ToolSolid, ToolUnder, ToolStairs, ToolWaypoint:
		vb := brush.NewVectorBrush(vectorType(t))
		vb.SetClosed(closed)
		return vb
	case ToolProgram:
		return brush.NewProgramBrush(script)
	}
	return nil
}

func vectorType(t Tool) board.TileType {
	switch t {
	case ToolSolid:
		return board.TileSolid
	case ToolUnder:
		return board.TileUnder
	case ToolStairs:
		return board.TileStairs
	case ToolWaypoint:
		return board.TileWaypoint
	}
	return board.TileNone
}
