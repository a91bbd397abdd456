package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/rpgboard/assets"
)

const (
	toolbarHeight   = 40
	leftPanelWidth  = 220
	rightPanelWidth = 240
	tileListHeight  = 140
)

// Overlay toggles shown as buttons in the left panel.
var toggleNames = []string{"Grid", "Coords", "Vectors", "Programs", "Snap", "Closed"}

type UIActions struct {
	Tool     func(tool Tool)
	Layers   LayerActions
	Save     func(name string)
	Open     func(name string)
	Toggle   func(name string)
	Script   func(script string)
	Validate func()
	TileSet  func(asset assets.AssetInfo)
}

type EditorUI struct {
	UI        *ebitenui.UI
	ToolBar   *ToolBar
	Layers    *LayerPanel
	FileInput *widget.TextInput
}

func BuildEditorUI(tilesets []assets.AssetInfo, panel color.Color, initialTool Tool, actions UIActions) *EditorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace, panel)
	theme := ui.PrimaryTheme

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	leftPanel.AddChild(newLabel("File", &fontFace))
	fileInput := newTextInput(&fontFace, leftPanelWidth-20, actions.Save)
	leftPanel.AddChild(fileInput)
	fileRow := newRow(6)
	fileRow.AddChild(newButton(theme, &fontFace, "Save", func() {
		if actions.Save != nil {
			actions.Save(fileInput.GetText())
		}
	}))
	fileRow.AddChild(newButton(theme, &fontFace, "Open", func() {
		if actions.Open != nil {
			actions.Open(fileInput.GetText())
		}
	}))
	leftPanel.AddChild(fileRow)

	layers := addLayersSection(leftPanel, theme, &fontFace, actions.Layers)

	leftPanel.AddChild(newLabel("Overlays", &fontFace))
	for i := 0; i < len(toggleNames); i += 3 {
		row := newRow(6)
		for _, name := range toggleNames[i:min(i+3, len(toggleNames))] {
			row.AddChild(newButton(theme, &fontFace, name, func() {
				if actions.Toggle != nil {
					actions.Toggle(name)
				}
			}))
		}
		leftPanel.AddChild(row)
	}

	leftPanel.AddChild(newLabel("Program script", &fontFace))
	leftPanel.AddChild(newTextInput(&fontFace, leftPanelWidth-20, actions.Script))
	leftPanel.AddChild(newButton(theme, &fontFace, "Check scripts", actions.Validate))

	rightPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth, tileListHeight),
		),
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	entries := make([]any, 0, len(tilesets))
	for _, a := range tilesets {
		entries = append(entries, a)
	}
	rightPanel.AddChild(newLabel("Tilesets", &fontFace))
	rightPanel.AddChild(widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if asset, ok := e.(assets.AssetInfo); ok {
				return asset.Name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if asset, ok := args.Entry.(assets.AssetInfo); ok && actions.TileSet != nil {
				actions.TileSet(asset)
			}
		}),
	))

	toolbarContainer, toolBar := buildToolBar(theme, &fontFace, actions.Tool, initialTool)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(rightPanel)
	root.AddChild(toolbarContainer)
	ui.Container = root

	return &EditorUI{
		UI:        ui,
		ToolBar:   toolBar,
		Layers:    layers,
		FileInput: fileInput,
	}
}
