package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func basicFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func menuButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// centeredPanel is a translucent box anchored in the middle of the screen.
func centeredPanel(w, h int, children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w, h),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, c := range children {
		panel.AddChild(c)
	}
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the pause menu with Resume and Quit buttons.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := basicFace()
	title := widget.NewText(
		widget.TextOpts.Text("Paused", face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	return centeredPanel(baseWidth/2, baseHeight/2,
		title,
		menuButton("Resume", face, func() { g.paused = false }),
		menuButton("Quit", face, func() { g.quit = true }),
	)
}

// NewMessageUI builds the box that shows program messages. The returned text
// widget's Label is replaced for each message.
func NewMessageUI(g *Game) (*ebitenui.UI, *widget.Text) {
	face := basicFace()
	text := widget.NewText(
		widget.TextOpts.Text("", face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	ui := centeredPanel(baseWidth*2/3, baseHeight/5,
		text,
		menuButton("OK", face, func() { g.message = "" }),
	)
	return ui, text
}
