package scenes

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"golang.org/x/image/font"
)

var (
	textColor     = color.NRGBA{254, 255, 255, 255}
	disabledColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	errorColor    = color.NRGBA{R: 255, G: 80, B: 80, A: 255}

	buttonImage = &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:    image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed:  image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
		Disabled: image.NewNineSliceColor(color.NRGBA{R: 70, G: 70, B: 80, A: 255}),
	}
)

func newButton(label string, face font.Face, padding widget.Insets, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{
			Idle:     textColor,
			Disabled: disabledColor,
		}),
		widget.ButtonOpts.TextPadding(padding),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func newTextInput(placeholder string, face font.Face, onChange func(string)) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
				Stretch:  true,
			}),
		),
		widget.TextInputOpts.MobileInputMode("text"),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
			Disabled: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 100, A: 255}),
		}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          textColor,
			Disabled:      disabledColor,
			Caret:         textColor,
			DisabledCaret: disabledColor,
		}),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(5)),
		widget.TextInputOpts.CaretOpts(
			widget.CaretOpts.Size(face, 2),
		),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChange(args.InputText)
		}),
	)
}

func newLabel(label string, face font.Face, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, face, clr),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	)
}

func verticalContainer(padding widget.Insets, spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
			widget.RowLayoutOpts.Padding(padding),
		)),
	)
}

// setEnabled toggles a button without rebuilding the widget tree.
func setEnabled(b *widget.Button, enabled bool) {
	b.GetWidget().Disabled = !enabled
}
