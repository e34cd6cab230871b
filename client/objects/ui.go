package objects

import (
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

// UIObject hosts an ebitenui widget tree inside the object tree.
type UIObject struct {
	*BaseObject

	ui      *ebitenui.UI
	blocker Blocker
}

// Blocker is anything that can hold off widget input, such as a NoticeObject.
type Blocker interface {
	Active() bool
}

func NewUIObject(id string, container *widget.Container, zIndex int) *UIObject {
	return &UIObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: zIndex}),
		ui:         &ebitenui.UI{Container: container},
	}
}

// SetContainer swaps the widget tree, e.g. after a re-render with new labels.
func (o *UIObject) SetContainer(container *widget.Container) {
	o.ui.Container = container
}

// BlockWhile stops the widgets from handling input while b is active.
func (o *UIObject) BlockWhile(b Blocker) {
	o.blocker = b
}

func (o *UIObject) Update() error {
	if o.blocker != nil && o.blocker.Active() {
		return nil
	}
	o.ui.Update()
	return nil
}

func (o *UIObject) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}
