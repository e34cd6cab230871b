package objects

import (
	"github.com/cbodonnell/frontline/client/render"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BoardObject paints the session's draw list. The frame is cached offscreen and only
// rebuilt when the session revision changes.
type BoardObject struct {
	*BaseObject

	session  *session.Session
	width    int
	height   int
	image    *ebiten.Image
	revision uint64
	drawn    bool
}

type NewBoardObjectOptions struct {
	Session *session.Session
	Width   int
	Height  int
	ZIndex  int
}

func NewBoardObject(id string, opts NewBoardObjectOptions) *BoardObject {
	return &BoardObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: opts.ZIndex}),
		session:    opts.Session,
		width:      opts.Width,
		height:     opts.Height,
	}
}

func (o *BoardObject) Init() error {
	if o.image == nil {
		o.image = ebiten.NewImage(o.width, o.height)
	}
	o.drawn = false
	return nil
}

func (o *BoardObject) Destroy() error {
	if o.image != nil {
		o.image.Deallocate()
		o.image = nil
	}
	return nil
}

func (o *BoardObject) Draw(screen *ebiten.Image) {
	if o.image == nil {
		return
	}
	if rev := o.session.Revision(); !o.drawn || rev != o.revision {
		o.image.Clear()
		DrawOps(o.image, o.session.DrawList())
		o.revision = rev
		o.drawn = true
	}
	screen.DrawImage(o.image, nil)
}

// DrawOps executes a draw list on an image.
func DrawOps(dst *ebiten.Image, ops render.DrawList) {
	for _, op := range ops {
		r := op.Rect
		switch op.Kind {
		case render.OpFillRect:
			vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, op.Color, false)
		case render.OpStrokeRect:
			vector.StrokeRect(dst, r.X, r.Y, r.W, r.H, op.StrokeWidth, op.Color, false)
		case render.OpFillCircle:
			vector.DrawFilledCircle(dst, r.X, r.Y, r.W, op.Color, true)
		}
	}
}
