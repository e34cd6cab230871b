package objects

import (
	"github.com/cbodonnell/frontline/client/input"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/hajimehoshi/ebiten/v2"
)

const noticeHint = "click or press enter to dismiss"

// NoticeObject shows the session's pending notice over the board until dismissed.
type NoticeObject struct {
	*BaseObject

	session *session.Session
}

func NewNoticeObject(id string, s *session.Session, zIndex int) *NoticeObject {
	return &NoticeObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: zIndex}),
		session:    s,
	}
}

// Active reports whether a notice is currently blocking board input.
func (o *NoticeObject) Active() bool {
	return o.session.Notice() != nil
}

func (o *NoticeObject) Update() error {
	if o.Active() && input.IsPositiveJustPressed() {
		o.session.DismissNotice()
	}
	return nil
}

func (o *NoticeObject) Draw(screen *ebiten.Image) {
	n := o.session.Notice()
	if n == nil {
		return
	}
	drawOverlay(screen, n.Message, noticeHint)
}
