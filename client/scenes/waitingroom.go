package scenes

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/cbodonnell/frontline/client/fonts"
	"github.com/cbodonnell/frontline/client/objects"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/ebitenui/ebitenui/widget"
)

// WaitingRoomScene shows the room id until the host starts the game.
type WaitingRoomScene struct {
	*BaseScene

	session *session.Session
	onLeave func() error

	status *widget.Text
	start  *widget.Button
}

type WaitingRoomSceneOptions struct {
	Session *session.Session
	// OnLeave is called when the leave button is pressed.
	OnLeave func() error
}

var _ Scene = &WaitingRoomScene{}

func NewWaitingRoomScene(opts WaitingRoomSceneOptions) (Scene, error) {
	return &WaitingRoomScene{
		BaseScene: NewBaseScene(objects.NewSortedZIndexObject("waitingroom-root")),
		session:   opts.Session,
		onLeave:   opts.OnLeave,
	}, nil
}

func (s *WaitingRoomScene) Init() error {
	if err := s.BaseScene.Init(); err != nil {
		return err
	}
	notice := objects.NewNoticeObject("notice", s.session, 10)
	form := objects.NewUIObject("waitingroom-ui", s.renderUI(), 0)
	form.BlockWhile(notice)
	if err := s.Root.AddChild(form.GetID(), form); err != nil {
		return fmt.Errorf("failed to add ui: %v", err)
	}
	if err := s.Root.AddChild(notice.GetID(), notice); err != nil {
		return fmt.Errorf("failed to add notice: %v", err)
	}
	return nil
}

func (s *WaitingRoomScene) renderUI() *widget.Container {
	fontFace := fonts.TTFNormalFont
	padding := widget.Insets{Left: 30, Right: 30, Top: 5, Bottom: 5}

	rootContainer := verticalContainer(widget.Insets{
		Top:    150,
		Left:   400,
		Right:  400,
		Bottom: 90,
	}, 20)

	rootContainer.AddChild(newLabel(fmt.Sprintf("Room %s", s.session.RoomID()), fonts.TTFLargeFont, textColor))
	rootContainer.AddChild(newLabel(fmt.Sprintf("You are player %d", s.session.PlayerID()), fontFace, textColor))

	rootContainer.AddChild(newButton("Copy room ID", fontFace, padding, func() {
		if err := clipboard.WriteAll(s.session.RoomID()); err != nil {
			log.Warn("Failed to copy room id: %v", err)
			s.session.Logf("Could not copy room id")
			return
		}
		s.session.Logf("Copied room id %s", s.session.RoomID())
	}))

	s.start = newButton("Start game", fontFace, padding, func() {
		if err := s.session.StartGame(); err != nil {
			log.Error("Failed to start game: %v", err)
		}
	})
	setEnabled(s.start, s.session.IsHost())
	rootContainer.AddChild(s.start)

	rootContainer.AddChild(newButton("Leave", fontFace, padding, func() {
		if err := s.onLeave(); err != nil {
			log.Error("Failed to leave room: %v", err)
		}
	}))

	s.status = newLabel("", fontFace, textColor)
	rootContainer.AddChild(s.status)

	return rootContainer
}

func (s *WaitingRoomScene) Update() error {
	if err := s.BaseScene.Update(); err != nil {
		return err
	}
	s.status.Label = s.statusMessage()
	return nil
}

func (s *WaitingRoomScene) statusMessage() string {
	if s.session.IsHost() {
		return "Share the room id, then start the game"
	}
	return "Waiting for the host to start the game"
}
