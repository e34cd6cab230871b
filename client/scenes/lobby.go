package scenes

import (
	"fmt"

	"github.com/cbodonnell/frontline/client/fonts"
	"github.com/cbodonnell/frontline/client/objects"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/cbodonnell/frontline/client/ui"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/ebitenui/ebitenui/widget"
)

// LobbyScene collects a player name and either creates a room or joins one by id.
type LobbyScene struct {
	*BaseScene

	session  *session.Session
	onCreate func(name string) error
	onJoin   func(roomID, name string) error

	name     string
	roomID   string
	localErr string
	errText  *widget.Text
}

type LobbySceneOptions struct {
	Session *session.Session
	// PlayerName pre-fills the name input.
	PlayerName string
	// OnCreate is called when the create room button is pressed.
	OnCreate func(name string) error
	// OnJoin is called when the join room button is pressed.
	OnJoin func(roomID, name string) error
}

var _ Scene = &LobbyScene{}

func NewLobbyScene(opts LobbySceneOptions) (Scene, error) {
	return &LobbyScene{
		BaseScene: NewBaseScene(objects.NewSortedZIndexObject("lobby-root")),
		session:   opts.Session,
		onCreate:  opts.OnCreate,
		onJoin:    opts.OnJoin,
		name:      opts.PlayerName,
	}, nil
}

func (s *LobbyScene) Init() error {
	if err := s.BaseScene.Init(); err != nil {
		return err
	}
	notice := objects.NewNoticeObject("notice", s.session, 10)
	form := objects.NewUIObject("lobby-ui", s.renderUI(), 0)
	form.BlockWhile(notice)
	if err := s.Root.AddChild(form.GetID(), form); err != nil {
		return fmt.Errorf("failed to add ui: %v", err)
	}
	if err := s.Root.AddChild(notice.GetID(), notice); err != nil {
		return fmt.Errorf("failed to add notice: %v", err)
	}
	return nil
}

func (s *LobbyScene) renderUI() *widget.Container {
	fontFace := fonts.TTFNormalFont
	padding := widget.Insets{Left: 30, Right: 30, Top: 5, Bottom: 5}

	rootContainer := verticalContainer(widget.Insets{
		Top:    150,
		Left:   400,
		Right:  400,
		Bottom: 90,
	}, 20)

	rootContainer.AddChild(newLabel("FRONTLINE", fonts.TTFLargeFont, textColor))

	nameInput := newTextInput("Player name", fontFace, func(text string) {
		s.name = text
	})
	nameInput.SetText(s.name)
	rootContainer.AddChild(nameInput)

	rootContainer.AddChild(newButton("Create room", fontFace, padding, func() {
		s.run(func() error { return s.onCreate(s.name) })
	}))

	roomInput := newTextInput("Room ID", fontFace, func(text string) {
		s.roomID = text
	})
	roomInput.SetText(s.roomID)
	rootContainer.AddChild(roomInput)

	join := func() {
		if s.roomID == "" {
			return
		}
		s.run(func() error { return s.onJoin(s.roomID, s.name) })
	}
	rootContainer.AddChild(newButton("Join room", fontFace, padding, join))
	roomInput.SubmitEvent.AddHandler(func(args interface{}) { join() })

	s.errText = newLabel("", fontFace, errorColor)
	rootContainer.AddChild(s.errText)

	// auto focus the name text input
	nameInput.Focus(true)

	return rootContainer
}

// run clears any previous error and records the new one, if any.
func (s *LobbyScene) run(action func() error) {
	s.session.DismissNotice()
	s.localErr = ""
	if err := action(); err != nil {
		log.Error("Lobby action failed: %v", err)
		if actionableErr, ok := err.(*ui.ActionableError); ok {
			s.localErr = actionableErr.Message
		} else {
			s.localErr = "Could not reach the server. Please try again."
		}
	}
}

func (s *LobbyScene) Update() error {
	if err := s.BaseScene.Update(); err != nil {
		return err
	}
	s.errText.Label = s.localErr
	return nil
}
