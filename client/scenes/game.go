package scenes

import (
	"fmt"

	"github.com/cbodonnell/frontline/client/fonts"
	"github.com/cbodonnell/frontline/client/input"
	"github.com/cbodonnell/frontline/client/objects"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/ebitenui/ebitenui/widget"
)

const (
	// panelTop is where the action buttons start inside the side panel.
	panelTop = 230
	// logTop is where the message log starts inside the side panel.
	logTop = 480
)

// GameScene is the board with its side panel of state and actions.
type GameScene struct {
	*BaseScene

	session *session.Session
	layout  Layout
	notice  *objects.NoticeObject

	moveButton    *widget.Button
	produceButton map[types.UnitType]*widget.Button
	endTurnButton *widget.Button
}

// Layout splits the screen into the board and the side panel to its right.
type Layout struct {
	BoardWidth  int
	BoardHeight int
	PanelWidth  int
}

type GameSceneOptions struct {
	Session *session.Session
	Layout  Layout
}

var _ Scene = &GameScene{}

func NewGameScene(opts GameSceneOptions) (Scene, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("game scene requires a session")
	}
	return &GameScene{
		BaseScene:     NewBaseScene(objects.NewSortedZIndexObject("game-root")),
		session:       opts.Session,
		layout:        opts.Layout,
		produceButton: make(map[types.UnitType]*widget.Button),
	}, nil
}

func (s *GameScene) Init() error {
	if err := s.BaseScene.Init(); err != nil {
		return err
	}

	l := s.layout
	board := objects.NewBoardObject("board", objects.NewBoardObjectOptions{
		Session: s.session,
		Width:   l.BoardWidth,
		Height:  l.BoardHeight,
		ZIndex:  0,
	})
	if err := s.Root.AddChild(board.GetID(), board); err != nil {
		return fmt.Errorf("failed to add board: %v", err)
	}

	hud := objects.NewHUDObject("hud", objects.NewHUDObjectOptions{
		Session: s.session,
		X:       l.BoardWidth,
		Height:  l.BoardHeight,
		Width:   l.PanelWidth,
		LogTop:  logTop,
		ZIndex:  1,
	})
	if err := s.Root.AddChild(hud.GetID(), hud); err != nil {
		return fmt.Errorf("failed to add hud: %v", err)
	}

	s.notice = objects.NewNoticeObject("notice", s.session, 10)

	actions := objects.NewUIObject("actions", s.renderActions(), 2)
	actions.BlockWhile(s.notice)
	if err := s.Root.AddChild(actions.GetID(), actions); err != nil {
		return fmt.Errorf("failed to add action panel: %v", err)
	}

	if err := s.Root.AddChild(s.notice.GetID(), s.notice); err != nil {
		return fmt.Errorf("failed to add notice: %v", err)
	}

	s.refreshActions()
	return nil
}

func (s *GameScene) renderActions() *widget.Container {
	fontFace := fonts.TTFSmallFont
	padding := widget.Insets{Left: 10, Right: 10, Top: 4, Bottom: 4}

	rootContainer := verticalContainer(widget.Insets{
		Top:   panelTop,
		Left:  s.layout.BoardWidth + 10,
		Right: 10,
	}, 6)

	s.moveButton = newButton("Move", fontFace, padding, func() {
		s.session.RequestMoveMode()
	})
	rootContainer.AddChild(s.moveButton)

	produceGrid := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(3),
			widget.GridLayoutOpts.Stretch([]bool{true, true, true}, nil),
			widget.GridLayoutOpts.Spacing(4, 4),
		)),
	)
	for _, t := range types.ProducibleUnitTypes {
		t := t
		b := newButton(t.Label(), fontFace, padding, func() {
			s.produce(t)
		})
		s.produceButton[t] = b
		produceGrid.AddChild(b)
	}
	rootContainer.AddChild(produceGrid)

	s.endTurnButton = newButton("End turn", fontFace, padding, s.endTurn)
	rootContainer.AddChild(s.endTurnButton)

	rootContainer.AddChild(newButton("Reset view", fontFace, padding, s.session.ResetViewport))
	rootContainer.AddChild(newButton("Zoom", fontFace, padding, func() {
		s.session.Pan(0, 0)
	}))

	return rootContainer
}

func (s *GameScene) produce(t types.UnitType) {
	if err := s.session.Produce(t); err != nil {
		log.Error("Failed to produce %s: %v", t, err)
		s.session.Logf("Production failed")
	}
}

func (s *GameScene) endTurn() {
	if err := s.session.EndTurn(); err != nil {
		log.Error("Failed to end turn: %v", err)
		s.session.Logf("End turn failed")
	}
}

// refreshActions mirrors the router's affordances onto the buttons.
func (s *GameScene) refreshActions() {
	a := s.session.Affordances()
	selected := s.session.Mode() == session.ModeTileSelected
	setEnabled(s.moveButton, selected && a.CanMove)
	for _, b := range s.produceButton {
		setEnabled(b, selected && a.CanProduce)
	}
	setEnabled(s.endTurnButton, s.session.EndTurnEnabled())
}

func (s *GameScene) Update() error {
	if !s.notice.Active() {
		if err := s.handleInput(); err != nil {
			return err
		}
	}
	if err := s.BaseScene.Update(); err != nil {
		return err
	}
	s.refreshActions()
	return nil
}

func (s *GameScene) handleInput() error {
	if input.IsCancelJustPressed() {
		s.session.Cancel()
	}
	if input.IsMoveModeJustPressed() {
		s.session.RequestMoveMode()
	}
	if t, ok := input.ProduceJustPressed(); ok {
		s.produce(t)
	}
	if input.IsEndTurnJustPressed() {
		s.endTurn()
	}
	if input.IsResetViewJustPressed() {
		s.session.ResetViewport()
	}
	if input.IsZoomJustPressed() {
		s.session.Pan(0, 0)
	}
	if dx, dy := input.PanDelta(); dx != 0 || dy != 0 {
		s.session.Pan(dx, dy)
	}

	x, y, ok := input.ClickPosition()
	if !ok || x >= s.layout.BoardWidth {
		return nil
	}
	cell, ok := s.session.Viewport().CellAt(x, y)
	if !ok {
		return nil
	}
	if err := s.session.Click(cell.R, cell.C); err != nil {
		log.Error("Failed to handle click on %s: %v", cell, err)
		s.session.Logf("Move failed")
	}
	return nil
}
