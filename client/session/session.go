package session

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/frontline/client/flow"
	"github.com/cbodonnell/frontline/client/render"
	"github.com/cbodonnell/frontline/client/ui"
	"github.com/cbodonnell/frontline/pkg/game"
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
)

// Sender emits an outbound event. Emission is fire and forget.
type Sender interface {
	Send(event string, payload interface{}) error
}

// Session owns all client state. It must only be touched from the game loop.
type Session struct {
	sender Sender

	phase  flow.Phase
	roomID string
	pid    types.PlayerID
	isHost bool

	snapshot *types.Snapshot
	units    *game.UnitIndex

	view        Viewport
	mode        Mode
	selection   *types.Cell
	affordances Affordances
	// movingUnitID is the unit picked when move mode was entered.
	movingUnitID string

	// awaitingUpdate is set after end_turn until the next snapshot.
	awaitingUpdate bool

	notice   *ui.ActionableError
	log      *MessageLog
	revision uint64
}

type NewSessionOptions struct {
	Sender   Sender
	Viewport Viewport
	LogSize  int
}

func NewSession(opts NewSessionOptions) *Session {
	view := opts.Viewport
	if view.Rows == 0 || view.Cols == 0 {
		view = DefaultViewport()
	}
	return &Session{
		sender: opts.Sender,
		phase:  flow.PhaseLobby,
		view:   view,
		log:    NewMessageLog(opts.LogSize),
	}
}

func (s *Session) Phase() flow.Phase         { return s.phase }
func (s *Session) RoomID() string            { return s.roomID }
func (s *Session) PlayerID() types.PlayerID  { return s.pid }
func (s *Session) IsHost() bool              { return s.isHost }
func (s *Session) Snapshot() *types.Snapshot { return s.snapshot }
func (s *Session) Viewport() Viewport        { return s.view }
func (s *Session) Mode() Mode                { return s.mode }
func (s *Session) Affordances() Affordances  { return s.affordances }
func (s *Session) Log() []string             { return s.log.Lines() }

// Revision increases on every accepted state change. Views re-render when it moves.
func (s *Session) Revision() uint64 { return s.revision }

// Selection returns the selected cell, if any.
func (s *Session) Selection() (types.Cell, bool) {
	if s.selection == nil {
		return types.Cell{}, false
	}
	return *s.selection, true
}

// EndTurnEnabled is false while an end_turn is waiting for the next snapshot.
func (s *Session) EndTurnEnabled() bool {
	return s.phase == flow.PhasePlaying && !s.awaitingUpdate
}

func (s *Session) Turn() int {
	if s.snapshot == nil {
		return 0
	}
	return s.snapshot.Turn
}

func (s *Session) Resources() types.Resources {
	if s.snapshot == nil {
		return types.Resources{}
	}
	return s.snapshot.SelfResources
}

// CountryName is the local player's name from players_info.
func (s *Session) CountryName() string {
	if s.snapshot == nil {
		return ""
	}
	return s.snapshot.PlayerName(s.pid)
}

// SelectionLabel is the HUD text for the current selection.
func (s *Session) SelectionLabel() string {
	if s.selection == nil {
		return "-"
	}
	if s.mode == ModeAwaitingMoveDestination {
		return s.selection.String() + " [select destination]"
	}
	return s.selection.String()
}

// Notice returns the pending blocking notice, or nil.
func (s *Session) Notice() *ui.ActionableError {
	return s.notice
}

func (s *Session) DismissNotice() {
	if s.notice == nil {
		return
	}
	s.notice = nil
	s.touch()
}

// Logf appends a line to the HUD log.
func (s *Session) Logf(format string, args ...interface{}) {
	s.log.Add(fmt.Sprintf(format, args...))
	s.touch()
}

// RenderInput is the renderer input for the current state.
func (s *Session) RenderInput() render.Input {
	return render.Input{
		Snapshot:  s.snapshot,
		Self:      s.pid,
		Top:       s.view.Y,
		Left:      s.view.X,
		Rows:      s.view.Rows,
		Cols:      s.view.Cols,
		Selection: s.selection,
	}
}

// DrawList renders the current state.
func (s *Session) DrawList() render.DrawList {
	return render.Render(s.RenderInput())
}

func (s *Session) touch() {
	s.revision++
}

func (s *Session) send(event string, payload interface{}) error {
	if s.sender == nil {
		return fmt.Errorf("failed to send %s: no sender", event)
	}
	if err := s.sender.Send(event, payload); err != nil {
		return fmt.Errorf("failed to send %s: %v", event, err)
	}
	return nil
}

// CreateRoom asks the server for a new room hosted by this client.
func (s *Session) CreateRoom(name string) error {
	if s.phase != flow.PhaseLobby {
		log.Debug("Ignoring create room outside the lobby")
		return nil
	}
	return s.send(messages.EventCreateRoom, messages.CreateRoom{Name: playerName(name)})
}

// JoinRoom asks to join an existing room. An empty room id is ignored.
func (s *Session) JoinRoom(roomID, name string) error {
	roomID = strings.TrimSpace(roomID)
	if s.phase != flow.PhaseLobby || roomID == "" {
		log.Debug("Ignoring join room: phase %s, room %q", s.phase, roomID)
		return nil
	}
	return s.send(messages.EventJoinRoom, messages.JoinRoom{RoomID: roomID, Name: playerName(name)})
}

// StartGame is only available to the host in the waiting room.
func (s *Session) StartGame() error {
	if s.phase != flow.PhaseWaitingRoom || !s.isHost {
		log.Debug("Ignoring start game: phase %s, host %v", s.phase, s.isHost)
		return nil
	}
	return s.send(messages.EventStartGameReq, messages.StartGameRequest{RoomID: s.roomID})
}

func playerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return constants.DefaultPlayerName
	}
	return name
}

func (s *Session) HandleRoomCreated(msg *messages.RoomCreated) {
	s.enterWaitingRoom(msg.RoomID, msg.PID, true)
}

func (s *Session) HandleJoinedRoom(msg *messages.JoinedRoom) {
	s.enterWaitingRoom(msg.RoomID, msg.PID, false)
}

func (s *Session) enterWaitingRoom(roomID string, pid types.PlayerID, host bool) {
	s.roomID = roomID
	s.pid = pid
	s.isHost = host
	if s.phase == flow.PhaseLobby {
		s.phase = flow.PhaseWaitingRoom
	}
	s.log.Add(fmt.Sprintf("Joined room %s", roomID))
	s.touch()
}

// HandleError shows a server error as a blocking notice.
func (s *Session) HandleError(msg *messages.Error) {
	s.notice = ui.NewActionableError(msg.Msg)
	s.log.Add(s.notice.Message)
	s.touch()
}

// ApplySnapshot replaces the game state wholesale and derives visibility from it.
// View state survives; selection affordances are recomputed against the new state.
func (s *Session) ApplySnapshot(snap *types.Snapshot) {
	if snap == nil {
		return
	}
	if s.pid == 0 {
		s.pid = snap.SelfID
	}

	game.RecomputeVisibility(snap, s.pid)
	s.snapshot = snap
	s.units = game.NewSnapshotUnitIndex(snap)
	s.view.Resize(snap.Rows(), snap.Cols())
	s.phase = flow.PhasePlaying
	s.awaitingUpdate = false

	if s.selection != nil && !snap.InBounds(s.selection.R, s.selection.C) {
		s.clearSelection()
	} else if s.mode == ModeTileSelected {
		s.affordances = s.affordancesAt(*s.selection)
	}

	if snap.Turn == 1 && s.view.AtOrigin() {
		s.resetViewport()
	}
	s.touch()
}

// HandleEnvelope dispatches one inbound event.
func (s *Session) HandleEnvelope(e *messages.Envelope) error {
	switch e.Event {
	case messages.EventRoomCreated:
		msg, err := messages.DecodePayload[messages.RoomCreated](e)
		if err != nil {
			return err
		}
		s.HandleRoomCreated(msg)
	case messages.EventJoinedRoom:
		msg, err := messages.DecodePayload[messages.JoinedRoom](e)
		if err != nil {
			return err
		}
		s.HandleJoinedRoom(msg)
	case messages.EventError:
		msg, err := messages.DecodePayload[messages.Error](e)
		if err != nil {
			return err
		}
		s.HandleError(msg)
	case messages.EventGameUpdate:
		snap, err := messages.DecodePayload[messages.GameUpdate](e)
		if err != nil {
			return err
		}
		s.ApplySnapshot(snap)
	default:
		return fmt.Errorf("unexpected event %q", e.Event)
	}
	return nil
}

// Disconnect moves the session to the network error phase.
func (s *Session) Disconnect(err error) {
	s.phase = flow.PhaseNetworkError
	s.notice = ui.NewActionableError(fmt.Sprintf("Network error: %v", err))
	s.touch()
}

// Reset forgets the room and game and returns to the lobby.
func (s *Session) Reset() {
	view := s.view
	view.X, view.Y = 0, 0
	*s = Session{
		sender:   s.sender,
		phase:    flow.PhaseLobby,
		view:     view,
		log:      s.log,
		revision: s.revision + 1,
	}
	s.log.Clear()
}
