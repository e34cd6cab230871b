package session

import (
	"github.com/cbodonnell/frontline/client/flow"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
)

// Mode is the input router state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeTileSelected
	ModeAwaitingMoveDestination
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeTileSelected:
		return "TileSelected"
	case ModeAwaitingMoveDestination:
		return "AwaitingMoveDestination"
	}
	return "Unknown"
}

// Affordances are the actions offered for the selected tile.
type Affordances struct {
	CanMove    bool
	CanProduce bool
}

// ZoomNotImplemented is logged for a zero pan.
const ZoomNotImplemented = "zoom is not implemented"

func (s *Session) inGrid(r, c int) bool {
	return s.snapshot != nil && s.snapshot.InBounds(r, c)
}

func (s *Session) affordancesAt(cell types.Cell) Affordances {
	a := Affordances{}
	if own := s.units.OwnedAt(cell.R, cell.C, s.pid); own != nil && own.MoveLeft > 0 {
		a.CanMove = true
	}
	t := s.snapshot.TileAt(cell.R, cell.C)
	if s.pid != 0 && t != nil && t.Owner == s.pid && t.IsLand && s.units.At(cell.R, cell.C) == nil {
		a.CanProduce = true
	}
	return a
}

func (s *Session) clearSelection() {
	s.mode = ModeIdle
	s.selection = nil
	s.affordances = Affordances{}
	s.movingUnitID = ""
}

// movableUnit returns the unit with the given id if it is still ours, still on cell
// and still has moves left.
func (s *Session) movableUnit(id string, cell types.Cell) *types.Unit {
	if id == "" || s.snapshot == nil {
		return nil
	}
	for _, u := range s.snapshot.Units {
		if u != nil && u.ID == id {
			if u.Owner == s.pid && u.Cell() == cell && u.MoveLeft > 0 {
				return u
			}
			return nil
		}
	}
	return nil
}

// Click handles a click on a grid cell. Out of grid clicks are ignored.
// In move mode the click is the destination: a move is sent only if the unit picked for the
// move is still on the remembered source with moves left, and the router returns to Idle either way.
func (s *Session) Click(r, c int) error {
	if s.phase != flow.PhasePlaying || !s.inGrid(r, c) {
		log.Debug("Ignoring click on (%d,%d)", r, c)
		return nil
	}

	if s.mode == ModeAwaitingMoveDestination && s.selection != nil {
		src, unitID := *s.selection, s.movingUnitID
		s.clearSelection()
		s.touch()
		u := s.movableUnit(unitID, src)
		if u == nil {
			log.Debug("Unit %q no longer movable at %s, dropping move", unitID, src)
			return nil
		}
		return s.send(messages.EventActionMove, messages.ActionMove{
			RoomID: s.roomID,
			UnitID: u.ID,
			R:      r,
			C:      c,
		})
	}

	cell := types.Cell{R: r, C: c}
	s.selection = &cell
	s.mode = ModeTileSelected
	s.affordances = s.affordancesAt(cell)
	s.touch()
	return nil
}

// RequestMoveMode enters move mode when the selected tile holds a movable unit of ours.
func (s *Session) RequestMoveMode() bool {
	if s.mode != ModeTileSelected || !s.affordances.CanMove {
		log.Debug("Ignoring move mode request in %s", s.mode)
		return false
	}
	u := s.units.OwnedAt(s.selection.R, s.selection.C, s.pid)
	if u == nil || u.MoveLeft <= 0 {
		log.Debug("No movable unit at %s", *s.selection)
		return false
	}
	s.movingUnitID = u.ID
	s.mode = ModeAwaitingMoveDestination
	s.touch()
	return true
}

// Produce orders a unit on the selected tile.
func (s *Session) Produce(unitType types.UnitType) error {
	if s.mode != ModeTileSelected || !s.affordances.CanProduce || !unitType.Known() {
		log.Debug("Ignoring produce %q in %s", unitType, s.mode)
		return nil
	}
	cell := *s.selection
	s.clearSelection()
	s.touch()
	return s.send(messages.EventActionProduce, messages.ActionProduce{
		RoomID: s.roomID,
		R:      cell.R,
		C:      cell.C,
		Type:   unitType,
	})
}

// Cancel drops any selection and pending mode.
func (s *Session) Cancel() {
	if s.mode == ModeIdle && s.selection == nil {
		return
	}
	s.clearSelection()
	s.touch()
}

// EndTurn sends end_turn once; further requests are ignored until the next snapshot.
// If the send fails outright the guard is not set.
func (s *Session) EndTurn() error {
	if !s.EndTurnEnabled() {
		log.Debug("Ignoring end turn: phase %s, waiting %v", s.phase, s.awaitingUpdate)
		return nil
	}
	if err := s.send(messages.EventEndTurn, messages.EndTurn{RoomID: s.roomID}); err != nil {
		return err
	}
	s.awaitingUpdate = true
	s.touch()
	return nil
}

// Pan moves the camera. A zero delta is the unimplemented zoom action and only logs.
func (s *Session) Pan(dx, dy int) {
	if dx == 0 && dy == 0 {
		s.Logf(ZoomNotImplemented)
		return
	}
	before := s.view
	s.view.Pan(dx, dy)
	if s.view != before {
		s.touch()
	}
}

// ResetViewport centres the camera on the start position.
func (s *Session) ResetViewport() {
	s.resetViewport()
	s.touch()
}

func (s *Session) resetViewport() {
	if s.snapshot == nil || s.snapshot.StartPos == nil {
		return
	}
	s.view.CenterOn(*s.snapshot.StartPos)
}
