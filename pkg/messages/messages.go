package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/frontline/pkg/game/types"
)

const (
	// MessageBufferSize is the maximum size of an inbound frame; a full 32x64 snapshot fits comfortably.
	MessageBufferSize = 1 << 20
)

// Outbound events
const (
	EventCreateRoom    = "create_room"
	EventJoinRoom      = "join_room"
	EventStartGameReq  = "start_game_req"
	EventEndTurn       = "end_turn"
	EventActionMove    = "action_move"
	EventActionProduce = "action_produce"
)

// Inbound events
const (
	EventRoomCreated = "room_created"
	EventJoinedRoom  = "joined_room"
	EventError       = "error"
	EventGameUpdate  = "game_update"
)

// Envelope is one event on the wire: {"event": name, "data": payload}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewEnvelope marshals payload into an envelope for the given event.
func NewEnvelope(event string, payload interface{}) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %v", event, err)
	}
	return &Envelope{Event: event, Data: data}, nil
}

// DecodePayload unmarshals the envelope data into a T.
func DecodePayload[T any](e *Envelope) (*T, error) {
	out := new(T)
	if len(e.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %v", e.Event, err)
	}
	return out, nil
}

type CreateRoom struct {
	Name string `json:"name"`
}

type JoinRoom struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

type StartGameRequest struct {
	RoomID string `json:"room_id"`
}

type EndTurn struct {
	RoomID string `json:"room_id"`
}

type ActionMove struct {
	RoomID string `json:"room_id"`
	UnitID string `json:"unit_id"`
	R      int    `json:"r"`
	C      int    `json:"c"`
}

type ActionProduce struct {
	RoomID string         `json:"room_id"`
	R      int            `json:"r"`
	C      int            `json:"c"`
	Type   types.UnitType `json:"type"`
}

// RoomCreated answers create_room; the sender becomes the room host.
type RoomCreated struct {
	RoomID string         `json:"room_id"`
	PID    types.PlayerID `json:"pid"`
}

type JoinedRoom struct {
	RoomID string         `json:"room_id"`
	PID    types.PlayerID `json:"pid"`
}

// Error is a protocol error reported by the server.
type Error struct {
	Msg string `json:"msg"`
}

// GameUpdate carries a full snapshot. It always replaces the previous one.
type GameUpdate = types.Snapshot
