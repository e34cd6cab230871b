package messages

import (
	"testing"

	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope_WireShape(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		payload interface{}
		want    string
	}{
		{
			name:    "create room",
			event:   EventCreateRoom,
			payload: CreateRoom{Name: "Ann"},
			want:    `{"event":"create_room","data":{"name":"Ann"}}`,
		},
		{
			name:    "move",
			event:   EventActionMove,
			payload: ActionMove{RoomID: "123AB", UnitID: "u7", R: 4, C: 9},
			want:    `{"event":"action_move","data":{"room_id":"123AB","unit_id":"u7","r":4,"c":9}}`,
		},
		{
			name:    "produce",
			event:   EventActionProduce,
			payload: ActionProduce{RoomID: "123AB", R: 1, C: 2, Type: types.UnitTypeTank},
			want:    `{"event":"action_produce","data":{"room_id":"123AB","r":1,"c":2,"type":"tank"}}`,
		},
		{
			name:    "end turn",
			event:   EventEndTurn,
			payload: EndTurn{RoomID: "123AB"},
			want:    `{"event":"end_turn","data":{"room_id":"123AB"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEnvelope(tt.event, tt.payload)
			require.NoError(t, err)
			b, err := SerializeEnvelope(e)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestDeserializeEnvelope_Inbound(t *testing.T) {
	e, err := DeserializeEnvelope([]byte(`{"event":"room_created","data":{"room_id":"042QX","pid":1}}`))
	require.NoError(t, err)
	assert.Equal(t, EventRoomCreated, e.Event)

	rc, err := DecodePayload[RoomCreated](e)
	require.NoError(t, err)
	assert.Equal(t, "042QX", rc.RoomID)
	assert.Equal(t, types.PlayerID(1), rc.PID)

	e, err = DeserializeEnvelope([]byte(`{"event":"error","data":{"msg":"Room full"}}`))
	require.NoError(t, err)
	msg, err := DecodePayload[Error](e)
	require.NoError(t, err)
	assert.Equal(t, "Room full", msg.Msg)
}

func TestDeserializeEnvelope_Invalid(t *testing.T) {
	_, err := DeserializeEnvelope([]byte(`not json`))
	assert.Error(t, err)

	_, err = DeserializeEnvelope([]byte(`{"data":{}}`))
	assert.Error(t, err)

	e, err := DeserializeEnvelope([]byte(`{"event":"joined_room","data":{"pid":"two"}}`))
	require.NoError(t, err)
	_, err = DecodePayload[JoinedRoom](e)
	assert.Error(t, err)
}

func TestCompressedEnvelope(t *testing.T) {
	s := types.NewEmptySnapshot(32, 64)
	s.Turn = 3
	s.SelfID = 2
	e, err := NewEnvelope(EventGameUpdate, s)
	require.NoError(t, err)

	b, err := SerializeCompressedEnvelope(e)
	require.NoError(t, err)

	plain, err := SerializeEnvelope(e)
	require.NoError(t, err)
	assert.Less(t, len(b), len(plain))

	got, err := DeserializeCompressedEnvelope(b)
	require.NoError(t, err)
	assert.Equal(t, EventGameUpdate, got.Event)

	snap, err := DecodePayload[GameUpdate](got)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Turn)
	assert.Equal(t, types.PlayerID(2), snap.SelfID)
	assert.Equal(t, 32, snap.Rows())
	assert.Equal(t, 64, snap.Cols())
}
