package main

import (
	"testing"

	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		compress bool
		wantType int
		wantData string
		wantErr  bool
	}{
		{name: "payload", line: `create_room {"name":"Ann"}`, wantType: websocket.TextMessage, wantData: `{"name":"Ann"}`},
		{name: "no payload", line: "end_turn", wantType: websocket.TextMessage, wantData: `{}`},
		{name: "compressed", line: `join_room {"roomId":"001AB"}`, compress: true, wantType: websocket.BinaryMessage, wantData: `{"roomId":"001AB"}`},
		{name: "bad json", line: "create_room {name", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageType, data, err := encode(tt.line, tt.compress)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, messageType)

			e, err := decode(messageType, data)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantData, string(e.Data))
		})
	}
}

func TestDecode_EventName(t *testing.T) {
	e, err := decode(websocket.TextMessage, []byte(`{"event":"error","data":{"msg":"Room full"}}`))
	require.NoError(t, err)
	assert.Equal(t, messages.EventError, e.Event)
}
