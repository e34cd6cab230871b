package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type testConn struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, srv *httptest.Server) *testConn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	conn.SetReadLimit(messages.MessageBufferSize)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return &testConn{t: t, conn: conn}
}

func (c *testConn) send(event string, payload interface{}) {
	c.t.Helper()
	e, err := messages.NewEnvelope(event, payload)
	require.NoError(c.t, err)
	b, err := messages.SerializeEnvelope(e)
	require.NoError(c.t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(c.t, c.conn.Write(ctx, websocket.MessageText, b))
}

func (c *testConn) recv() *messages.Envelope {
	c.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	typ, b, err := c.conn.Read(ctx)
	require.NoError(c.t, err)
	require.Equal(c.t, websocket.MessageText, typ)
	e, err := messages.DeserializeEnvelope(b)
	require.NoError(c.t, err)
	return e
}

func (c *testConn) recvSnapshot() *types.Snapshot {
	c.t.Helper()
	e := c.recv()
	require.Equal(c.t, messages.EventGameUpdate, e.Event)
	s, err := messages.DecodePayload[messages.GameUpdate](e)
	require.NoError(c.t, err)
	return s
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(NewServerOptions{Seed: 42})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func TestServer_Healthz(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RoomLifecycle(t *testing.T) {
	s, srv := newTestServer(t)
	host := dial(t, srv)
	guest := dial(t, srv)

	host.send(messages.EventCreateRoom, messages.CreateRoom{Name: "Azure"})
	e := host.recv()
	require.Equal(t, messages.EventRoomCreated, e.Event)
	created, err := messages.DecodePayload[messages.RoomCreated](e)
	require.NoError(t, err)
	assert.Len(t, created.RoomID, 5)
	assert.Equal(t, types.PlayerID(1), created.PID)
	assert.Equal(t, 1, s.RoomCount())

	guest.send(messages.EventJoinRoom, messages.JoinRoom{RoomID: created.RoomID, Name: ""})
	e = guest.recv()
	require.Equal(t, messages.EventJoinedRoom, e.Event)
	joined, err := messages.DecodePayload[messages.JoinedRoom](e)
	require.NoError(t, err)
	assert.Equal(t, types.PlayerID(2), joined.PID)

	guest.send(messages.EventStartGameReq, messages.StartGameRequest{RoomID: created.RoomID})
	assert.Equal(t, messages.EventError, guest.recv().Event)

	host.send(messages.EventStartGameReq, messages.StartGameRequest{RoomID: created.RoomID})
	hs := host.recvSnapshot()
	gs := guest.recvSnapshot()

	assert.Equal(t, 1, hs.Turn)
	assert.Equal(t, types.PlayerID(1), hs.SelfID)
	assert.Equal(t, types.PlayerID(2), gs.SelfID)
	assert.Equal(t, 32, hs.Rows())
	assert.Equal(t, 64, hs.Cols())
	require.NotNil(t, hs.StartPos)
	assert.Equal(t, "Player", hs.PlayerName(2))
	require.Len(t, hs.Units, 2)
	assert.Equal(t, 900, hs.SelfResources.Fund)
	assert.NotEmpty(t, hs.Territories[1])

	host.send(messages.EventEndTurn, messages.EndTurn{RoomID: created.RoomID})
	guest.send(messages.EventEndTurn, messages.EndTurn{RoomID: created.RoomID})
	assert.Equal(t, 2, host.recvSnapshot().Turn)
	assert.Equal(t, 2, guest.recvSnapshot().Turn)
}

func TestServer_JoinErrors(t *testing.T) {
	_, srv := newTestServer(t)
	c := dial(t, srv)

	c.send(messages.EventJoinRoom, messages.JoinRoom{RoomID: "000ZZ", Name: "Ann"})
	e := c.recv()
	require.Equal(t, messages.EventError, e.Event)
	msg, err := messages.DecodePayload[messages.Error](e)
	require.NoError(t, err)
	assert.Equal(t, "Room not found or started", msg.Msg)
}

func TestServer_RoomFull(t *testing.T) {
	_, srv := newTestServer(t)
	host := dial(t, srv)
	host.send(messages.EventCreateRoom, messages.CreateRoom{Name: "Host"})
	created, err := messages.DecodePayload[messages.RoomCreated](host.recv())
	require.NoError(t, err)

	for i := 1; i < MaxPlayers; i++ {
		c := dial(t, srv)
		c.send(messages.EventJoinRoom, messages.JoinRoom{RoomID: created.RoomID, Name: "P"})
		require.Equal(t, messages.EventJoinedRoom, c.recv().Event)
	}

	extra := dial(t, srv)
	extra.send(messages.EventJoinRoom, messages.JoinRoom{RoomID: created.RoomID, Name: "Late"})
	e := extra.recv()
	require.Equal(t, messages.EventError, e.Event)
	msg, err := messages.DecodePayload[messages.Error](e)
	require.NoError(t, err)
	assert.Equal(t, "Room full", msg.Msg)
}

func TestServer_MoveAndProduce(t *testing.T) {
	_, srv := newTestServer(t)
	c := dial(t, srv)
	c.send(messages.EventCreateRoom, messages.CreateRoom{Name: "Solo"})
	created, err := messages.DecodePayload[messages.RoomCreated](c.recv())
	require.NoError(t, err)
	c.send(messages.EventStartGameReq, messages.StartGameRequest{RoomID: created.RoomID})
	s := c.recvSnapshot()
	require.Len(t, s.Units, 1)
	u := s.Units[0]

	dest := types.Cell{R: u.Y, C: u.X + 1}
	c.send(messages.EventActionMove, messages.ActionMove{RoomID: created.RoomID, UnitID: u.ID, R: dest.R, C: dest.C})
	s = c.recvSnapshot()
	assert.Equal(t, dest, s.Units[0].Cell())
	assert.Equal(t, 0, s.Units[0].MoveLeft)

	c.send(messages.EventActionProduce, messages.ActionProduce{RoomID: created.RoomID, R: u.Y, C: u.X, Type: types.UnitTypeTank})
	s = c.recvSnapshot()
	require.Len(t, s.Units, 2)
	assert.Equal(t, types.UnitTypeTank, s.Units[1].Type)
	assert.Equal(t, types.PlayerID(1), s.Units[1].Owner)

	c.send(messages.EventEndTurn, messages.EndTurn{RoomID: created.RoomID})
	s = c.recvSnapshot()
	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, unitDefs[types.UnitTypeInfantry].Move, s.Units[0].MoveLeft)
}

func TestServer_MoveWithoutMovesLeftIgnored(t *testing.T) {
	_, srv := newTestServer(t)
	c := dial(t, srv)
	c.send(messages.EventCreateRoom, messages.CreateRoom{Name: "Solo"})
	created, err := messages.DecodePayload[messages.RoomCreated](c.recv())
	require.NoError(t, err)
	c.send(messages.EventStartGameReq, messages.StartGameRequest{RoomID: created.RoomID})
	s := c.recvSnapshot()
	require.Len(t, s.Units, 1)
	u := s.Units[0]
	origin := u.Cell()

	dest := types.Cell{R: u.Y, C: u.X + 1}
	c.send(messages.EventActionMove, messages.ActionMove{RoomID: created.RoomID, UnitID: u.ID, R: dest.R, C: dest.C})
	s = c.recvSnapshot()
	require.Equal(t, dest, s.Units[0].Cell())
	require.Equal(t, 0, s.Units[0].MoveLeft)

	c.send(messages.EventActionMove, messages.ActionMove{RoomID: created.RoomID, UnitID: u.ID, R: origin.R, C: origin.C})
	s = c.recvSnapshot()
	assert.Equal(t, dest, s.Units[0].Cell())
	assert.Equal(t, 0, s.Units[0].MoveLeft)
}

func TestGenerateWorld(t *testing.T) {
	w := GenerateWorld(newRand(1), 32, 64)

	assert.Equal(t, 32, w.rows())
	assert.Equal(t, 64, w.cols())
	assert.Len(t, w.ResourcePoints, resourceCount)
	for _, p := range w.ResourcePoints {
		assert.True(t, w.Map[p.R][p.C].IsLand)
	}
	assert.Equal(t, 1, w.Turn)
}
