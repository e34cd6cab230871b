package devserver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"nhooyr.io/websocket"
)

const (
	// SessionHeader is read from the upgrade request to label connections in logs.
	SessionHeader = "X-Session-ID"

	writeTimeout = 5 * time.Second
)

// Server is a scripted stand-in for the game server. It speaks the client protocol,
// keeps rooms and a world per started room, and applies intents without validating them.
type Server struct {
	mu    sync.Mutex
	rooms map[string]*room
	rng   *rand.Rand
	world func() (*World, error)

	router *mux.Router
	server *http.Server
}

type NewServerOptions struct {
	Port int
	// FixturePath loads the world from a JSON file instead of generating one.
	FixturePath string
	// Seed makes generated worlds and room ids reproducible.
	Seed int64
}

func NewServer(opts NewServerOptions) *Server {
	s := &Server{
		rooms: map[string]*room{},
		rng:   newRand(opts.Seed),
	}
	if opts.FixturePath != "" {
		s.world = func() (*World, error) {
			return LoadWorld(opts.FixturePath)
		}
	} else {
		s.world = func() (*World, error) {
			return GenerateWorld(s.rng, constants.GridRows, constants.GridCols), nil
		}
	}

	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleWS)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{roomID}", s.handleRoom).Methods(http.MethodGet)
	s.router = router

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return s
}

// Handler exposes the routes, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	log.Info("Dev server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Dev server closed")
			return nil
		}
		return fmt.Errorf("failed to serve: %v", err)
	}
	return nil
}

// handleRoom reports a room's players and turn, for poking at state by hand.
func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomID"]
	s.mu.Lock()
	rm, ok := s.rooms[roomID]
	var body string
	if ok {
		names := make([]string, 0, len(rm.players))
		for _, p := range rm.players {
			names = append(names, fmt.Sprintf("%d:%s", p.id, p.name))
		}
		turn := 0
		if rm.world != nil {
			turn = rm.world.Turn
		}
		body = fmt.Sprintf("room %s started=%v turn=%d players=%s\n", rm.id, rm.started, turn, strings.Join(names, ","))
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	w.Write([]byte(body))
}

// client is one websocket connection.
type client struct {
	sessionID string
	conn      *websocket.Conn
	binary    atomic.Bool

	// guarded by Server.mu
	room   *room
	player *player
}

type outbound struct {
	to       *client
	envelope *messages.Envelope
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Error("Failed to accept websocket: %v", err)
		return
	}
	conn.SetReadLimit(messages.MessageBufferSize)

	c := &client{
		sessionID: r.Header.Get(SessionHeader),
		conn:      conn,
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	log.Debug("New websocket connection %s from %s", c.sessionID, r.RemoteAddr)

	ctx := r.Context()
	defer func() {
		s.disconnect(c)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		messageType, b, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				log.Trace("Connection %s closed", c.sessionID)
			} else {
				log.Debug("Failed to read from %s: %v", c.sessionID, err)
			}
			return
		}

		var e *messages.Envelope
		if messageType == websocket.MessageBinary {
			c.binary.Store(true)
			e, err = messages.DeserializeCompressedEnvelope(b)
		} else {
			c.binary.Store(false)
			e, err = messages.DeserializeEnvelope(b)
		}
		if err != nil {
			log.Warn("Dropping frame from %s: %v", c.sessionID, err)
			continue
		}

		for _, out := range s.handleEnvelope(c, e) {
			if err := s.write(ctx, out); err != nil {
				log.Debug("Failed to write %s to %s: %v", out.envelope.Event, out.to.sessionID, err)
			}
		}
	}
}

func (s *Server) write(ctx context.Context, out outbound) error {
	messageType := websocket.MessageText
	serialize := messages.SerializeEnvelope
	if out.to.binary.Load() {
		messageType = websocket.MessageBinary
		serialize = messages.SerializeCompressedEnvelope
	}
	b, err := serialize(out.envelope)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return out.to.conn.Write(ctx, messageType, b)
}

func reply(to *client, event string, payload interface{}) []outbound {
	e, err := messages.NewEnvelope(event, payload)
	if err != nil {
		log.Error("Failed to build %s: %v", event, err)
		return nil
	}
	return []outbound{{to: to, envelope: e}}
}

func replyError(to *client, msg string) []outbound {
	return reply(to, messages.EventError, messages.Error{Msg: msg})
}

// handleEnvelope applies one event and returns what to send. Replies are built under
// the lock so snapshots are marshalled before anything else mutates the world.
func (s *Server) handleEnvelope(c *client, e *messages.Envelope) []outbound {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debug("Event %s from %s", e.Event, c.sessionID)
	switch e.Event {
	case messages.EventCreateRoom:
		msg, err := messages.DecodePayload[messages.CreateRoom](e)
		if err != nil {
			return replyError(c, "Invalid request")
		}
		return s.createRoom(c, msg)
	case messages.EventJoinRoom:
		msg, err := messages.DecodePayload[messages.JoinRoom](e)
		if err != nil {
			return replyError(c, "Invalid request")
		}
		return s.joinRoom(c, msg)
	case messages.EventStartGameReq:
		msg, err := messages.DecodePayload[messages.StartGameRequest](e)
		if err != nil {
			return replyError(c, "Invalid request")
		}
		return s.startGame(c, msg.RoomID)
	case messages.EventEndTurn:
		if c.room == nil || !c.room.started {
			return nil
		}
		if c.room.endTurn(c.player) {
			return s.broadcast(c.room)
		}
		return nil
	case messages.EventActionMove:
		msg, err := messages.DecodePayload[messages.ActionMove](e)
		if err != nil || c.room == nil || !c.room.started {
			return nil
		}
		return s.move(c, msg)
	case messages.EventActionProduce:
		msg, err := messages.DecodePayload[messages.ActionProduce](e)
		if err != nil || c.room == nil || !c.room.started {
			return nil
		}
		return s.produce(c, msg)
	default:
		log.Warn("Unknown event %q from %s", e.Event, c.sessionID)
		return nil
	}
}

func (s *Server) newRoomID() string {
	for {
		id := fmt.Sprintf("%03d%c%c", s.rng.Intn(1000), 'A'+rune(s.rng.Intn(26)), 'A'+rune(s.rng.Intn(26)))
		if _, ok := s.rooms[id]; !ok {
			return id
		}
	}
}

func playerName(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return constants.DefaultPlayerName
	}
	return name
}

func (s *Server) createRoom(c *client, msg *messages.CreateRoom) []outbound {
	if c.room != nil {
		return replyError(c, "Already in a room")
	}
	rm := newRoom(s.newRoomID())
	p := rm.addPlayer(playerName(msg.Name), c)
	s.rooms[rm.id] = rm
	c.room, c.player = rm, p
	log.Info("Room %s created by %s", rm.id, p.name)
	return reply(c, messages.EventRoomCreated, messages.RoomCreated{RoomID: rm.id, PID: p.id})
}

func (s *Server) joinRoom(c *client, msg *messages.JoinRoom) []outbound {
	if c.room != nil {
		return replyError(c, "Already in a room")
	}
	rm, ok := s.rooms[strings.TrimSpace(msg.RoomID)]
	if !ok || rm.started {
		return replyError(c, "Room not found or started")
	}
	p := rm.addPlayer(playerName(msg.Name), c)
	if p == nil {
		return replyError(c, "Room full")
	}
	c.room, c.player = rm, p
	log.Info("%s joined room %s as player %d", p.name, rm.id, p.id)
	return reply(c, messages.EventJoinedRoom, messages.JoinedRoom{RoomID: rm.id, PID: p.id})
}

func (s *Server) startGame(c *client, roomID string) []outbound {
	rm, ok := s.rooms[roomID]
	if !ok || rm != c.room {
		return replyError(c, "Room not found")
	}
	if rm.host != c.player {
		return replyError(c, "Only the host can start the game")
	}
	if rm.started {
		return nil
	}
	w, err := s.world()
	if err != nil {
		log.Error("Failed to build world for room %s: %v", rm.id, err)
		return replyError(c, "Failed to start game")
	}
	rm.start(w, uuid.NewString)
	log.Info("Room %s started with %d players", rm.id, len(rm.players))
	return s.broadcast(rm)
}

func (s *Server) move(c *client, msg *messages.ActionMove) []outbound {
	w := c.room.world
	u := w.unitByID(msg.UnitID)
	if u == nil || u.Owner != c.player.id || u.MoveLeft <= 0 || !w.inBounds(msg.R, msg.C) {
		log.Debug("Ignoring move of %s to (%d,%d)", msg.UnitID, msg.R, msg.C)
		return s.broadcast(c.room)
	}
	u.X, u.Y = msg.C, msg.R
	u.MoveLeft = 0
	w.Map[msg.R][msg.C].Owner = c.player.id
	return s.broadcast(c.room)
}

func (s *Server) produce(c *client, msg *messages.ActionProduce) []outbound {
	w := c.room.world
	if !msg.Type.Known() || !w.inBounds(msg.R, msg.C) || w.unitAt(msg.R, msg.C) != nil {
		log.Debug("Ignoring produce of %s at (%d,%d)", msg.Type, msg.R, msg.C)
		return s.broadcast(c.room)
	}
	u := w.spawn(uuid.NewString(), c.player.id, msg.Type, types.Cell{R: msg.R, C: msg.C})
	u.MoveLeft = 0
	return s.broadcast(c.room)
}

func (s *Server) broadcast(rm *room) []outbound {
	out := make([]outbound, 0, len(rm.players))
	for _, p := range rm.players {
		out = append(out, reply(p.client, messages.EventGameUpdate, rm.snapshotFor(p))...)
	}
	return out
}

func (s *Server) disconnect(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.room == nil {
		return
	}
	rm := c.room
	rm.removePlayer(c.player)
	c.room, c.player = nil, nil
	if len(rm.players) == 0 {
		delete(s.rooms, rm.id)
		log.Info("Room %s closed", rm.id)
	}
}

// RoomCount is the number of open rooms.
func (s *Server) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
