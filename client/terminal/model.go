package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/cbodonnell/frontline/client/flow"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/game/types"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/cbodonnell/frontline/pkg/queue"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tickInterval   = 50 * time.Millisecond
	connectTimeout = 5 * time.Second
	// boardTop is the screen line of the first board row.
	boardTop = 1
	// hudLogLines is how many log lines the side panel shows.
	hudLogLines = 6
)

// Connection is the part of the network manager the terminal client drives.
type Connection interface {
	session.Sender
	Start(ctx context.Context) error
	Stop() error
	IsConnected() bool
	ServerMessageQueue() queue.Queue
	ErrChan() <-chan error
	Ping() float64
}

type lobbyField int

const (
	fieldName lobbyField = iota
	fieldRoom
)

// tickMsg drains the server message queue.
type tickMsg time.Time

// connectedMsg reports the outcome of a lazy connect started from the lobby.
type connectedMsg struct {
	err   error
	after func() error
}

// Model is the bubbletea front end. Like the graphical client it owns the session
// and only touches it from Update.
type Model struct {
	conn    Connection
	session *session.Session

	width  int
	height int

	name       string
	roomID     string
	focus      lobbyField
	connecting bool
	lobbyErr   string

	cursor types.Cell
}

type NewModelOptions struct {
	Connection Connection
	PlayerName string
}

func NewModel(opts NewModelOptions) *Model {
	return &Model{
		conn: opts.Connection,
		session: session.NewSession(session.NewSessionOptions{
			Sender:   opts.Connection,
			Viewport: session.DefaultViewport(),
		}),
		name:   opts.PlayerName,
		width:  80,
		height: 24,
	}
}

// Session exposes the client state, mainly for tests.
func (m *Model) Session() *session.Session {
	return m.session
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// connectCmd dials off the update goroutine and hands the follow-up action back to it.
func connectCmd(conn Connection, after func() error) tea.Cmd {
	return func() tea.Msg {
		if conn.IsConnected() {
			return connectedMsg{after: after}
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return connectedMsg{err: conn.Start(ctx), after: after}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.pollNetwork()
		return m, tickCmd()

	case connectedMsg:
		m.connecting = false
		if msg.err != nil {
			log.Error("Failed to connect: %v", msg.err)
			m.lobbyErr = "Could not connect to the server."
			return m, nil
		}
		if err := msg.after(); err != nil {
			log.Error("Lobby action failed: %v", err)
			m.lobbyErr = "Could not reach the server."
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if n := m.session.Notice(); n != nil && m.session.Phase() == flow.PhasePlaying {
			m.session.DismissNotice()
			return m, nil
		}
		switch m.session.Phase() {
		case flow.PhaseLobby:
			return m.updateLobby(msg)
		case flow.PhaseWaitingRoom:
			return m.updateWaitingRoom(msg)
		case flow.PhasePlaying:
			return m.updatePlaying(msg)
		case flow.PhaseNetworkError:
			if msg.Type == tea.KeyEnter {
				m.session.Reset()
			}
			return m, nil
		}
	}
	return m, nil
}

// pollNetwork mirrors the graphical client's per-frame network step.
func (m *Model) pollNetwork() {
	if !m.conn.IsConnected() {
		return
	}
	select {
	case err := <-m.conn.ErrChan():
		log.Error("Network manager error: %v", err)
		if err := m.conn.Stop(); err != nil {
			log.Warn("Failed to stop network manager: %v", err)
		}
		m.session.Disconnect(err)
		return
	default:
	}

	items, err := m.conn.ServerMessageQueue().ReadAllMessages()
	if err != nil {
		log.Error("Failed to read server messages: %v", err)
		return
	}
	before := m.session.Turn()
	for _, item := range items {
		envelope, ok := item.(*messages.Envelope)
		if !ok {
			log.Warn("Unexpected queue item of type %T", item)
			continue
		}
		if err := m.session.HandleEnvelope(envelope); err != nil {
			log.Warn("Failed to handle %s event: %v", envelope.Event, err)
		}
	}
	if m.session.Turn() == 1 && before == 0 {
		if snap := m.session.Snapshot(); snap != nil && snap.StartPos != nil {
			m.cursor = *snap.StartPos
		}
	}
}

func (m *Model) updateLobby(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := &m.name
	if m.focus == fieldRoom {
		field = &m.roomID
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focus = 1 - m.focus
	case tea.KeyBackspace:
		if len(*field) > 0 {
			r := []rune(*field)
			*field = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		*field += string(msg.Runes)
	case tea.KeyEnter:
		if m.connecting {
			return m, nil
		}
		m.session.DismissNotice()
		m.lobbyErr = ""
		name, roomID := m.name, m.roomID
		var after func() error
		if m.focus == fieldRoom {
			if strings.TrimSpace(roomID) == "" {
				return m, nil
			}
			after = func() error { return m.session.JoinRoom(roomID, name) }
		} else {
			after = func() error { return m.session.CreateRoom(name) }
		}
		m.connecting = true
		return m, connectCmd(m.conn, after)
	case tea.KeyEsc:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateWaitingRoom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if err := m.session.StartGame(); err != nil {
			log.Error("Failed to start game: %v", err)
		}
	case "c":
		if err := clipboard.WriteAll(m.session.RoomID()); err != nil {
			log.Warn("Failed to copy room id: %v", err)
			m.session.Logf("Could not copy room id")
		} else {
			m.session.Logf("Copied room id %s", m.session.RoomID())
		}
	case "q", "esc":
		if err := m.conn.Stop(); err != nil {
			log.Warn("Failed to stop network manager: %v", err)
		}
		m.session.Reset()
	}
	return m, nil
}

func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.moveCursor(-1, 0)
	case "down":
		m.moveCursor(1, 0)
	case "left":
		m.moveCursor(0, -1)
	case "right":
		m.moveCursor(0, 1)
	case "enter", " ":
		m.click(m.cursor)
	case "esc":
		m.session.Cancel()
	case "m":
		m.session.RequestMoveMode()
	case "1", "2", "3", "4", "5":
		i := int(msg.String()[0] - '1')
		if i < len(types.ProducibleUnitTypes) {
			if err := m.session.Produce(types.ProducibleUnitTypes[i]); err != nil {
				log.Error("Failed to produce: %v", err)
				m.session.Logf("Production failed")
			}
		}
	case "e":
		if err := m.session.EndTurn(); err != nil {
			log.Error("Failed to end turn: %v", err)
			m.session.Logf("End turn failed")
		}
	case "home", "h":
		m.session.ResetViewport()
		if snap := m.session.Snapshot(); snap != nil && snap.StartPos != nil {
			m.cursor = *snap.StartPos
		}
	case "z":
		m.session.Pan(0, 0)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// moveCursor steps the keyboard cursor and pans the camera when it leaves the window.
func (m *Model) moveCursor(dr, dc int) {
	next := types.Cell{R: m.cursor.R + dr, C: m.cursor.C + dc}
	snap := m.session.Snapshot()
	if snap == nil || !snap.InBounds(next.R, next.C) {
		return
	}
	m.cursor = next
	if !m.session.Viewport().Contains(next) {
		m.session.Pan(dc, dr)
	}
}

func (m *Model) click(cell types.Cell) {
	if err := m.session.Click(cell.R, cell.C); err != nil {
		log.Error("Failed to handle click on %s: %v", cell, err)
		m.session.Logf("Move failed")
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.session.Phase() != flow.PhasePlaying {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if m.session.Notice() != nil {
		m.session.DismissNotice()
		return
	}
	col, row := msg.X/glyphWidth, msg.Y-boardTop
	cell, ok := m.session.Viewport().CellAt(col*constants.TileSize, row*constants.TileSize)
	if !ok {
		return
	}
	m.cursor = cell
	m.click(cell)
}

func (m *Model) View() string {
	switch m.session.Phase() {
	case flow.PhaseLobby:
		return m.viewLobby()
	case flow.PhaseWaitingRoom:
		return m.viewWaitingRoom()
	case flow.PhasePlaying:
		return m.viewPlaying()
	case flow.PhaseNetworkError:
		msg := "Network Error"
		if n := m.session.Notice(); n != nil {
			msg = n.Message
		}
		return m.center(lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render(msg),
			instructionStyle.Render("enter: back to lobby  ctrl+c: quit"),
		))
	}
	return ""
}

func (m *Model) center(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewLobby() string {
	nameStyle, roomStyle := inputBoxStyle, inputBoxStyle
	if m.focus == fieldName {
		nameStyle = focusedInputBoxStyle
	} else {
		roomStyle = focusedInputBoxStyle
	}
	errText := m.lobbyErr
	if n := m.session.Notice(); n != nil {
		errText = n.Message
	}
	status := ""
	if m.connecting {
		status = mutedStyle.Render("Connecting...")
	}
	return m.center(lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("FRONTLINE"),
		mutedStyle.Render("Player name"),
		nameStyle.Render(m.name),
		mutedStyle.Render("Room ID (leave empty to create)"),
		roomStyle.Render(m.roomID),
		status,
		errorStyle.Render(errText),
		instructionStyle.Render("tab: switch field  enter: create or join  esc: quit"),
	))
}

func (m *Model) viewWaitingRoom() string {
	role := "Waiting for the host to start the game"
	keys := "c: copy room id  q: leave"
	if m.session.IsHost() {
		role = "Share the room id, then start the game"
		keys = "s: start  " + keys
	}
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Room %s", m.session.RoomID())),
		highlightStyle.Render(fmt.Sprintf("You are player %d", m.session.PlayerID())),
		role,
	}
	if n := m.session.Notice(); n != nil {
		lines = append(lines, errorStyle.Render(n.Message))
	}
	for _, line := range m.session.Log() {
		lines = append(lines, mutedStyle.Render(line))
	}
	lines = append(lines, instructionStyle.Render(keys))
	return m.center(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m *Model) viewPlaying() string {
	s := m.session
	view := s.Viewport()

	unitTypes := make(map[string]types.UnitType)
	if snap := s.Snapshot(); snap != nil {
		for _, u := range snap.Units {
			if u != nil {
				unitTypes[u.ID] = u.Type
			}
		}
	}
	raster := Rasterize(s.DrawList(), view.Y, view.X, view.Rows, view.Cols, unitTypes)
	cursor := m.cursor
	board := raster.Render(&cursor)

	header := headerStyle.Render(fmt.Sprintf("Turn %d  %s  room %s  ping %.0fms",
		s.Turn(), s.CountryName(), s.RoomID(), m.conn.Ping()))

	res := s.Resources()
	panel := []string{
		fmt.Sprintf("Fund  %d", res.Fund),
		fmt.Sprintf("Man   %d", res.Man),
		fmt.Sprintf("Food  %d", res.Food),
		fmt.Sprintf("Steel %d", res.Steel),
		fmt.Sprintf("Oil   %d", res.Oil),
		"",
		"Selected: " + s.SelectionLabel(),
		m.actionsLine(),
		"",
	}
	for i, line := range s.Log() {
		if i >= hudLogLines {
			break
		}
		panel = append(panel, mutedStyle.Render(line))
	}
	side := panelStyle.Render(strings.Join(panel, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, board, side)
	footer := instructionStyle.Render("arrows: cursor  enter: select  m: move  1-5: produce  e: end turn  esc: cancel  h: reset  q: quit")
	out := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	if n := s.Notice(); n != nil {
		out = lipgloss.JoinVertical(lipgloss.Left, out, errorStyle.Render(n.Message+" (any key to dismiss)"))
	}
	return out
}

func (m *Model) actionsLine() string {
	a := m.session.Affordances()
	var parts []string
	if m.session.Mode() == session.ModeTileSelected {
		if a.CanMove {
			parts = append(parts, "m:move")
		}
		if a.CanProduce {
			for i, t := range types.ProducibleUnitTypes {
				parts = append(parts, fmt.Sprintf("%d:%s", i+1, t))
			}
		}
	}
	if !m.session.EndTurnEnabled() {
		parts = append(parts, mutedStyle.Render("waiting for turn"))
	}
	return strings.Join(parts, " ")
}
