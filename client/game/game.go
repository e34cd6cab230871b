package game

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/frontline/client/flow"
	"github.com/cbodonnell/frontline/client/input"
	"github.com/cbodonnell/frontline/client/network"
	"github.com/cbodonnell/frontline/client/scenes"
	"github.com/cbodonnell/frontline/client/session"
	"github.com/cbodonnell/frontline/client/ui"
	"github.com/cbodonnell/frontline/pkg/game/constants"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	DefaultScreenWidth  = constants.CanvasWidth + PanelWidth
	DefaultScreenHeight = constants.CanvasHeight
	// PanelWidth is the width of the side panel to the right of the board.
	PanelWidth = 280

	connectTimeout = 5 * time.Second
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
// It is the only goroutine that touches the session.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// playerName pre-fills the lobby.
	playerName string
	// networkManager is the network manager.
	networkManager *network.NetworkManager
	// session is the client state.
	session *session.Session
	// phase is the phase the current scene was built for.
	phase flow.Phase
	// scene is the current scene.
	scene scenes.Scene
}

type NewGameOptions struct {
	Debug          bool
	PlayerName     string
	NetworkManager *network.NetworkManager
}

func NewGame(opts NewGameOptions) (ebiten.Game, error) {
	g := &Game{
		debug:          opts.Debug,
		playerName:     opts.PlayerName,
		networkManager: opts.NetworkManager,
	}
	g.session = session.NewSession(session.NewSessionOptions{
		Sender:   opts.NetworkManager,
		Viewport: session.NewViewport(constants.GridRows, constants.GridCols, constants.CanvasWidth, constants.CanvasHeight),
	})

	if err := g.loadScene(g.session.Phase()); err != nil {
		return nil, fmt.Errorf("failed to load lobby scene: %v", err)
	}

	return g, nil
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

func (g *Game) loadScene(phase flow.Phase) error {
	var (
		scene scenes.Scene
		err   error
	)
	switch phase {
	case flow.PhaseLobby:
		scene, err = scenes.NewLobbyScene(scenes.LobbySceneOptions{
			Session:    g.session,
			PlayerName: g.playerName,
			OnCreate:   g.createRoom,
			OnJoin:     g.joinRoom,
		})
	case flow.PhaseWaitingRoom:
		scene, err = scenes.NewWaitingRoomScene(scenes.WaitingRoomSceneOptions{
			Session: g.session,
			OnLeave: g.leave,
		})
	case flow.PhasePlaying:
		scene, err = scenes.NewGameScene(scenes.GameSceneOptions{
			Session: g.session,
			Layout: scenes.Layout{
				BoardWidth:  constants.CanvasWidth,
				BoardHeight: constants.CanvasHeight,
				PanelWidth:  PanelWidth,
			},
		})
	case flow.PhaseNetworkError:
		hint := "press enter to return to the lobby"
		msg := "Network Error"
		if n := g.session.Notice(); n != nil {
			hint = n.Message + " - " + hint
		}
		scene, err = scenes.NewErrorScene(msg, hint)
	default:
		return fmt.Errorf("no scene for phase %s", phase)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s scene: %v", phase, err)
	}
	if err := g.SetScene(scene); err != nil {
		return fmt.Errorf("failed to set %s scene: %v", phase, err)
	}
	g.phase = phase
	log.Debug("Loaded %s scene", phase)
	return nil
}

// connect starts the network manager on first use. The lobby is the only place that dials.
func (g *Game) connect() error {
	if g.networkManager.IsConnected() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := g.networkManager.Start(ctx); err != nil {
		log.Error("Failed to start network manager: %v", err)
		return ui.NewActionableError("Could not connect to the server.")
	}
	return nil
}

func (g *Game) createRoom(name string) error {
	if err := g.connect(); err != nil {
		return err
	}
	return g.session.CreateRoom(name)
}

func (g *Game) joinRoom(roomID, name string) error {
	if err := g.connect(); err != nil {
		return err
	}
	return g.session.JoinRoom(roomID, name)
}

func (g *Game) leave() error {
	if err := g.networkManager.Stop(); err != nil {
		return fmt.Errorf("failed to stop network manager: %v", err)
	}
	g.session.Reset()
	return nil
}

func (g *Game) Update() error {
	// Update the network manager
	if err := g.networkManagerUpdate(); err != nil {
		return fmt.Errorf("failed to update network manager: %v", err)
	}

	// Handle input
	if err := g.handleInput(); err != nil {
		return fmt.Errorf("failed to handle input: %v", err)
	}

	if phase := g.session.Phase(); phase != g.phase {
		if err := g.loadScene(phase); err != nil {
			return err
		}
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

func (g *Game) networkManagerUpdate() error {
	if !g.networkManager.IsConnected() {
		return nil
	}

	if err := g.checkNetworkManagerErrors(); err != nil {
		log.Error("Network manager error: %v", err)
		if err := g.networkManager.Stop(); err != nil {
			log.Warn("Failed to stop network manager: %v", err)
		}
		g.session.Disconnect(err)
		return nil
	}

	return g.processServerMessages()
}

// checkNetworkManagerErrors checks the network manager for errors and returns any that are found.
func (g *Game) checkNetworkManagerErrors() error {
	select {
	case err := <-g.networkManager.ErrChan():
		return fmt.Errorf("websocket client error: %v", err)
	default:
		return nil
	}
}

// processServerMessages applies every queued envelope in arrival order.
func (g *Game) processServerMessages() error {
	items, err := g.networkManager.ServerMessageQueue().ReadAllMessages()
	if err != nil {
		return fmt.Errorf("failed to read server messages: %v", err)
	}
	for _, item := range items {
		envelope, ok := item.(*messages.Envelope)
		if !ok {
			log.Warn("Unexpected queue item of type %T", item)
			continue
		}
		if err := g.session.HandleEnvelope(envelope); err != nil {
			log.Warn("Failed to handle %s event: %v", envelope.Event, err)
		}
	}
	return nil
}

func (g *Game) handleInput() error {
	if input.IsDebugJustPressed() {
		g.debug = !g.debug
	}

	switch g.phase {
	case flow.PhaseNetworkError:
		if input.IsPositiveJustPressed() {
			g.session.Reset()
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   Phase: %s  Mode: %s", g.session.Phase(), g.session.Mode()))

	if !g.networkManager.IsConnected() {
		return
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   Session: %s", g.networkManager.SessionID()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n\n   Ping: %0.1f", g.networkManager.Ping()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return DefaultScreenWidth, DefaultScreenHeight
}
