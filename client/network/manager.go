package network

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/cbodonnell/frontline/pkg/queue"
	"github.com/google/uuid"
)

const (
	DefaultPingInterval = 5 * time.Second

	recentRTTCount = 10
)

// NetworkManager is the client's gateway to the game server. A reader goroutine feeds
// inbound envelopes into the server message queue; the game loop drains it.
type NetworkManager struct {
	serverURL          string
	compress           bool
	pingInterval       time.Duration
	serverMessageQueue queue.Queue

	mu              sync.Mutex
	wsClient        *WSClient
	sessionID       string
	cancelClientCtx context.CancelFunc
	clientWaitGroup *sync.WaitGroup
	errChan         chan error

	rtts *rttWindow
}

type NewNetworkManagerOptions struct {
	ServerURL    string
	Compress     bool
	PingInterval time.Duration
	MessageQueue queue.Queue
}

func NewNetworkManager(opts NewNetworkManagerOptions) *NetworkManager {
	pingInterval := opts.PingInterval
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &NetworkManager{
		serverURL:          opts.ServerURL,
		compress:           opts.Compress,
		pingInterval:       pingInterval,
		serverMessageQueue: opts.MessageQueue,
		clientWaitGroup:    &sync.WaitGroup{},
		errChan:            make(chan error, 1),
		rtts:               newRTTWindow(recentRTTCount),
	}
}

// Start connects to the server and starts the reader and ping goroutines.
func (m *NetworkManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.wsClient != nil {
		return fmt.Errorf("network manager already started")
	}

	sessionID := uuid.New().String()
	wsClient := NewWSClient(WSClientOptions{
		ServerURL:    m.serverURL,
		SessionID:    sessionID,
		Compress:     m.compress,
		MessageQueue: m.serverMessageQueue,
		OnRTT:        m.recordRTT,
	})
	if err := wsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to start websocket client: %v", err)
	}

	clientCtx, cancel := context.WithCancel(context.Background())
	m.wsClient = wsClient
	m.sessionID = sessionID
	m.cancelClientCtx = cancel

	m.clientWaitGroup.Add(2)
	go func() {
		defer m.clientWaitGroup.Done()
		if err := wsClient.HandleMessages(clientCtx); err != nil {
			m.reportError(err)
		}
	}()
	go func() {
		defer m.clientWaitGroup.Done()
		m.pingLoop(clientCtx, wsClient)
	}()

	log.Info("Connected to server with session ID %s", sessionID)
	return nil
}

func (m *NetworkManager) pingLoop(ctx context.Context, c *WSClient) {
	ticker := time.NewTicker(m.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.Ping(); err != nil {
				log.Debug("Failed to ping server: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *NetworkManager) reportError(err error) {
	select {
	case m.errChan <- err:
	default:
		log.Warn("Dropping network error: %v", err)
	}
}

// recordRTT feeds the ping window.
func (m *NetworkManager) recordRTT(rtt time.Duration) {
	m.rtts.Add(rtt)
}

// Stop closes the connection, waits for the goroutines and clears the server message queue.
func (m *NetworkManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancelClientCtx == nil {
		log.Warn("Network manager already stopped")
		return nil
	}
	m.cancelClientCtx()
	if err := m.wsClient.Close(); err != nil {
		log.Debug("Failed to close websocket client: %v", err)
	}

	log.Debug("Waiting for clients to stop")
	m.clientWaitGroup.Wait()
	if err := m.serverMessageQueue.ClearQueue(); err != nil {
		return fmt.Errorf("failed to clear server message queue: %v", err)
	}

	m.wsClient = nil
	m.sessionID = ""
	m.cancelClientCtx = nil
	select {
	case <-m.errChan:
	default:
	}

	log.Info("Network manager stopped")
	return nil
}

func (m *NetworkManager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wsClient != nil
}

func (m *NetworkManager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Send wraps the payload in an envelope and writes it. There is no retry.
func (m *NetworkManager) Send(event string, payload interface{}) error {
	m.mu.Lock()
	c := m.wsClient
	m.mu.Unlock()
	if c == nil {
		return ErrNotConnected
	}

	e, err := messages.NewEnvelope(event, payload)
	if err != nil {
		return err
	}
	log.Debug("Sending %s event", event)
	return c.SendMessage(e)
}

// Ping returns the smoothed round trip time in milliseconds.
func (m *NetworkManager) Ping() float64 {
	return m.rtts.Milliseconds()
}

func (m *NetworkManager) ServerMessageQueue() queue.Queue {
	return m.serverMessageQueue
}

// ErrChan delivers at most one pending connection error.
func (m *NetworkManager) ErrChan() <-chan error {
	return m.errChan
}
