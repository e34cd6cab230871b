package network

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/cbodonnell/frontline/pkg/queue"
	"github.com/gorilla/websocket"
)

const (
	// SessionHeader carries the client session id on the upgrade request.
	SessionHeader = "X-Session-ID"

	writeTimeout = 5 * time.Second
)

// WSClient is one WebSocket connection to the game server.
type WSClient struct {
	serverURL    string
	sessionID    string
	compress     bool
	messageQueue queue.Queue
	onRTT        func(rtt time.Duration)

	conn    *websocket.Conn
	writeMu sync.Mutex
}

type WSClientOptions struct {
	ServerURL    string
	SessionID    string
	Compress     bool
	MessageQueue queue.Queue
	// OnRTT is called from the read goroutine for every pong.
	OnRTT func(rtt time.Duration)
}

func NewWSClient(opts WSClientOptions) *WSClient {
	return &WSClient{
		serverURL:    opts.ServerURL,
		sessionID:    opts.SessionID,
		compress:     opts.Compress,
		messageQueue: opts.MessageQueue,
		onRTT:        opts.OnRTT,
	}
}

// Connect dials the server.
func (c *WSClient) Connect(ctx context.Context) error {
	log.Info("Connecting to WebSocket server at %s", c.serverURL)
	header := http.Header{}
	header.Set(SessionHeader, c.sessionID)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.serverURL, header)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %v", err)
	}
	conn.SetReadLimit(messages.MessageBufferSize)
	conn.SetPongHandler(c.handlePong)
	c.conn = conn
	return nil
}

// HandleMessages reads frames until the connection ends. Envelopes are enqueued in arrival order.
func (c *WSClient) HandleMessages(ctx context.Context) error {
	defer c.conn.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		messageType, b, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			closeErr := &websocket.CloseError{}
			if errors.As(err, &closeErr) {
				log.Info("Connection closed by server: %v", closeErr)
				return &ErrConnectionClosedByServer{Code: closeErr.Code, Text: closeErr.Text}
			}
			return fmt.Errorf("failed to read message: %v", err)
		}

		if err := c.handleMessage(messageType, b); err != nil {
			log.Error("Failed to handle message: %v", err)
		}
	}
}

func (c *WSClient) handleMessage(messageType int, b []byte) error {
	var (
		e   *messages.Envelope
		err error
	)
	switch messageType {
	case websocket.TextMessage:
		e, err = messages.DeserializeEnvelope(b)
	case websocket.BinaryMessage:
		e, err = messages.DeserializeCompressedEnvelope(b)
	default:
		return fmt.Errorf("unexpected websocket message type %d", messageType)
	}
	if err != nil {
		return fmt.Errorf("failed to deserialize envelope: %v", err)
	}
	log.Trace("Received %s event", e.Event)

	if err := c.messageQueue.Enqueue(e); err != nil {
		return fmt.Errorf("failed to enqueue %s event: %v", e.Event, err)
	}
	return nil
}

// SendMessage writes an envelope. Safe for concurrent use.
func (c *WSClient) SendMessage(e *messages.Envelope) error {
	messageType := websocket.TextMessage
	serialize := messages.SerializeEnvelope
	if c.compress {
		messageType = websocket.BinaryMessage
		serialize = messages.SerializeCompressedEnvelope
	}
	b, err := serialize(e)
	if err != nil {
		return fmt.Errorf("failed to serialize envelope: %v", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %v", err)
	}
	if err := c.conn.WriteMessage(messageType, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

// Ping sends a ping control frame stamped with the current time.
func (c *WSClient) Ping() error {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, uint64(time.Now().UnixNano()))
	if err := c.conn.WriteControl(websocket.PingMessage, payload, time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to write ping: %v", err)
	}
	return nil
}

func (c *WSClient) handlePong(appData string) error {
	if len(appData) != 8 {
		return nil
	}
	sent := int64(binary.BigEndian.Uint64([]byte(appData)))
	rtt := time.Duration(time.Now().UnixNano() - sent)
	log.Trace("Pong after %s", rtt)
	if c.onRTT != nil {
		c.onRTT(rtt)
	}
	return nil
}

// Close sends a close frame and closes the connection.
func (c *WSClient) Close() error {
	if c.conn == nil {
		log.Warn("WebSocket connection is already closed")
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout)); err != nil {
		log.Debug("Failed to write close frame: %v", err)
	}
	return c.conn.Close()
}
