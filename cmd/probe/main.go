package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cbodonnell/frontline/pkg/messages"
	"github.com/gorilla/websocket"
)

// probe is a line console for the game server: each input line is "<event> [json payload]".
func main() {
	serverURL := flag.String("server", "ws://localhost:5000/ws", "Game server websocket URL")
	compress := flag.Bool("compress", false, "Send zstd compressed binary frames")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func(conn *websocket.Conn, cancel context.CancelFunc) {
		for {
			messageType, data, err := conn.ReadMessage()
			if err != nil {
				fmt.Println("Server disconnected:", err)
				cancel()
				return
			}
			e, err := decode(messageType, data)
			if err != nil {
				fmt.Println("Error decoding message:", err)
				continue
			}
			fmt.Printf("Server: %s %s\n", e.Event, string(e.Data))
		}
	}(conn, cancel)

	go func(conn *websocket.Conn, cancel context.CancelFunc) {
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("Enter event (type 'exit' to quit): ")
			if !scanner.Scan() {
				cancel()
				return
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" {
				fmt.Println("Received exit command, exiting.")
				cancel()
				return
			}

			messageType, data, err := encode(line, *compress)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			if err := conn.WriteMessage(messageType, data); err != nil {
				fmt.Println("Error sending message to server:", err)
				return
			}
		}
	}(conn, cancel)

	// Gracefully handle Ctrl+C to stop the program
	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopSignal:
		fmt.Println("Received stop signal, exiting.")
	case <-ctx.Done():
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	fmt.Println("Exiting probe.")
}

// encode turns `event {"json":"payload"}` into a frame. A missing payload sends {}.
func encode(line string, compress bool) (int, []byte, error) {
	event, payload, _ := strings.Cut(line, " ")
	payload = strings.TrimSpace(payload)
	if payload == "" {
		payload = "{}"
	}
	if !json.Valid([]byte(payload)) {
		return 0, nil, fmt.Errorf("payload is not valid JSON: %s", payload)
	}
	e := &messages.Envelope{Event: event, Data: json.RawMessage(payload)}
	if compress {
		b, err := messages.SerializeCompressedEnvelope(e)
		return websocket.BinaryMessage, b, err
	}
	b, err := messages.SerializeEnvelope(e)
	return websocket.TextMessage, b, err
}

func decode(messageType int, data []byte) (*messages.Envelope, error) {
	if messageType == websocket.BinaryMessage {
		return messages.DeserializeCompressedEnvelope(data)
	}
	return messages.DeserializeEnvelope(data)
}
