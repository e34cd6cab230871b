package network

import "errors"

// ErrNotConnected is returned when sending before Start or after Stop.
var ErrNotConnected = errors.New("not connected to server")

// ErrConnectionClosedByServer is returned when the server ends the connection
type ErrConnectionClosedByServer struct {
	Code int
	Text string
}

func (e *ErrConnectionClosedByServer) Error() string {
	if e.Text == "" {
		return "connection closed by server"
	}
	return "connection closed by server: " + e.Text
}
