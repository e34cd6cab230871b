package flow

// Phase is where the client is in the room lifecycle.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseWaitingRoom
	PhasePlaying
	PhaseNetworkError
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "Lobby"
	case PhaseWaitingRoom:
		return "Waiting Room"
	case PhasePlaying:
		return "Playing"
	case PhaseNetworkError:
		return "Network Error"
	}
	return "Unknown"
}
