package ui

// ActionableError is an error meant to be shown to the player as is.
type ActionableError struct {
	Message string
}

func (e *ActionableError) Error() string {
	return e.Message
}

// NewActionableError wraps a server or client message for display.
func NewActionableError(msg string) *ActionableError {
	if msg == "" {
		msg = "Unknown error"
	}
	return &ActionableError{Message: msg}
}
