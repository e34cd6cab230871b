package session

// DefaultMessageLogSize is how many lines the HUD log keeps.
const DefaultMessageLogSize = 50

// MessageLog holds HUD lines, newest first.
type MessageLog struct {
	lines []string
	size  int
}

func NewMessageLog(size int) *MessageLog {
	if size <= 0 {
		size = DefaultMessageLogSize
	}
	return &MessageLog{size: size}
}

func (l *MessageLog) Add(line string) {
	l.lines = append([]string{line}, l.lines...)
	if len(l.lines) > l.size {
		l.lines = l.lines[:l.size]
	}
}

// Lines returns the log newest first. The slice must not be modified.
func (l *MessageLog) Lines() []string {
	return l.lines
}

func (l *MessageLog) Clear() {
	l.lines = nil
}
