package types

// ConnectionState of the single chatbot socket.
type ConnectionState int

const (
	Idle ConnectionState = iota
	Connecting
	Open
	Closed
)

func (s ConnectionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return "unknown"
}
