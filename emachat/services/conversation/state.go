// Package conversation reconciles local sends and streamed chatbot frames into
// a newest-first list of chat messages.
package conversation

import (
	"emachat/emachat/types"
)

// State is one snapshot of the conversation. Messages is ordered newest first
// by creation; OpenID names the remote message still accepting merges.
type State struct {
	Messages   []types.ChatMessage
	OpenID     string
	Connection types.ConnectionState
}

// Event is anything Reduce understands.
type Event interface {
	isEvent()
}

// LocalSend is text the user submitted under a freshly generated id.
type LocalSend struct {
	ID   string
	Text string
}

// RemoteFrame is one parsed frame from the chatbot.
type RemoteFrame struct {
	Frame types.Frame
}

// ConnectionEvent reports a socket state change.
type ConnectionEvent struct {
	State types.ConnectionState
}

func (LocalSend) isEvent()       {}
func (RemoteFrame) isEvent()     {}
func (ConnectionEvent) isEvent() {}

// Outcome says what a RemoteFrame did to the state.
type Outcome int

const (
	Created Outcome = iota
	Merged
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Merged:
		return "merged"
	}
	return "stale"
}

// Index returns the position of id in the list or -1.
func (s State) Index(id string) int {
	for i, m := range s.Messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Open returns the message still accepting merges, if any.
func (s State) Open() (types.ChatMessage, bool) {
	if s.OpenID == "" {
		return types.ChatMessage{}, false
	}
	i := s.Index(s.OpenID)
	if i < 0 {
		return types.ChatMessage{}, false
	}
	return s.Messages[i], true
}
