// emachat/types/chat.go
package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sender tells who authored a ChatMessage.
type Sender int

const (
	Local Sender = iota
	Remote
)

func (s Sender) String() string {
	if s == Local {
		return "local"
	}
	return "remote"
}

type ChatMessage struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

// Frame is one inbound record from the chatbot service. Message carries the
// full current text of the reply, not a delta.
type Frame struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

var ErrMalformedFrame = errors.New("malformed frame")

// ParseFrame decodes an inbound payload. Anything that is not an object with a
// non-empty string id and a string message is ErrMalformedFrame.
func ParseFrame(data []byte) (Frame, error) {
	var raw struct {
		ID      *string `json:"id"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if raw.ID == nil || *raw.ID == "" {
		return Frame{}, fmt.Errorf("%w: missing id", ErrMalformedFrame)
	}
	if raw.Message == nil {
		return Frame{}, fmt.Errorf("%w: missing message", ErrMalformedFrame)
	}
	return Frame{ID: *raw.ID, Message: *raw.Message}, nil
}
