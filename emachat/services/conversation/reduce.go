package conversation

import (
	"emachat/emachat/types"
)

// Reduce returns the state after ev. s is never modified.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case LocalSend:
		return reduceLocal(s, e)
	case RemoteFrame:
		next, _ := reduceFrame(s, e.Frame)
		return next
	case ConnectionEvent:
		s.Connection = e.State
		return s
	}
	return s
}

func reduceLocal(s State, e LocalSend) State {
	s.Messages = prepend(s.Messages, types.ChatMessage{ID: e.ID, Text: e.Text, Sender: types.Local})
	// the next reply starts a new bubble
	s.OpenID = ""
	return s
}

// reduceFrame overwrites the open message when the ids match. A frame for an
// id that already closed is dropped so the list keeps one entry per id.
func reduceFrame(s State, f types.Frame) (State, Outcome) {
	if s.OpenID != "" && s.OpenID == f.ID {
		if i := s.Index(f.ID); i >= 0 {
			msgs := make([]types.ChatMessage, len(s.Messages))
			copy(msgs, s.Messages)
			msgs[i].Text = f.Message
			s.Messages = msgs
			return s, Merged
		}
	}
	if s.Index(f.ID) >= 0 {
		return s, Stale
	}
	s.Messages = prepend(s.Messages, types.ChatMessage{ID: f.ID, Text: f.Message, Sender: types.Remote})
	s.OpenID = f.ID
	return s, Created
}

func prepend(msgs []types.ChatMessage, m types.ChatMessage) []types.ChatMessage {
	out := make([]types.ChatMessage, 0, len(msgs)+1)
	out = append(out, m)
	return append(out, msgs...)
}
