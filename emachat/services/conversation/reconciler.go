package conversation

import (
	"strings"

	"emachat/emachat/types"

	"github.com/google/uuid"
)

// Reconciler owns one conversation State and the id source for local sends.
// It is not safe for concurrent use; drive it from a single event loop.
type Reconciler struct {
	state State
	newID func() string
}

type Option func(*Reconciler)

// WithIDGenerator replaces the uuid generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(r *Reconciler) { r.newID = fn }
}

func NewReconciler(opts ...Option) *Reconciler {
	r := &Reconciler{newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnLocalSend records text as a new local message. Blank text is ignored and
// reported with ok=false.
func (r *Reconciler) OnLocalSend(text string) (msg types.ChatMessage, ok bool) {
	if strings.TrimSpace(text) == "" {
		return types.ChatMessage{}, false
	}
	id := r.newID()
	for r.state.Index(id) >= 0 {
		id = r.newID()
	}
	r.state = Reduce(r.state, LocalSend{ID: id, Text: text})
	return r.state.Messages[0], true
}

func (r *Reconciler) OnRemoteFrame(f types.Frame) Outcome {
	next, outcome := reduceFrame(r.state, f)
	r.state = next
	return outcome
}

func (r *Reconciler) OnConnection(cs types.ConnectionState) {
	r.state = Reduce(r.state, ConnectionEvent{State: cs})
}

// State returns the current snapshot. Callers must not modify its slice.
func (r *Reconciler) State() State {
	return r.state
}

// Messages returns a copy of the list, newest first.
func (r *Reconciler) Messages() []types.ChatMessage {
	out := make([]types.ChatMessage, len(r.state.Messages))
	copy(out, r.state.Messages)
	return out
}
