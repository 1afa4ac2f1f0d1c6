// Package chatbot owns the one websocket to the chatbot service. Socket
// callbacks are delivered as Events on a channel read by a single consumer.
package chatbot

import (
	"context"
	"emachat/emachat/types"
	"emachat/emachat/utils/logging"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

var ErrNotOpen = errors.New("chatbot: connection not open")

type EventKind int

const (
	EventOpen EventKind = iota
	EventFrame
	EventError
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventFrame:
		return "frame"
	case EventError:
		return "error"
	}
	return "close"
}

// Event is one socket callback. Frame is set for EventFrame, Err for
// EventError, Code and Reason for EventClose.
type Event struct {
	Kind   EventKind
	Frame  types.Frame
	Err    error
	Code   websocket.StatusCode
	Reason string
}

type Client struct {
	url      string
	logger   *zap.Logger
	errorLog *zap.Logger
	frameLog *zap.Logger
	dialOpts *websocket.DialOptions
	buffer   int

	state  atomic.Int32
	events chan Event

	mu   sync.Mutex
	conn *websocket.Conn

	cancel    context.CancelFunc
	done      chan struct{}
	finished  chan struct{}
	closeOnce sync.Once
}

type Option func(*Client)

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
		c.errorLog = l
		c.frameLog = l
	}
}

func WithDialOptions(o *websocket.DialOptions) Option {
	return func(c *Client) { c.dialOpts = o }
}

// WithEventBuffer sizes the event channel.
func WithEventBuffer(n int) Option {
	return func(c *Client) { c.buffer = n }
}

// Connect starts dialing url and returns at once in the Connecting state.
// Failures are logged and reported as EventError followed by EventClose; there
// is no retry.
func Connect(ctx context.Context, url string, opts ...Option) *Client {
	c := &Client{
		url:      url,
		logger:   logging.AppLogger,
		errorLog: logging.ErrorLogger,
		frameLog: logging.SocketLogger,
		buffer:   64,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.events = make(chan Event, c.buffer)
	c.state.Store(int32(types.Connecting))

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.run(runCtx)
	return c
}

func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) State() types.ConnectionState {
	return types.ConnectionState(c.state.Load())
}

func (c *Client) URL() string {
	return c.url
}

// Send writes text verbatim as one text frame. Errors are logged and returned;
// there is no acknowledgement and no delivery guarantee.
func (c *Client) Send(ctx context.Context, text string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || c.State() != types.Open {
		c.errorLog.Error("send on closed socket", zap.String("url", c.url), zap.Error(ErrNotOpen))
		return ErrNotOpen
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte(text)); err != nil {
		c.errorLog.Error("send failed", zap.String("url", c.url), zap.Error(err))
		return fmt.Errorf("chatbot send: %w", err)
	}
	c.frameLog.Debug("sent", zap.Int("bytes", len(text)))
	return nil
}

// Close shuts the socket down and waits for the reader to exit. Safe to call
// more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			if err := conn.Close(websocket.StatusNormalClosure, ""); err != nil {
				c.logger.Debug("close handshake", zap.Error(err))
			}
		}
		c.cancel()
	})
	<-c.finished
}

func (c *Client) closing() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// emit drops the event once Close has been called and nobody is reading.
func (c *Client) emit(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
		select {
		case c.events <- ev:
		default:
		}
	}
}

func (c *Client) run(ctx context.Context) {
	defer close(c.finished)
	defer close(c.events)

	closeEv := c.serve(ctx)
	c.state.Store(int32(types.Closed))
	c.logger.Info("chatbot socket closed",
		zap.String("url", c.url),
		zap.Int("code", int(closeEv.Code)),
		zap.String("reason", closeEv.Reason),
	)
	c.emit(closeEv)
}

// serve dials and reads until the socket ends, returning the close event.
func (c *Client) serve(ctx context.Context) Event {
	stop := logging.LogDuration(ctx, "chatbot.Dial")
	conn, _, err := websocket.Dial(ctx, c.url, c.dialOpts)
	stop()
	if err != nil {
		if c.closing() {
			return Event{Kind: EventClose, Code: websocket.StatusNormalClosure}
		}
		c.errorLog.Error("chatbot dial failed", zap.String("url", c.url), zap.Error(err))
		c.emit(Event{Kind: EventError, Err: err})
		return Event{Kind: EventClose, Code: websocket.StatusAbnormalClosure, Reason: err.Error()}
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	if c.closing() {
		conn.Close(websocket.StatusNormalClosure, "")
		return Event{Kind: EventClose, Code: websocket.StatusNormalClosure}
	}
	c.state.Store(int32(types.Open))
	c.logger.Info("chatbot socket open", zap.String("url", c.url))
	c.emit(Event{Kind: EventOpen})

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return c.readFailure(conn, err)
		}
		if typ != websocket.MessageText {
			c.frameLog.Warn("dropped binary frame", zap.Int("bytes", len(data)))
			continue
		}
		frame, err := types.ParseFrame(data)
		if err != nil {
			c.frameLog.Warn("dropped malformed frame", zap.ByteString("payload", data), zap.Error(err))
			continue
		}
		c.frameLog.Debug("received", zap.String("id", frame.ID), zap.Int("len", len(frame.Message)))
		c.emit(Event{Kind: EventFrame, Frame: frame})
	}
}

func (c *Client) readFailure(conn *websocket.Conn, err error) Event {
	code := websocket.CloseStatus(err)
	if c.closing() {
		return Event{Kind: EventClose, Code: websocket.StatusNormalClosure}
	}
	if code == websocket.StatusNormalClosure || code == websocket.StatusGoingAway {
		var ce websocket.CloseError
		errors.As(err, &ce)
		return Event{Kind: EventClose, Code: code, Reason: ce.Reason}
	}
	c.errorLog.Error("chatbot socket error", zap.String("url", c.url), zap.Error(err))
	c.emit(Event{Kind: EventError, Err: err})
	conn.CloseNow()
	if code == -1 {
		code = websocket.StatusAbnormalClosure
	}
	return Event{Kind: EventClose, Code: code, Reason: err.Error()}
}
