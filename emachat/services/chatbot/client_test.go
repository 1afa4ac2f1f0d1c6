package chatbot

import (
	"context"
	"emachat/emachat/types"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// newServer runs handler for every accepted socket.
func newServer(t *testing.T, handler func(ctx context.Context, conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		handler(r.Context(), conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream/chatbot/ws/"
}

func next(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev, ok := <-c.Events():
		require.True(t, ok, "event channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func drain(t *testing.T, c *Client) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("timed out draining events")
			return out
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, id, msg string) error {
	b, _ := json.Marshal(types.Frame{ID: id, Message: msg})
	return conn.Write(ctx, websocket.MessageText, b)
}

func TestClient_StreamsFramesThenRemoteClose(t *testing.T) {
	srv := newServer(t, func(ctx context.Context, conn *websocket.Conn) {
		_ = writeFrame(ctx, conn, "r1", "Hel")
		_ = writeFrame(ctx, conn, "r1", "Hello")
		conn.Close(websocket.StatusNormalClosure, "bye")
	})

	c := Connect(context.Background(), wsURL(srv))
	defer c.Close()

	assert.Equal(t, EventOpen, next(t, c).Kind)
	assert.Equal(t, types.Frame{ID: "r1", Message: "Hel"}, next(t, c).Frame)
	assert.Equal(t, types.Frame{ID: "r1", Message: "Hello"}, next(t, c).Frame)

	rest := drain(t, c)
	require.Len(t, rest, 1)
	assert.Equal(t, EventClose, rest[0].Kind)
	assert.Equal(t, websocket.StatusNormalClosure, rest[0].Code)
	assert.Equal(t, "bye", rest[0].Reason)
	assert.Equal(t, types.Closed, c.State())
}

func TestClient_SendIsRawText(t *testing.T) {
	got := make(chan string, 1)
	srv := newServer(t, func(ctx context.Context, conn *websocket.Conn) {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ == websocket.MessageText {
			got <- string(data)
		}
		_ = writeFrame(ctx, conn, "r1", "echo: "+string(data))
		conn.Read(ctx)
	})

	c := Connect(context.Background(), wsURL(srv))
	defer c.Close()
	require.Equal(t, EventOpen, next(t, c).Kind)
	assert.Equal(t, types.Open, c.State())

	require.NoError(t, c.Send(context.Background(), "olá mundo"))
	assert.Equal(t, "olá mundo", <-got)
	assert.Equal(t, "echo: olá mundo", next(t, c).Frame.Message)
}

func TestClient_DropsMalformedFrames(t *testing.T) {
	srv := newServer(t, func(ctx context.Context, conn *websocket.Conn) {
		conn.Write(ctx, websocket.MessageText, []byte("not json"))
		conn.Write(ctx, websocket.MessageText, []byte(`{"message":"no id"}`))
		conn.Write(ctx, websocket.MessageBinary, []byte{0x01, 0x02})
		_ = writeFrame(ctx, conn, "r1", "ok")
		conn.Close(websocket.StatusNormalClosure, "")
	})

	c := Connect(context.Background(), wsURL(srv))
	defer c.Close()

	evs := drain(t, c)
	kinds := make([]EventKind, len(evs))
	for i, ev := range evs {
		kinds[i] = ev.Kind
	}
	assert.Equal(t, []EventKind{EventOpen, EventFrame, EventClose}, kinds)
	assert.Equal(t, "ok", evs[1].Frame.Message)
}

func TestClient_DialFailureIsReportedNotReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(srv)
	srv.Close()

	c := Connect(context.Background(), url)
	evs := drain(t, c)
	require.Len(t, evs, 2)
	assert.Equal(t, EventError, evs[0].Kind)
	assert.Error(t, evs[0].Err)
	assert.Equal(t, EventClose, evs[1].Kind)
	assert.Equal(t, types.Closed, c.State())

	err := c.Send(context.Background(), "hi")
	assert.True(t, errors.Is(err, ErrNotOpen))
	c.Close()
}

func TestClient_AbnormalCloseEmitsError(t *testing.T) {
	srv := newServer(t, func(ctx context.Context, conn *websocket.Conn) {
		_ = writeFrame(ctx, conn, "r1", "partial")
		conn.CloseNow()
	})

	c := Connect(context.Background(), wsURL(srv))
	defer c.Close()

	evs := drain(t, c)
	require.GreaterOrEqual(t, len(evs), 3)
	assert.Equal(t, EventOpen, evs[0].Kind)
	assert.Equal(t, EventError, evs[len(evs)-2].Kind)
	assert.Equal(t, EventClose, evs[len(evs)-1].Kind)
}

func TestClient_CloseIsIdempotentAndStopsReader(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := Connect(context.Background(), wsURL(srv))
	require.Equal(t, EventOpen, next(t, c).Kind)

	c.Close()
	c.Close()
	assert.Equal(t, types.Closed, c.State())

	evs := drain(t, c)
	require.Len(t, evs, 1)
	assert.Equal(t, EventClose, evs[0].Kind)
	assert.Equal(t, websocket.StatusNormalClosure, evs[0].Code)

	assert.True(t, errors.Is(c.Send(context.Background(), "late"), ErrNotOpen))
}

func TestClient_CloseWhileConnecting(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := Connect(context.Background(), wsURL(srv))
	assert.Equal(t, types.Connecting, c.State())
	c.Close()

	evs := drain(t, c)
	require.Len(t, evs, 1)
	assert.Equal(t, EventClose, evs[0].Kind)
	assert.Equal(t, types.Closed, c.State())
}
