package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/partyline/client/internal/logger"
)

// test server that hands every accepted connection to the test
type testServer struct {
	*httptest.Server
	conns chan *websocket.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger.Discard()

	ts := &testServer{conns: make(chan *websocket.Conn, 1)}
	upgrader := websocket.Upgrader{}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.conns <- conn
	}))
	t.Cleanup(ts.Close)

	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func (ts *testServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()

	select {
	case conn := <-ts.conns:
		t.Cleanup(func() { conn.Close() })
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("server did not accept a connection")
		return nil
	}
}

func connect(t *testing.T, ts *testServer, opts ...Option) (*Client, *websocket.Conn) {
	t.Helper()

	client := NewClient(ts.wsURL(), opts...)
	require.NoError(t, client.Connect(context.Background()))
	t.Cleanup(client.Close)

	return client, ts.accept(t)
}

func TestEmitWritesFrame(t *testing.T) {
	ts := newTestServer(t)
	client, server := connect(t, ts)

	require.NoError(t, client.Emit("join party", "p1"))

	server.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	require.NoError(t, server.ReadJSON(&frame))

	assert.Equal(t, "join party", frame.Event)
	assert.JSONEq(t, `"p1"`, string(frame.Data))
}

func TestOnReceivesServerEvents(t *testing.T) {
	ts := newTestServer(t)
	client, server := connect(t, ts)

	received := make(chan json.RawMessage, 1)
	off := client.On("join", func(data json.RawMessage) {
		received <- data
	})
	defer off()

	require.NoError(t, server.WriteJSON(Frame{Event: "join", Data: json.RawMessage(`{"numUsers":4}`)}))

	select {
	case data := <-received:
		assert.JSONEq(t, `{"numUsers":4}`, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not called")
	}
}

func TestOffRemovesListener(t *testing.T) {
	ts := newTestServer(t)
	client, server := connect(t, ts)

	var mu sync.Mutex
	calls := 0
	off := client.On("host", func(json.RawMessage) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	marker := make(chan struct{}, 1)
	offMarker := client.On("marker", func(json.RawMessage) { marker <- struct{}{} })
	defer offMarker()

	assert.Equal(t, 1, client.ListenerCount("host"))

	off()
	off()
	assert.Equal(t, 0, client.ListenerCount("host"))

	require.NoError(t, server.WriteJSON(Frame{Event: "host", Data: json.RawMessage(`{"numUsers":1}`)}))
	require.NoError(t, server.WriteJSON(Frame{Event: "marker"}))

	select {
	case <-marker:
	case <-time.After(2 * time.Second):
		t.Fatal("marker listener was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestEmitErrors(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		client := NewClient("ws://127.0.0.1:1/socket")
		assert.ErrorIs(t, client.Emit("join party", "p1"), ErrNotConnected)
	})

	t.Run("empty event", func(t *testing.T) {
		client := NewClient("ws://127.0.0.1:1/socket")
		assert.ErrorIs(t, client.Emit("", "p1"), ErrEmptyEvent)
	})

	t.Run("closed", func(t *testing.T) {
		ts := newTestServer(t)
		client, _ := connect(t, ts)

		client.Close()
		client.Close()

		assert.ErrorIs(t, client.Emit("join party", "p1"), ErrConnectionClosed)
		assert.ErrorIs(t, client.Connect(context.Background()), ErrConnectionClosed)
	})

	t.Run("rate limited", func(t *testing.T) {
		ts := newTestServer(t)
		client, _ := connect(t, ts, WithEmitRate(0.001, 1))

		require.NoError(t, client.Emit("join party", "p1"))
		assert.ErrorIs(t, client.Emit("join party", "p1"), ErrRateLimited)
	})
}

func TestConnectFailure(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1/socket")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := client.Connect(ctx)
	require.Error(t, err)
	assert.False(t, client.IsConnected())
}

func TestDoneClosesWhenServerHangsUp(t *testing.T) {
	ts := newTestServer(t)
	client, server := connect(t, ts)

	require.True(t, client.IsConnected())
	require.NoError(t, server.Close())

	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client did not notice the closed connection")
	}

	assert.False(t, client.IsConnected())
	assert.ErrorIs(t, client.Emit("join party", "p1"), ErrNotConnected)
}

func TestMalformedFrameIsSkipped(t *testing.T) {
	ts := newTestServer(t)
	client, server := connect(t, ts)

	received := make(chan struct{}, 1)
	off := client.On("join", func(json.RawMessage) { received <- struct{}{} })
	defer off()

	require.NoError(t, server.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, server.WriteJSON(Frame{Event: "join", Data: json.RawMessage(`{"numUsers":2}`)}))

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("connection did not survive a malformed frame")
	}

	assert.True(t, client.IsConnected())
}
