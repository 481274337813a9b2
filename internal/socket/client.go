package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"codeberg.org/partyline/client/internal/logger"
)

// sets a custom dialer (tls config, proxy, handshake timeout)
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// limits outbound emits to perSecond with the given burst. zero disables the limit.
func WithEmitRate(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}

		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// creates a new event socket client for endpoint
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		dialer:    websocket.DefaultDialer,
		limiter:   rate.NewLimiter(defaultEmitRate, defaultEmitBurst),
		listeners: make(map[string]map[uint64]func(json.RawMessage)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// establishes the websocket connection and starts the pumps
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	if c.connected {
		return nil
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.endpoint, http.Header{})
	if resp != nil && resp.Body != nil {
		resp.Body.Close() //nolint:errcheck,gosec // handshake body is unused
	}
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.endpoint, err)
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec // G104: websocket setup
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.conn = conn
	c.send = make(chan []byte, sendBufferSize)
	c.done = make(chan struct{})
	c.connected = true

	go c.readPump(conn, c.done)
	go c.writePump(conn, c.send)

	logger.FromContext(ctx).Info("socket connected", "endpoint", c.endpoint)

	return nil
}

// queues an event for sending. it does not wait for the server.
func (c *Client) Emit(event string, payload any) error {
	if event == "" {
		return ErrEmptyEvent
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %q payload: %w", event, err)
	}

	frame, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal %q frame: %w", event, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	if !c.connected {
		return ErrNotConnected
	}

	if c.limiter != nil && !c.limiter.Allow() {
		return ErrRateLimited
	}

	select {
	case c.send <- frame:
		logger.Debug("event emitted", "event", event)
		return nil
	default:
		return ErrSendBufferFull
	}
}

// registers fn for event. the returned func removes it and may be called more than once.
func (c *Client) On(event string, fn func(json.RawMessage)) func() {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	c.nextID++
	id := c.nextID

	if c.listeners[event] == nil {
		c.listeners[event] = make(map[uint64]func(json.RawMessage))
	}
	c.listeners[event][id] = fn

	var once sync.Once

	return func() {
		once.Do(func() {
			c.off(event, id)
		})
	}
}

func (c *Client) off(event string, id uint64) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	byID, ok := c.listeners[event]
	if !ok {
		return
	}

	delete(byID, id)

	if len(byID) == 0 {
		delete(c.listeners, event)
	}
}

// returns the number of listeners registered for event
func (c *Client) ListenerCount(event string) int {
	c.listenersMu.RLock()
	defer c.listenersMu.RUnlock()

	return len(c.listeners[event])
}

// returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connected
}

// returns a channel closed once the connection is gone
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done == nil {
		done := make(chan struct{})
		close(done)
		return done
	}

	return c.done
}

// closes the connection. safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true

	if c.connected {
		// write pump sends the close frame and closes the conn
		close(c.send)
		c.connected = false
	}
}

// reads frames and hands them to listeners
func (c *Client) readPump(conn *websocket.Conn, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		if c.connected && c.conn == conn {
			c.connected = false
			close(c.send)
		}
		c.mu.Unlock()

		conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
		close(done)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("socket read error", "endpoint", c.endpoint, "error", err)
			}

			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			logger.Warn("dropping malformed frame", "error", err)
			continue
		}

		c.dispatch(frame)
	}
}

// calls every listener registered for the frame's event
func (c *Client) dispatch(frame Frame) {
	c.listenersMu.RLock()
	byID := c.listeners[frame.Event]
	fns := make([]func(json.RawMessage), 0, len(byID))
	for _, fn := range byID {
		fns = append(fns, fn)
	}
	c.listenersMu.RUnlock()

	if len(fns) == 0 {
		logger.Debug("no listener for event", "event", frame.Event)
		return
	}

	for _, fn := range fns {
		fn(frame.Data)
	}
}

// writes queued frames and keeps the connection alive with pings
func (c *Client) writePump(conn *websocket.Conn, send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		conn.Close() //nolint:errcheck,gosec // G104: defer cleanup
	}()

	for {
		select {
		case frame, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket timing

			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck,gosec // G104: close message
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Warn("socket write error", "endpoint", c.endpoint, "error", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck,gosec // G104: websocket ping timing

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
