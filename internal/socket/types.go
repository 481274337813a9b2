package socket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// outbound frames queued before Emit starts failing
	sendBufferSize = 64
)

// emit rate defaults
const (
	defaultEmitRate  = 5
	defaultEmitBurst = 5
)

// errors
var (
	ErrNotConnected     = errors.New("socket not connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
	ErrRateLimited      = errors.New("emit rate limit exceeded")
	ErrEmptyEvent       = errors.New("event name is empty")
)

// a single event on the wire, in both directions
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// configures a Client
type Option func(*Client)

// event socket client. listeners run on the read goroutine.
type Client struct {
	endpoint string
	dialer   *websocket.Dialer
	limiter  *rate.Limiter

	// websocket connection
	conn *websocket.Conn

	// buffered channel of outbound frames
	send chan []byte

	// closed when the read pump exits
	done chan struct{}

	// guards conn, connected and closed
	mu        sync.Mutex
	connected bool
	closed    bool

	// listeners by event name, then registration id
	listenersMu sync.RWMutex
	listeners   map[string]map[uint64]func(json.RawMessage)
	nextID      uint64
}
