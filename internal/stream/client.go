package stream

import (
	"errors"
	"sync"
	"time"

	"grain_dryer/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 1 << 12 // 4 KB
	sendBufSize = 32
)

// ErrSlowSubscriber is returned by Deliver when a subscriber's outbound
// buffer is full. The hub responds by dropping that subscriber.
var ErrSlowSubscriber = errors.New("subscriber send buffer full")

// Client adapts one websocket connection to the hub's Subscriber
// contract. Writes are decoupled from broadcasts through a buffered
// channel so one slow connection cannot stall the fan-out loop.
type Client struct {
	id        string
	hub       *Hub
	conn      *websocket.Conn
	send      chan Event
	log       *logger.Logger
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, log *logger.Logger) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan Event, sendBufSize),
		log:  log,
	}
}

func (c *Client) ID() string { return c.id }

// Close tears down the underlying connection. Both pumps exit on the
// resulting read/write errors, which sends the peer into its reconnect
// path. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// Deliver queues an event for the write pump. Non-blocking: a full
// buffer means the client cannot keep up and is reported as failed.
func (c *Client) Deliver(e Event) error {
	select {
	case c.send <- e:
		return nil
	default:
		return ErrSlowSubscriber
	}
}

// ReadPump drains incoming frames to service control messages and to
// detect disconnects. On exit the subscriber is removed from the hub
// immediately; there is no grace period.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c.id)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				if c.log != nil {
					c.log.Infow("ws_read_closed", "id", c.id, "err", err)
				}
			}
			return
		}
	}
}

// WritePump writes queued events and periodic pings to the connection.
// Any write error ends the connection; ReadPump then unregisters.
func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.Close()
	}()

	for {
		select {
		case e := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(e); err != nil {
				if c.log != nil {
					c.log.Infow("ws_write_failed", "id", c.id, "err", err)
				}
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if c.log != nil {
					c.log.Infow("ws_ping_failed", "id", c.id, "err", err)
				}
				return
			}
		}
	}
}
