package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/augustawind/conway-web/internal/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
)

// Config configures a session client.
type Config struct {
	// URL is the websocket endpoint of the game server.
	URL string

	// Handlers receives decoded inbound messages and fault notices.
	Handlers Handlers

	// PingInterval is the target gap between keepalive pings. Defaults to
	// DefaultPingInterval.
	PingInterval time.Duration

	// Dialer overrides the websocket dialer. Defaults to
	// websocket.DefaultDialer.
	Dialer *websocket.Dialer
}

// Client is a session client for one logical connection to the game server.
// It owns at most one live transport handle at a time; Reconnect replaces the
// handle and discards the old one. Callbacks registered for a discarded handle
// never affect the current one.
type Client struct {
	url          string
	handlers     Handlers
	pingInterval time.Duration
	dialer       *websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	state     State
	gen       uint64
	pingTimer *time.Timer
	closed    bool

	// Serializes writes; the websocket allows one concurrent writer.
	writeMu sync.Mutex
}

// New creates a session client in the Disconnected state. No connection is
// attempted until Connect.
func New(cfg Config) *Client {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = DefaultPingInterval
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	return &Client{
		url:          cfg.URL,
		handlers:     cfg.Handlers,
		pingInterval: cfg.PingInterval,
		dialer:       cfg.Dialer,
		state:        StateDisconnected,
	}
}

// Connect dials the server and, on success, transitions to Open, sends the
// first keepalive ping synchronously and starts the read loop.
func (c *Client) Connect(ctx context.Context) error {
	return c.dial(ctx)
}

// Reconnect unconditionally replaces the transport handle with a fresh
// connection attempt. Any pending heartbeat timer or in-flight callback of the
// old handle is invalidated before the new dial begins.
func (c *Client) Reconnect(ctx context.Context) error {
	return c.dial(ctx)
}

func (c *Client) dial(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	// Supersede the previous handle before dialing so its read loop and any
	// pending timer go quiet immediately.
	c.gen++
	gen := c.gen
	old := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.stopPingTimerLocked()
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	c.mu.Lock()
	if c.closed || gen != c.gen {
		// Closed or superseded by a newer Reconnect while dialing.
		c.mu.Unlock()
		conn.Close()
		if c.closed {
			return ErrClosed
		}
		return nil
	}
	c.conn = conn
	c.state = StateOpen
	c.mu.Unlock()

	// The first ping is sent on open, not on a timer.
	if err := c.writeCommand(conn, protocol.Ping()); err != nil {
		c.teardown(gen)
		conn.Close()
		return fmt.Errorf("initial ping: %w", err)
	}

	go c.readLoop(conn, gen)
	return nil
}

// Connected reports whether the transport is open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateOpen
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Send encodes the command and writes it to the wire. It fails with
// ErrNotConnected when the transport is not open: commands are never queued
// across disconnects, so a stale intent cannot replay after a reconnect.
// Encoding errors (ErrUnknownCommand, ErrInvalidArgument) are returned to the
// caller and never reach the wire.
func (c *Client) Send(cmd protocol.Command) error {
	data, err := cmd.Encode()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateOpen || c.conn == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	conn := c.conn
	c.mu.Unlock()

	return c.write(conn, data)
}

// Close tears down the client for good. Further Connect or Reconnect calls
// fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.gen++
	conn := c.conn
	c.conn = nil
	c.state = StateClosed
	c.stopPingTimerLocked()
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	c.writeMu.Lock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return conn.Close()
}

// readLoop pumps frames from one transport handle until it dies. Dispatch is
// serialized: the next frame is not read until the previous one is fully
// routed and its heartbeat rescheduled.
func (c *Client) readLoop(conn *websocket.Conn, gen uint64) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(gen, err)
			return
		}
		c.handleFrame(conn, gen, frame)
	}
}

// handleFrame decodes one inbound frame, routes its messages in order, then
// schedules the next heartbeat compensated for the time dispatch took.
func (c *Client) handleFrame(conn *websocket.Conn, gen uint64, frame []byte) {
	if !c.isCurrent(gen) {
		return
	}

	start := time.Now()
	msgs, err := protocol.DecodeFrame(frame)
	if err != nil {
		// Recoverable: report, skip the frame, keep the connection.
		if c.handlers.OnError != nil {
			c.handlers.OnError(err.Error())
		}
	} else {
		for _, msg := range msgs {
			dispatch(msg, c.handlers)
		}
	}

	c.schedulePing(conn, gen, time.Since(start))
}

// schedulePing arms the heartbeat timer for the given handle generation. The
// timer re-checks the generation when it fires, so a timer armed against a
// handle that Reconnect has since discarded is a no-op.
func (c *Client) schedulePing(conn *websocket.Conn, gen uint64, elapsed time.Duration) {
	delay := NextPingDelay(c.pingInterval, elapsed)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != StateOpen {
		return
	}
	c.pingTimer = time.AfterFunc(delay, func() {
		if !c.isCurrent(gen) {
			return
		}
		if err := c.writeCommand(conn, protocol.Ping()); err != nil {
			if c.handlers.OnError != nil {
				c.handlers.OnError("ping failed: " + err.Error())
			}
		}
	})
}

// handleClose records the death of a transport handle. A close from a
// superseded handle is ignored: no cross-talk between successive handles.
func (c *Client) handleClose(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.conn = nil
	c.stopPingTimerLocked()
	c.mu.Unlock()

	if c.handlers.OnError != nil {
		c.handlers.OnError("connection closed: " + err.Error())
	}
}

// teardown resets state after a failed open, provided the handle is still
// current.
func (c *Client) teardown(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state = StateClosed
	c.conn = nil
	c.stopPingTimerLocked()
}

func (c *Client) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen && c.state == StateOpen
}

func (c *Client) stopPingTimerLocked() {
	if c.pingTimer != nil {
		c.pingTimer.Stop()
		c.pingTimer = nil
	}
}

func (c *Client) writeCommand(conn *websocket.Conn, cmd protocol.Command) error {
	data, err := cmd.Encode()
	if err != nil {
		return err
	}
	return c.write(conn, data)
}

func (c *Client) write(conn *websocket.Conn, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
