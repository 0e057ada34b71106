package bus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/hallway-chat/hallway/internal/logger"
)

// ProtocolVersion is sent with the identify frame; the server rejects clients
// it cannot speak to.
const ProtocolVersion = "1"

// Dialer opens a connection to the server. Swapped for a pipe in tests.
type Dialer interface {
	Dial() (net.Conn, error)
}

// TCPDialer dials a plain TCP address.
type TCPDialer struct {
	Addr    string
	Timeout time.Duration
}

func (d TCPDialer) Dial() (net.Conn, error) {
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return net.DialTimeout("tcp", d.Addr, timeout)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Name     string
	Channels []string

	// PingInterval defaults to 2s. Each ping doubles as the latency probe.
	PingInterval time.Duration
	// ReconnectDelay defaults to 2s.
	ReconnectDelay time.Duration
}

// Client maintains one connection to the server, reconnecting forever. All
// inbound frames are dispatched to the Handler from the read loop.
type Client struct {
	dialer  Dialer
	handler Handler
	cfg     ClientConfig

	mu      sync.Mutex
	conn    net.Conn
	wbuf    *bufio.Writer
	lastHad time.Time

	pings chan time.Time

	closed chan struct{}
	once   sync.Once
}

// NewClient creates a client. Run must be called for inbound events to flow;
// Chat and Typing work as soon as a connection exists.
func NewClient(d Dialer, h Handler, cfg ClientConfig) *Client {
	if cfg.PingInterval == 0 {
		cfg.PingInterval = 2 * time.Second
	}
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = 2 * time.Second
	}
	return &Client{
		dialer:  d,
		handler: h,
		cfg:     cfg,
		pings:   make(chan time.Time, 1),
		closed:  make(chan struct{}),
	}
}

// Chat sends a chat message on the current connection.
func (c *Client) Chat(text string) error {
	data, err := json.Marshal(chatOut{Body: text})
	if err != nil {
		return err
	}
	return c.send(frame{Channel: ChatChannel, Data: data})
}

// Typing signals that the operator is composing. Best effort; a dropped
// typing frame is not worth a reconnect.
func (c *Client) Typing() error {
	return c.send(frame{Channel: TypingChannel})
}

// Close tears down the connection and stops the run loop.
func (c *Client) Close() {
	c.once.Do(func() { close(c.closed) })
	c.disconnect()
}

func (c *Client) send(f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wbuf == nil {
		return errors.New("not connected")
	}
	if err := json.NewEncoder(c.wbuf).Encode(f); err != nil {
		return err
	}
	return c.wbuf.Flush()
}

func (c *Client) disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = nil
	c.wbuf = nil
}

// connect dials, identifies, and requests history plus the current presence
// snapshot. The server answers identify with the canonical name.
func (c *Client) connect() error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	conn, err := c.dialer.Dial()
	if err != nil {
		return err
	}

	w := bufio.NewWriter(conn)
	id := identify{Name: c.cfg.Name, Channels: c.cfg.Channels, Version: ProtocolVersion}
	data, err := json.Marshal(id)
	if err != nil {
		conn.Close()
		return err
	}
	if err := json.NewEncoder(w).Encode(frame{Channel: identifyChannel, Data: data}); err != nil {
		conn.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.wbuf = w
	c.mu.Unlock()

	c.handler.HandleLog("connected")
	return nil
}

// Run connects and reads frames until Close. Connection errors surface via
// HandleError and trigger a reconnect after ReconnectDelay.
func (c *Client) Run() {
	go c.pingLoop()

	for {
		select {
		case <-c.closed:
			return
		default:
		}

		if err := c.connect(); err != nil {
			c.handler.HandleError(err.Error())
			c.handler.HandleLog("reconnecting...")
			select {
			case <-c.closed:
				return
			case <-time.After(c.cfg.ReconnectDelay):
			}
			continue
		}

		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			continue
		}

		if err := c.readLoop(conn); err != nil && !errors.Is(err, io.EOF) {
			c.handler.HandleError(err.Error())
		}
		c.disconnect()
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.closed:
			return
		case <-ticker.C:
			sent := time.Now()
			data, _ := json.Marshal(ping{Stamp: sent.UnixMilli()})
			if err := c.send(frame{Channel: PingChannel, Data: data}); err != nil {
				continue
			}
			select {
			case c.pings <- sent:
			default:
			}
		}
	}
}

func (c *Client) readLoop(conn net.Conn) error {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var f frame
		if err := json.Unmarshal(line, &f); err != nil {
			logger.Warn("Bus: dropping malformed frame: %v", err)
			continue
		}
		if err := c.dispatch(f); err != nil {
			logger.Warn("Bus: dropping %s frame: %v", f.Channel, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

// dispatch routes one inbound frame to its handler callback.
func (c *Client) dispatch(f frame) error {
	switch f.Channel {
	case identifyChannel:
		var id identify
		if err := json.Unmarshal(f.Data, &id); err != nil {
			return err
		}
		c.mu.Lock()
		c.cfg.Name = id.Name
		c.mu.Unlock()
		c.handler.HandleName(id.Name)
	case HistoryChannel:
		c.handler.HandleHistory()
	case PingChannel:
		select {
		case sent := <-c.pings:
			c.handler.HandleLatency(time.Since(sent))
		default:
		}
	case ChatChannel:
		var m Message
		if err := json.Unmarshal(f.Data, &m); err != nil {
			return err
		}
		c.handler.HandleChatMessage(m)
	case UsersChannel:
		var e UsersEvent
		if err := json.Unmarshal(f.Data, &e); err != nil {
			return err
		}
		c.handler.HandleUsers(e)
	case TypingChannel:
		var e TypingEvent
		if err := json.Unmarshal(f.Data, &e); err != nil {
			return err
		}
		c.handler.HandleTyping(e)
	case FlashChannel:
		var n notice
		if err := json.Unmarshal(f.Data, &n); err != nil {
			return err
		}
		c.handler.HandleFlash(n.Text)
	case ErrorChannel:
		var n notice
		if err := json.Unmarshal(f.Data, &n); err != nil {
			return err
		}
		c.handler.HandleError(n.Text)
	default:
		return fmt.Errorf("unknown channel %q", f.Channel)
	}
	return nil
}
