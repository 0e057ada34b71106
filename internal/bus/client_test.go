package bus

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"
)

// recordingHandler collects handler callbacks for assertions.
type recordingHandler struct {
	mu       sync.Mutex
	names    []string
	history  int
	messages []Message
	users    []UsersEvent
	typing   []TypingEvent
	logs     []string
	flashes  []string
	errs     []string
	latency  []time.Duration
}

func (h *recordingHandler) HandleName(n string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.names = append(h.names, n)
}
func (h *recordingHandler) HandleHistory() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history++
}
func (h *recordingHandler) HandleLatency(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latency = append(h.latency, d)
}
func (h *recordingHandler) HandleChatMessage(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, m)
}
func (h *recordingHandler) HandleUsers(e UsersEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.users = append(h.users, e)
}
func (h *recordingHandler) HandleTyping(e TypingEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.typing = append(h.typing, e)
}
func (h *recordingHandler) HandleLog(t string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, t)
}
func (h *recordingHandler) HandleFlash(t string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flashes = append(h.flashes, t)
}
func (h *recordingHandler) HandleError(t string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, t)
}

// pipeDialer hands out the client half of a net.Pipe once.
type pipeDialer struct {
	mu   sync.Mutex
	conn net.Conn
}

func (d *pipeDialer) Dial() (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	conn := d.conn
	d.conn = nil
	if conn == nil {
		return nil, net.ErrClosed
	}
	return conn, nil
}

func startClient(t *testing.T) (*Client, *recordingHandler, net.Conn) {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	h := &recordingHandler{}
	c := NewClient(&pipeDialer{conn: clientSide}, h, ClientConfig{
		Name:         "alice",
		Channels:     []string{"chat", "users"},
		PingInterval: time.Hour, // keep pings out of the frame stream
	})
	go c.Run()
	t.Cleanup(func() {
		c.Close()
		serverSide.Close()
	})
	return c, h, serverSide
}

func readFrame(t *testing.T, r *bufio.Reader) frame {
	t.Helper()
	line, err := r.ReadBytes('\n')
	if err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	var f frame
	if err := json.Unmarshal(line, &f); err != nil {
		t.Fatalf("parsing frame %q: %v", line, err)
	}
	return f
}

func writeFrame(t *testing.T, conn net.Conn, channel string, payload interface{}) {
	t.Helper()
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		data = b
	}
	b, err := json.Marshal(frame{Channel: channel, Data: data})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Write(append(b, '\n')); err != nil {
		t.Fatalf("writing frame: %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestClient_IdentifiesOnConnect(t *testing.T) {
	_, h, server := startClient(t)
	r := bufio.NewReader(server)

	f := readFrame(t, r)
	if f.Channel != identifyChannel {
		t.Fatalf("Expected identify frame first, got %q", f.Channel)
	}
	var id identify
	if err := json.Unmarshal(f.Data, &id); err != nil {
		t.Fatal(err)
	}
	if id.Name != "alice" {
		t.Errorf("Expected identify name 'alice', got %q", id.Name)
	}

	waitFor(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.logs) > 0
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.logs[0] != "connected" {
		t.Errorf("Expected 'connected' log line, got %q", h.logs[0])
	}
}

func TestClient_DispatchesInboundFrames(t *testing.T) {
	_, h, server := startClient(t)
	r := bufio.NewReader(server)
	readFrame(t, r) // identify

	writeFrame(t, server, identifyChannel, identify{Name: "alice2"})
	writeFrame(t, server, HistoryChannel, nil)
	writeFrame(t, server, ChatChannel, Message{From: "bob", Body: "hello"})
	writeFrame(t, server, UsersChannel, UsersEvent{Channel: "chat", Users: []User{{Name: "bob"}}})
	writeFrame(t, server, TypingChannel, TypingEvent{Who: "bob", Typing: true})
	writeFrame(t, server, FlashChannel, notice{Text: "motd"})
	writeFrame(t, server, ErrorChannel, notice{Text: "kicked"})

	waitFor(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.errs) > 0
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.names) != 1 || h.names[0] != "alice2" {
		t.Errorf("Expected name correction 'alice2', got %v", h.names)
	}
	if h.history != 1 {
		t.Errorf("Expected 1 history reset, got %d", h.history)
	}
	if len(h.messages) != 1 || h.messages[0].From != "bob" || h.messages[0].Body != "hello" {
		t.Errorf("Unexpected chat messages: %v", h.messages)
	}
	if len(h.users) != 1 || h.users[0].Channel != "chat" {
		t.Errorf("Unexpected users events: %v", h.users)
	}
	if len(h.typing) != 1 || !h.typing[0].Typing {
		t.Errorf("Unexpected typing events: %v", h.typing)
	}
	if len(h.flashes) != 1 || h.flashes[0] != "motd" {
		t.Errorf("Unexpected flashes: %v", h.flashes)
	}
	if h.errs[0] != "kicked" {
		t.Errorf("Unexpected errors: %v", h.errs)
	}
}

func TestClient_MalformedFrameDoesNotKillConnection(t *testing.T) {
	_, h, server := startClient(t)
	r := bufio.NewReader(server)
	readFrame(t, r) // identify

	if _, err := server.Write([]byte("{garbage\n")); err != nil {
		t.Fatal(err)
	}
	writeFrame(t, server, ChatChannel, Message{From: "bob", Body: "still here"})

	waitFor(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return len(h.messages) == 1
	})
}

func TestClient_ChatWritesFrame(t *testing.T) {
	c, _, server := startClient(t)
	r := bufio.NewReader(server)
	readFrame(t, r) // identify

	done := make(chan error, 1)
	go func() { done <- c.Chat("hi there") }()

	f := readFrame(t, r)
	if f.Channel != ChatChannel {
		t.Fatalf("Expected chat frame, got %q", f.Channel)
	}
	var out chatOut
	if err := json.Unmarshal(f.Data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Body != "hi there" {
		t.Errorf("Expected body 'hi there', got %q", out.Body)
	}
	if err := <-done; err != nil {
		t.Fatalf("Chat: %v", err)
	}
}

func TestClient_TypingWritesFrame(t *testing.T) {
	c, _, server := startClient(t)
	r := bufio.NewReader(server)
	readFrame(t, r) // identify

	done := make(chan error, 1)
	go func() { done <- c.Typing() }()

	f := readFrame(t, r)
	if f.Channel != TypingChannel {
		t.Fatalf("Expected typing frame, got %q", f.Channel)
	}
	if err := <-done; err != nil {
		t.Fatalf("Typing: %v", err)
	}
}

func TestClient_SendWithoutConnection(t *testing.T) {
	h := &recordingHandler{}
	c := NewClient(&pipeDialer{}, h, ClientConfig{Name: "alice"})
	if err := c.Chat("nope"); err == nil {
		t.Error("Chat without a connection should error")
	}
}
