// Package bus connects the UI to the chat server. The server owns ordering
// and delivery; this package owns the connection, the wire framing, and the
// translation of inbound frames into Handler callbacks.
package bus

import (
	"encoding/json"
	"time"
)

// Channel names on the wire.
const (
	ChatChannel    = "chat"
	TypingChannel  = "typing"
	UsersChannel   = "users"
	HistoryChannel = "history"
	PingChannel    = "ping"
	FlashChannel   = "flash"
	ErrorChannel   = "error"

	identifyChannel = "identify"
)

// Message is one chat entry as delivered by the server. Immutable once
// received; the server guarantees arrival order.
type Message struct {
	From   string    `json:"from"`
	Stamp  time.Time `json:"stamp"`
	Body   string    `json:"d"`
	Notify bool      `json:"notify,omitempty"`
}

// User is a single presence record.
type User struct {
	Name string `json:"name"`
}

// UsersEvent is a presence snapshot. Channel is empty when the server reports
// global presence as a flat list; otherwise the snapshot replaces that
// channel's roster only.
type UsersEvent struct {
	Channel string `json:"channel,omitempty"`
	Users   []User `json:"users"`
}

// TypingEvent reports that a user started or stopped composing.
type TypingEvent struct {
	Who    string `json:"who"`
	Typing bool   `json:"typing"`
}

// Handler receives inbound bus events. All methods are called from the
// client's read loop; implementations are expected to hand off to their own
// execution context (the app forwards them as tea messages).
type Handler interface {
	// HandleName delivers the canonical display name after identification.
	HandleName(name string)
	// HandleHistory marks the start of a history replay; the log should reset.
	HandleHistory()
	// HandleLatency reports the most recent ping round trip.
	HandleLatency(d time.Duration)
	// HandleChatMessage delivers one chat message, history or live.
	HandleChatMessage(m Message)
	// HandleUsers delivers a presence snapshot.
	HandleUsers(e UsersEvent)
	// HandleTyping delivers a typing state change.
	HandleTyping(e TypingEvent)
	// HandleLog reports a connection-lifecycle status line.
	HandleLog(text string)
	// HandleFlash reports a transient server notice.
	HandleFlash(text string)
	// HandleError reports a transport or server error. Cleared implicitly by
	// the next successful HandleName.
	HandleError(text string)
}

// Sender is the outbound half of the bus contract, the only part the UI
// layers depend on.
type Sender interface {
	// Chat sends a chat message.
	Chat(text string) error
	// Typing signals that the operator is composing.
	Typing() error
}

// frame is the wire envelope: one JSON object per line.
type frame struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// identify is the first frame a client writes after connecting, and the frame
// the server answers with once the name is accepted (possibly corrected).
type identify struct {
	Name     string   `json:"name"`
	Channels []string `json:"channels,omitempty"`
	Version  string   `json:"version,omitempty"`
}

// ping carries the client's send stamp so latency needs no server clock.
type ping struct {
	Stamp int64 `json:"stamp"`
}

// notice is the payload of flash and error frames.
type notice struct {
	Text string `json:"text"`
}

// chatOut is the payload of an outbound chat frame.
type chatOut struct {
	Body string `json:"d"`
}
