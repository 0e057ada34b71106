package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/hallway-chat/hallway/internal/bus"
)

// Messages delivered by the bus listener. Each inbound event kind becomes
// one typed message routed through the update loop.

// NameMsg carries the canonical identity issued by the server
type NameMsg struct {
	Name string
}

// HistoryResetMsg clears the log ahead of replayed history
type HistoryResetMsg struct{}

// LatencyMsg carries a round-trip sample
type LatencyMsg struct {
	D time.Duration
}

// ChatMsg carries one received chat message
type ChatMsg struct {
	Message bus.Message
}

// UsersMsg carries a presence snapshot
type UsersMsg struct {
	Event bus.UsersEvent
}

// TypingMsg carries a typing state change for one user
type TypingMsg struct {
	Event bus.TypingEvent
}

// LogMsg carries a connection-lifecycle log line
type LogMsg struct {
	Text string
}

// FlashMsg carries a transient notice
type FlashMsg struct {
	Text string
}

// ErrorMsg carries a transport error
type ErrorMsg struct {
	Text string
}

// Listener adapts the bus handler contract to the running program. The bus
// client calls it from its read goroutine; send is program.Send, which hands
// each event to the single update loop.
type Listener struct {
	send func(tea.Msg)
}

// NewListener creates a listener that forwards bus events to send
func NewListener(send func(tea.Msg)) *Listener {
	return &Listener{send: send}
}

var _ bus.Handler = (*Listener)(nil)

func (l *Listener) HandleName(name string) {
	l.send(NameMsg{Name: name})
}

func (l *Listener) HandleHistory() {
	l.send(HistoryResetMsg{})
}

func (l *Listener) HandleLatency(d time.Duration) {
	l.send(LatencyMsg{D: d})
}

func (l *Listener) HandleChatMessage(msg bus.Message) {
	l.send(ChatMsg{Message: msg})
}

func (l *Listener) HandleUsers(ev bus.UsersEvent) {
	l.send(UsersMsg{Event: ev})
}

func (l *Listener) HandleTyping(ev bus.TypingEvent) {
	l.send(TypingMsg{Event: ev})
}

func (l *Listener) HandleLog(text string) {
	l.send(LogMsg{Text: text})
}

func (l *Listener) HandleFlash(text string) {
	l.send(FlashMsg{Text: text})
}

func (l *Listener) HandleError(text string) {
	l.send(ErrorMsg{Text: text})
}
