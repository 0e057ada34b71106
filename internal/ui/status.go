package ui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"
)

// StatusTickMsg is sent once per second so flash expiry is reflected even
// when no new events arrive
type StatusTickMsg time.Time

// StatusTick returns a command that sends the next status tick
func StatusTick() tea.Cmd {
	return tea.Tick(StatusTickInterval, func(t time.Time) tea.Msg {
		return StatusTickMsg(t)
	})
}

// StatusBar composes the identity, the last connection log line, a transient
// flash notice, and a persistent error flag into a single line
type StatusBar struct {
	width    int
	name     string
	baseline string
	flash    string
	flashAt  time.Time
	errText  string
	latency  time.Duration
	hasPing  bool

	now func() time.Time
}

// NewStatusBar creates a new status bar
func NewStatusBar(name string) *StatusBar {
	return &StatusBar{
		name: name,
		now:  time.Now,
	}
}

// SetWidth sets the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetName updates the identity shown at the start of the line
func (s *StatusBar) SetName(name string) {
	s.name = name
}

// SetBaseline replaces the persistent status text
func (s *StatusBar) SetBaseline(text string) {
	s.baseline = text
}

// SetFlash sets a transient notice and stamps it with the current time
func (s *StatusBar) SetFlash(text string) {
	s.flash = text
	s.flashAt = s.now()
}

// SetError sets the persistent error text
func (s *StatusBar) SetError(text string) {
	s.errText = text
}

// ClearError removes the error text and its styling
func (s *StatusBar) ClearError() {
	s.errText = ""
}

// HasError returns whether an error is currently displayed
func (s *StatusBar) HasError() bool {
	return s.errText != ""
}

// SetLatency records the most recent round-trip sample
func (s *StatusBar) SetLatency(d time.Duration) {
	s.latency = d
	s.hasPing = true
}

// Render composes the raw status line without styling
func (s *StatusBar) Render() string {
	line := s.name + " " + s.baseline
	if s.flash != "" && s.now().Sub(s.flashAt) < FlashDuration {
		line += " [" + s.flash + "]"
	}
	if s.errText != "" {
		line += " ERROR:" + s.errText
	}
	return line
}

// View renders the styled status bar, with the latency sample right-aligned
func (s *StatusBar) View() string {
	style := StatusOKStyle
	if s.errText != "" {
		style = StatusErrStyle
	}

	line := s.Render()

	// Inner width after the style's horizontal padding
	inner := s.width - 2
	if inner < 0 {
		inner = 0
	}

	if !s.hasPing {
		return style.Width(s.width).Render(runewidth.Truncate(line, inner, "…"))
	}

	rightRaw := fmt.Sprintf("%dms", s.latency.Milliseconds())
	right := StatusLatencyStyle.Render(rightRaw)
	avail := inner - runewidth.StringWidth(rightRaw) - 1
	if avail < 0 {
		avail = 0
	}
	left := runewidth.FillRight(runewidth.Truncate(line, avail, "…"), avail)
	return style.Width(s.width).Render(left + " " + right)
}
