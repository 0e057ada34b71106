package ui

import (
	"sort"
	"strings"

	"github.com/hallway-chat/hallway/internal/bus"
)

// Roster represents the side panel listing who is online.
// Presence arrives as per-channel snapshots or as a single flat list; the
// roster keeps the latest snapshot per channel and re-derives the displayed
// list on every update rather than patching it incrementally.
type Roster struct {
	width    int
	height   int
	channels map[string][]string
	typing   map[string]bool
}

// NewRoster creates a new roster panel
func NewRoster() *Roster {
	return &Roster{
		channels: make(map[string][]string),
		typing:   make(map[string]bool),
	}
}

// SetSize sets the roster panel dimensions
func (r *Roster) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// Update applies a presence snapshot. An event without a channel replaces
// the whole roster with its flat list; a channel-scoped event replaces only
// that channel's slice.
func (r *Roster) Update(ev bus.UsersEvent) {
	names := make([]string, 0, len(ev.Users))
	for _, u := range ev.Users {
		names = append(names, u.Name)
	}
	if ev.Channel == "" {
		r.channels = map[string][]string{"": names}
		return
	}
	r.channels[ev.Channel] = names
}

// SetTyping marks a user as currently typing or not
func (r *Roster) SetTyping(who string, typing bool) {
	if typing {
		r.typing[who] = true
	} else {
		delete(r.typing, who)
	}
}

// Names returns the displayed list: all names across channels, deduplicated,
// sorted ascending
func (r *Roster) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, channel := range r.channels {
		for _, name := range channel {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Render returns the unstyled roster text
func (r *Roster) Render() string {
	var sb strings.Builder
	sb.WriteString("Online:")
	for _, name := range r.Names() {
		sb.WriteString("\n")
		sb.WriteString(name)
		if r.typing[name] {
			sb.WriteString(" …")
		}
	}
	return sb.String()
}

// View renders the styled roster panel
func (r *Roster) View() string {
	var sb strings.Builder
	sb.WriteString(RosterHeaderStyle.Render("Online:"))
	for _, name := range r.Names() {
		sb.WriteString("\n")
		sb.WriteString(RosterNameStyle.Render(name))
		if r.typing[name] {
			sb.WriteString(RosterTypingStyle.Render(" …"))
		}
	}
	return PanelStyle.Width(r.width).Height(r.height).Render(sb.String())
}
