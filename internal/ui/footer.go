package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width    int
	bindings []KeyBinding
	detached bool // Whether the chat log is scrolled away from the bottom
	overlay  bool // Whether a modal overlay is open
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "alt+enter", Desc: "newline"},
			{Key: "ctrl+u", Desc: "upload"},
			{Key: "ctrl+l", Desc: "open link"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(detached, overlay bool) {
	f.detached = detached
	f.overlay = overlay
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer
func (f *Footer) View() string {
	var parts []string

	bindings := f.bindings
	if f.overlay {
		bindings = []KeyBinding{
			{Key: "esc", Desc: "close"},
		}
	} else if f.detached {
		bindings = append([]KeyBinding{{Key: "end", Desc: "jump to latest"}}, f.bindings...)
	}

	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
