package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Header represents the top header bar
type Header struct {
	width  int
	server string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetServer sets the server address to display
func (h *Header) SetServer(addr string) {
	h.server = addr
}

// View renders the header
func (h *Header) View() string {
	titleText := "hallway"
	rightText := h.server

	paddingLen := h.width - runewidth.StringWidth(titleText) - runewidth.StringWidth(rightText) - 2
	if paddingLen < 0 {
		paddingLen = 0
	}

	return HeaderStyle.Width(h.width).Render(titleText + strings.Repeat(" ", paddingLen) + rightText)
}
