package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hallway-chat/hallway/internal/bus"
	"github.com/hallway-chat/hallway/internal/keys"
	"github.com/hallway-chat/hallway/internal/logger"
)

// FollowState says whether the log tracks the newest message or preserves a
// manual scroll position
type FollowState int

const (
	Following FollowState = iota
	Detached
)

// FollowTickMsg coalesces scroll position checks during bursts of content
// growth
type FollowTickMsg time.Time

// FollowTick returns a command that sends the next follow-state check
func FollowTick() tea.Cmd {
	return tea.Tick(FollowTickInterval, func(t time.Time) tea.Msg {
		return FollowTickMsg(t)
	})
}

// Chat represents the conversation panel: the scrolling message log plus the
// compose textarea below it
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool
	self     string

	blocks    []string
	links     []Link
	follow    FollowState
	unseen    int
	maxBlocks int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		follow:   Following,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	chatPanelHeight := height - InputTotalHeight
	innerWidth := width - BorderSize
	viewportHeight := chatPanelHeight - BorderSize
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(innerWidth - InputPaddingWidth)

	logger.Debug("Chat.SetSize: outer=%dx%d, viewport=%dx%d", width, height, innerWidth, viewportHeight)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetSelf sets the identity used to tag own messages
func (c *Chat) SetSelf(name string) {
	c.self = name
}

// SetMaxMessages bounds the log length; 0 means unbounded
func (c *Chat) SetMaxMessages(n int) {
	c.maxBlocks = n
}

// Append renders one received message onto the end of the log. While
// detached it bumps the unseen counter instead of scrolling.
func (c *Chat) Append(msg bus.Message) {
	block, links := renderMessage(msg, c.self, c.viewport.Width(), len(c.links))
	c.blocks = append(c.blocks, block)
	c.links = append(c.links, links...)
	if c.maxBlocks > 0 && len(c.blocks) > c.maxBlocks {
		c.blocks = c.blocks[len(c.blocks)-c.maxBlocks:]
	}
	if c.follow == Detached {
		c.unseen++
	}
	c.updateContent()
}

// Reset clears the log, typically ahead of replayed history
func (c *Chat) Reset() {
	c.blocks = nil
	c.links = nil
	c.unseen = 0
	c.follow = Following
	c.updateContent()
}

// Links returns every link rendered so far, in marker order
func (c *Chat) Links() []Link {
	return c.links
}

// Link returns the n-th link (1-based, as shown in the markers)
func (c *Chat) Link(n int) (Link, bool) {
	if n < 1 || n > len(c.links) {
		return Link{}, false
	}
	return c.links[n-1], true
}

// Follow returns the current follow state
func (c *Chat) Follow() FollowState {
	return c.follow
}

// Unseen returns how many messages arrived while detached
func (c *Chat) Unseen() int {
	return c.unseen
}

// GetInput returns the trimmed compose text
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the compose field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// InsertNewline inserts a literal newline into the compose field
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// JumpToBottom forces follow mode and scrolls to the newest message
func (c *Chat) JumpToBottom() {
	c.follow = Following
	c.unseen = 0
	c.viewport.GotoBottom()
}

// syncFollow re-derives the follow state from the viewport position. At the
// bottom (or when content fits) the log follows new messages; anywhere else
// the operator's position wins.
func (c *Chat) syncFollow() {
	if c.viewport.AtBottom() {
		if c.follow == Detached {
			logger.Debug("Chat: follow resumed, unseen=%d cleared", c.unseen)
		}
		c.follow = Following
		c.unseen = 0
		c.viewport.GotoBottom()
		return
	}
	c.follow = Detached
}

func (c *Chat) updateContent() {
	var content string
	if len(c.blocks) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No messages yet")
	} else {
		content = strings.Join(c.blocks, "\n\n")
	}
	c.viewport.SetContent(content)
	if c.follow == Following {
		c.viewport.GotoBottom()
	}
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case FollowTickMsg:
		c.syncFollow()
		cmds = append(cmds, FollowTick())
		return c, tea.Batch(cmds...)
	}

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		switch keyMsg.String() {
		case keys.End:
			c.JumpToBottom()
			return c, nil
		case keys.PgUp, keys.PgDown, keys.CtrlUp, keys.CtrlDown,
			keys.Home, keys.CtrlD:
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			c.syncFollow()
			return c, cmd
		}

		if c.focused {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel, the unseen affordance, and the compose area
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	if c.unseen > 0 {
		badge := ChatUnseenStyle.Render(fmt.Sprintf("%d new messages ↓", c.unseen))
		lines := strings.Split(chatPanel, "\n")
		if len(lines) > 1 {
			last := len(lines) - 1
			lines[last] = overlayBadge(badge, c.width)
			chatPanel = strings.Join(lines, "\n")
		}
	}

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}

// overlayBadge centers the badge over a border line
func overlayBadge(badge string, width int) string {
	return lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, badge)
}
