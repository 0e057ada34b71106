// Package app wires the presentation components to the message bus and owns
// the Bubble Tea update loop.
package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/hallway-chat/hallway/internal/bus"
	"github.com/hallway-chat/hallway/internal/config"
	"github.com/hallway-chat/hallway/internal/ui"
	"github.com/hallway-chat/hallway/internal/upload"
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)

	header *ui.Header
	status *ui.StatusBar
	roster *ui.Roster
	chat   *ui.Chat
	footer *ui.Footer
	modal  *ui.Modal

	sender   bus.Sender
	uploader upload.Transport

	identity string
	width    int
	height   int
}

// New creates a new app model. sender carries outbound chat and typing
// signals; uploader is the out-of-band file submission channel.
func New(cfg *config.Config, identity, version string, sender bus.Sender, uploader upload.Transport) *Model {
	m := &Model{
		config:   cfg,
		version:  version,
		header:   ui.NewHeader(),
		status:   ui.NewStatusBar(identity),
		roster:   ui.NewRoster(),
		chat:     ui.NewChat(),
		footer:   ui.NewFooter(),
		modal:    ui.NewModal(),
		sender:   sender,
		uploader: uploader,
		identity: identity,
	}

	m.header.SetServer(cfg.GetServer())
	m.chat.SetSelf(identity)
	m.chat.SetMaxMessages(cfg.GetMaxMessages())
	m.chat.SetFocused(true)

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(ui.StatusTick(), ui.FollowTick())
}

// submitUpload runs one submission on its own goroutine and reports the
// parsed payload back as a message
func (m *Model) submitUpload(id uuid.UUID, path string) tea.Cmd {
	return func() tea.Msg {
		return ui.UploadDoneMsg{ID: id, Result: m.uploader.Submit(path, "")}
	}
}

func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	contentHeight := m.height - ui.HeaderHeight - ui.StatusHeight - ui.FooterHeight
	rosterWidth := m.width / ui.RosterWidthRatio
	chatWidth := m.width - rosterWidth

	m.roster.SetSize(rosterWidth, contentHeight-ui.BorderSize)
	m.chat.SetSize(chatWidth, contentHeight)
}
