package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/hallway-chat/hallway/internal/clipboard"
	"github.com/hallway-chat/hallway/internal/identity"
	"github.com/hallway-chat/hallway/internal/keys"
	"github.com/hallway-chat/hallway/internal/logger"
	"github.com/hallway-chat/hallway/internal/notification"
	"github.com/hallway-chat/hallway/internal/open"
	"github.com/hallway-chat/hallway/internal/ui"
	"github.com/hallway-chat/hallway/internal/upload"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		// Quit works everywhere, then modal first if visible; other keys
		// never leak underneath an overlay
		if msg.String() == keys.CtrlC {
			return m, tea.Quit
		}
		if m.modal.IsVisible() {
			return m.handleModalKey(msg)
		}
		return m.handleKey(msg)

	case ui.StatusTickMsg:
		// The status bar re-reads the clock on render, so the tick only
		// needs to force a frame and reschedule itself
		cmds = append(cmds, ui.StatusTick())

	case ui.FollowTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)

	case ui.UploadTickMsg:
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)

	case ui.UploadDoneMsg:
		return m.handleUploadDone(msg)

	case NameMsg:
		return m.handleNameCorrection(msg.Name)

	case HistoryResetMsg:
		logger.Info("App: history reset")
		m.chat.Reset()

	case LatencyMsg:
		m.status.SetLatency(msg.D)

	case ChatMsg:
		m.chat.Append(msg.Message)
		if msg.Message.Notify && msg.Message.From != m.identity && m.config.GetNotificationsEnabled() {
			notification.Mention(msg.Message.From, msg.Message.Body)
		}

	case UsersMsg:
		m.roster.Update(msg.Event)

	case TypingMsg:
		m.roster.SetTyping(msg.Event.Who, msg.Event.Typing)

	case LogMsg:
		m.status.SetBaseline(msg.Text)

	case FlashMsg:
		m.status.SetFlash(msg.Text)

	case ErrorMsg:
		logger.Warn("App: bus error: %s", msg.Text)
		m.status.SetError(msg.Text)

	default:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleNameCorrection adopts the canonical identity issued by the server.
// It doubles as the success signal that clears a standing error.
func (m *Model) handleNameCorrection(name string) (tea.Model, tea.Cmd) {
	if name != "" && name != m.identity {
		logger.Info("App: identity corrected %q -> %q", m.identity, name)
		m.identity = name
		m.status.SetName(name)
		m.chat.SetSelf(name)
		if err := identity.Persist(m.config, name); err != nil {
			logger.Warn("App: failed to persist corrected name: %v", err)
		}
	}
	m.status.ClearError()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keys.Enter:
		return m.sendMessage()

	case keys.AltEnter, keys.ShiftEnter:
		m.chat.InsertNewline()
		return m, nil

	case keys.CtrlU:
		m.modal.Show(ui.NewUploadState())
		return m, nil

	case keys.CtrlL:
		return m.activateLastLink()
	}

	chat, cmd := m.chat.Update(msg)
	m.chat = chat

	// Every keystroke that reaches the compose field signals typing
	if m.chat.IsFocused() {
		if err := m.sender.Typing(); err != nil {
			logger.Debug("App: typing signal failed: %v", err)
		}
	}

	return m, cmd
}

func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	input := m.chat.GetInput()
	if input == "" {
		return m, nil
	}

	if err := m.sender.Chat(input); err != nil {
		logger.Warn("App: send failed: %v", err)
		m.status.SetError(err.Error())
		return m, nil
	}

	m.chat.ClearInput()
	return m, nil
}

// activateLastLink opens the newest link in the log: image links open the
// preview overlay, everything else goes to the browser
func (m *Model) activateLastLink() (tea.Model, tea.Cmd) {
	links := m.chat.Links()
	if len(links) == 0 {
		return m, nil
	}
	link := links[len(links)-1]

	if link.Image {
		m.modal.Show(&ui.ImagePreviewState{URL: link.URL})
		return m, nil
	}
	if err := open.URL(link.URL); err != nil {
		m.status.SetError(err.Error())
	}
	return m, nil
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *ui.UploadState:
		switch msg.String() {
		case keys.Escape:
			m.modal.Hide()
			return m, nil
		case keys.Enter:
			if state.Busy {
				return m, nil
			}
			return m.startUpload(state)
		}

	case *ui.ImagePreviewState:
		switch msg.String() {
		case keys.Escape:
			m.modal.Hide()
			return m, nil
		case "o":
			if err := open.URL(state.URL); err != nil {
				m.modal.SetError(err.Error())
			}
			return m, nil
		case "c":
			if err := clipboard.Copy(state.URL); err != nil {
				m.modal.SetError(err.Error())
				return m, nil
			}
			state.Copied = true
			return m, nil
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

func (m *Model) startUpload(state *ui.UploadState) (tea.Model, tea.Cmd) {
	path := state.Path()
	if err := upload.ValidatePath(path); err != nil {
		state.Fail(err.Error())
		return m, nil
	}

	id := uuid.New()
	state.Begin(id)
	logger.Info("App: upload %s started: %s", id, path)

	return m, tea.Batch(
		ui.UploadTickCmd(id),
		m.submitUpload(id, path),
	)
}

// handleUploadDone finishes a submission. A completion for a submission the
// overlay no longer tracks is dropped.
func (m *Model) handleUploadDone(msg ui.UploadDoneMsg) (tea.Model, tea.Cmd) {
	state, ok := m.modal.State.(*ui.UploadState)
	if !ok || state.ID != msg.ID {
		logger.Debug("App: stale upload completion %s dropped", msg.ID)
		return m, nil
	}

	if !msg.Result.OK() {
		logger.Warn("App: upload %s failed: %s", msg.ID, msg.Result.Error)
		state.Fail(msg.Result.Error)
		return m, nil
	}

	logger.Info("App: upload %s done: %s", msg.ID, msg.Result.URI)
	if err := m.sender.Chat(msg.Result.URI); err != nil {
		state.Fail(err.Error())
		return m, nil
	}
	m.modal.Hide()
	return m, nil
}
