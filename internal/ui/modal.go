package ui

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/hallway-chat/hallway/internal/upload"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each overlay type implements this interface with its own state struct,
// ensuring type-safe access to its fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup overlay with type-safe state management.
// The State field is nil when no overlay is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays an overlay with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the overlay
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether an overlay is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the overlay centered over the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := ModalTitleStyle.Render(m.State.Title()) + "\n" + m.State.Render()

	if m.error != "" {
		content += "\n" + ModalErrorStyle.Render(m.error)
	}
	if help := m.State.Help(); help != "" {
		content += "\n" + ModalHelpStyle.Render(help)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// UploadState - State for the file upload overlay
// =============================================================================

// UploadTickMsg advances the busy indicator for an in-flight submission
type UploadTickMsg struct {
	ID uuid.UUID
}

// UploadTickCmd returns a command that sends the next busy-indicator tick
// for the given submission
func UploadTickCmd(id uuid.UUID) tea.Cmd {
	return tea.Tick(UploadTickInterval, func(time.Time) tea.Msg {
		return UploadTickMsg{ID: id}
	})
}

// UploadDoneMsg carries a submission's parsed completion payload
type UploadDoneMsg struct {
	ID     uuid.UUID
	Result upload.Result
}

// UploadState drives the upload overlay. ID is uuid.Nil while idle and set
// for the lifetime of one submission, so stale ticks and completions from an
// abandoned submission are ignored.
type UploadState struct {
	Input textinput.Model
	ID    uuid.UUID
	Busy  bool
	Ticks int
	Err   string
}

// NewUploadState creates the upload overlay state
func NewUploadState() *UploadState {
	ti := textinput.New()
	ti.Placeholder = "/path/to/file"
	ti.CharLimit = ModalInputCharLimit
	ti.SetWidth(ModalInputWidth)
	ti.Focus()
	return &UploadState{Input: ti}
}

func (*UploadState) modalState() {}

func (s *UploadState) Title() string { return "Upload File" }

func (s *UploadState) Help() string {
	if s.Busy {
		return "Esc to cancel"
	}
	return "Enter to upload, Esc to cancel"
}

// Path returns the trimmed file path entered by the operator
func (s *UploadState) Path() string {
	return s.Input.Value()
}

// Begin moves the overlay into its busy state for a new submission
func (s *UploadState) Begin(id uuid.UUID) {
	s.ID = id
	s.Busy = true
	s.Ticks = 0
	s.Err = ""
}

// Fail surfaces an upload error inline and makes the form retryable
func (s *UploadState) Fail(errText string) {
	s.ID = uuid.Nil
	s.Busy = false
	s.Err = errText
}

func (s *UploadState) Render() string {
	content := s.Input.View()
	if s.Busy {
		content += "\n" + ModalBusyStyle.Render(upload.Indicator(s.Ticks))
	}
	if s.Err != "" {
		content += "\n" + ModalErrorStyle.Render(s.Err)
	}
	return content
}

func (s *UploadState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if tick, ok := msg.(UploadTickMsg); ok {
		if s.Busy && tick.ID == s.ID {
			s.Ticks++
			return s, UploadTickCmd(s.ID)
		}
		return s, nil
	}
	if s.Busy {
		// No edits while a submission is in flight
		return s, nil
	}
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// =============================================================================
// ImagePreviewState - State for the image preview overlay
// =============================================================================

// ImagePreviewState shows an image link with copy and open actions
type ImagePreviewState struct {
	URL    string
	Copied bool
}

func (*ImagePreviewState) modalState() {}

func (s *ImagePreviewState) Title() string { return "Image Preview" }

func (s *ImagePreviewState) Help() string {
	return "o to open, c to copy URL, Esc to close"
}

func (s *ImagePreviewState) Render() string {
	content := ChatImageStyle.Render("🖼 ") + ChatLinkStyle.Render(s.URL)
	if s.Copied {
		content += "\n" + ModalBusyStyle.Render("copied to clipboard")
	}
	return content
}

func (s *ImagePreviewState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}
