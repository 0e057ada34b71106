package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hallway-chat/hallway/internal/ui"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	m.footer.SetContext(m.chat.Follow() == ui.Detached, m.modal.IsVisible())

	header := m.header.View()
	statusBar := m.status.View()
	footer := m.footer.View()

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.roster.View(),
		m.chat.View(),
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		statusBar,
		footer,
	)

	// Overlay modal if visible
	if m.modal.IsVisible() {
		bgStyle := lipgloss.NewStyle().Background(lipgloss.Color("#000000"))
		v.SetContent(lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.modal.View(m.width, m.height),
			lipgloss.WithWhitespaceStyle(bgStyle),
		))
		return v
	}

	v.SetContent(view)
	return v
}
